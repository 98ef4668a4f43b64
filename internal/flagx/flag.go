// Package flagx extracts a handful of known flags from the command line
// without disturbing flag sets owned by other components.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the arguments that belong to allowedFlags, together with
// their values.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
//
// Scanning stops at the first positional argument (the subcommand name) or
// at "--", so flags meant for a subcommand are never picked up.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[normalize(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			break
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, ok := allowed[normalize(name)]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		_, keep := allowed[normalize(arg)]
		if keep {
			filtered = append(filtered, arg)
		}
		// a following non-flag argument is this flag's value
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") && takesValue(arg) {
			if keep {
				filtered = append(filtered, args[i+1])
			}
			i++
		}
	}

	return filtered
}

// ConfigFileFlag returns the path given via -c or -config, or "".
func ConfigFileFlag(args []string) string {
	var config string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}

// boolFlags lists global flags that never consume the next argument.
var boolFlags = map[string]struct{}{
	"overdraft": {},
}

func takesValue(arg string) bool {
	_, isBool := boolFlags[normalize(arg)]
	return !isBool
}

func normalize(f string) string {
	return strings.TrimLeft(f, "-")
}
