package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/dmitrijs2005/gophbank/internal/buildinfo"
	"github.com/dmitrijs2005/gophbank/internal/config"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	cfg, err := config.LoadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&versionCmd{}, "")
	commander.Register(&shellCmd{cfg: cfg}, "")
	commander.Register(&accountsCmd{cfg: cfg}, "")
	commander.Register(&convertCmd{cfg: cfg}, "")

	ctx := context.Background()

	// without a subcommand the interactive shell starts
	if flag.NArg() == 0 {
		os.Exit(int((&shellCmd{cfg: cfg}).Execute(ctx, flag.CommandLine)))
	}
	os.Exit(int(commander.Execute(ctx)))
}

type versionCmd struct{}

func (*versionCmd) Name() string           { return "version" }
func (*versionCmd) Synopsis() string       { return "print build version, date and commit" }
func (*versionCmd) Usage() string          { return "bank version\n" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}
func (*versionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	buildinfo.PrintBuildData(os.Stdout)
	return subcommands.ExitSuccess
}
