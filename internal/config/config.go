package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophbank/internal/flagx"
)

// Config holds runtime settings for the bank CLI.
type Config struct {
	StorePath      string
	Backend        string
	AllowOverdraft bool
	Currency       string
	MaxAttempts    int
	FailureDelay   time.Duration
	LockoutDelay   time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorePath = "Accounts.dat"
	c.Backend = "file"
	c.AllowOverdraft = true
	c.Currency = "USD"
	c.MaxAttempts = 3
	c.FailureDelay = time.Second
	c.LockoutDelay = 3 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then JSON, environment and finally the flags
// parsed from args (normally os.Args[1:]) into fs. Later sources take
// precedence. The remaining positional arguments are left in fs.Args().
func LoadConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	RegisterFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the application cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.StorePath == "" {
		errs = append(errs, errors.New("store path is empty"))
	}
	if c.Backend != "file" && c.Backend != "sqlite" {
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("max attempts must be positive, got %d", c.MaxAttempts))
	}
	if c.Currency == "" {
		errs = append(errs, errors.New("currency is empty"))
	}
	return errors.Join(errs...)
}
