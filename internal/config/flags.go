package config

import "flag"

// RegisterFlags binds Config fields to fs, using the current values as
// defaults. -c/-config are registered too so that fs accepts them; the file
// itself is read earlier by parseJson.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.StorePath, "f", cfg.StorePath, "path of the account store")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "store backend: file or sqlite")
	fs.BoolVar(&cfg.AllowOverdraft, "overdraft", cfg.AllowOverdraft, "allow withdrawals beyond the balance")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "ISO 4217 currency code for display")
	fs.IntVar(&cfg.MaxAttempts, "attempts", cfg.MaxAttempts, "password attempts before giving up")
	fs.DurationVar(&cfg.FailureDelay, "failure-delay", cfg.FailureDelay, "pause after each wrong password")
	fs.DurationVar(&cfg.LockoutDelay, "lockout-delay", cfg.LockoutDelay, "pause after the last wrong password")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	var ignored string
	fs.StringVar(&ignored, "config", "", "path to JSON config file")
	fs.StringVar(&ignored, "c", "", "path to JSON config file (short)")
}
