// Package config loads runtime configuration for the bank CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config (see parseJson).
//  3. Environment variables prefixed BANK_, optionally read from a .env file
//     (see parseEnv).
//  4. Command-line flags (see RegisterFlags), which override earlier values.
//
// Supported flags
//
//	-f string             path of the account store (default "Accounts.dat")
//	-b string             store backend: file or sqlite
//	-overdraft            allow withdrawals beyond the balance
//	-currency string      ISO 4217 code used for display
//	-attempts int         password attempts before giving up
//	-failure-delay dur    pause after each wrong password
//	-lockout-delay dur    pause after the last wrong password
//	-log-level string     debug, info, warn or error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "1s" or
// integer nanoseconds:
//
//	{
//	  "store_path": "Accounts.dat",
//	  "backend": "file",
//	  "allow_overdraft": true,
//	  "currency": "USD",
//	  "max_attempts": 3,
//	  "failure_delay": "1s",
//	  "lockout_delay": "3s",
//	  "log_level": "warn"
//	}
package config
