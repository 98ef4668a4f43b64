package services

import "time"

// Defaults used by configuration. Zero delays in Options disable the pause;
// a zero MaxAttempts falls back to DefaultMaxAttempts.
const (
	DefaultMaxAttempts  = 3
	DefaultFailureDelay = time.Second
	DefaultLockoutDelay = 3 * time.Second
)

// Options tunes the ledger and its authenticator.
type Options struct {
	// AllowOverdraft lets withdrawals drive the balance below zero.
	AllowOverdraft bool

	MaxAttempts  int
	FailureDelay time.Duration
	LockoutDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.FailureDelay < 0 {
		o.FailureDelay = 0
	}
	if o.LockoutDelay < 0 {
		o.LockoutDelay = 0
	}
	return o
}
