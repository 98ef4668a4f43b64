package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophbank/internal/common"
	"github.com/dmitrijs2005/gophbank/internal/cryptox"
	"github.com/dmitrijs2005/gophbank/internal/logging"
	"github.com/dmitrijs2005/gophbank/internal/models"
)

// PasswordPrompt supplies a candidate password. attempt starts at 0, so a
// positive value means the previous candidate was rejected. The returned
// slice is wiped after use.
type PasswordPrompt func(attempt int) ([]byte, error)

// sleep is a test seam for the throttle delays.
var sleep = time.Sleep

// Authenticator checks a password against an account with a bounded number
// of attempts. Each miss blocks for FailureDelay; running out of attempts
// blocks for LockoutDelay. This is a crude throttle, not a persistent lockout.
type Authenticator struct {
	engine       *cryptox.Engine
	maxAttempts  int
	failureDelay time.Duration
	lockoutDelay time.Duration
	log          logging.Logger
}

func NewAuthenticator(engine *cryptox.Engine, opts Options, log logging.Logger) *Authenticator {
	opts = opts.withDefaults()
	return &Authenticator{
		engine:       engine,
		maxAttempts:  opts.MaxAttempts,
		failureDelay: opts.FailureDelay,
		lockoutDelay: opts.LockoutDelay,
		log:          log,
	}
}

// Verify prompts until a candidate matches or attempts run out, in which case
// it returns common.ErrorUnauthorized. The account is never modified.
// A prompt error aborts immediately and is returned wrapped.
func (a *Authenticator) Verify(ctx context.Context, acc *models.Account, prompt PasswordPrompt) error {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		candidate, err := prompt(attempt)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		ok := acc.ValidatePassword(a.engine, candidate)
		common.WipeByteArray(candidate)
		if ok {
			return nil
		}

		a.log.Warn(ctx, "incorrect password", "user", acc.Username(), "attempt", attempt+1)
		sleep(a.failureDelay)
	}

	a.log.Warn(ctx, "too many incorrect passwords", "user", acc.Username())
	sleep(a.lockoutDelay)
	return common.ErrorUnauthorized
}
