package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophbank/internal/common"
	"github.com/dmitrijs2005/gophbank/internal/cryptox"
	"github.com/dmitrijs2005/gophbank/internal/logging"
	"github.com/dmitrijs2005/gophbank/internal/models"
	"github.com/dmitrijs2005/gophbank/internal/repositories/accounts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountInfo is a read-only view of an account for display.
type AccountInfo struct {
	Username        string
	Balance         decimal.Decimal
	LastTransaction *models.Transaction
}

// Ledger runs account operations against the repository and persists after
// every mutation. Each call runs to completion before the next; there is no
// locking around the lookup-mutate-save cycle.
type Ledger struct {
	repo           *accounts.Repository
	engine         *cryptox.Engine
	auth           *Authenticator
	allowOverdraft bool
	log            logging.Logger
}

func NewLedger(repo *accounts.Repository, engine *cryptox.Engine, opts Options, log logging.Logger) *Ledger {
	return &Ledger{
		repo:           repo,
		engine:         engine,
		auth:           NewAuthenticator(engine, opts, log),
		allowOverdraft: opts.AllowOverdraft,
		log:            log,
	}
}

// Register creates username with password, saves the repository and returns
// a session for the new account. The caller keeps ownership of password.
func (l *Ledger) Register(ctx context.Context, username string, password []byte) (*Session, error) {
	if username == "" {
		return nil, common.ErrorInvalidUsername
	}
	if l.repo.Exists(username) {
		return nil, common.ErrorAlreadyExists
	}

	acc, err := models.NewAccount(l.engine, username, password)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	l.repo.Add(acc)

	if err := l.persist(ctx, "register"); err != nil {
		return nil, err
	}

	l.log.Info(ctx, "account created", "user", username)
	return l.startSession(ctx, acc), nil
}

// Open authenticates username via prompt and returns a session.
func (l *Ledger) Open(ctx context.Context, username string, prompt PasswordPrompt) (*Session, error) {
	acc, err := l.repo.Get(username)
	if err != nil {
		return nil, err
	}
	if err := l.auth.Verify(ctx, acc, prompt); err != nil {
		return nil, err
	}
	return l.startSession(ctx, acc), nil
}

// Logout ends s. Calling it on an ended or nil session is a no-op.
func (l *Ledger) Logout(ctx context.Context, s *Session) {
	if !s.Active() {
		return
	}
	s.ended = true
	l.log.Info(ctx, "session ended", "session_id", s.ID.String(), "user", s.Username,
		"duration", time.Since(s.StartedAt).Round(time.Millisecond).String())
}

func (l *Ledger) Info(s *Session) (AccountInfo, error) {
	acc, err := l.account(s)
	if err != nil {
		return AccountInfo{}, err
	}
	info := AccountInfo{Username: acc.Username(), Balance: acc.Balance()}
	if last, ok := acc.LastTransaction(); ok {
		info.LastTransaction = &last
	}
	return info, nil
}

func (l *Ledger) Balance(s *Session) (decimal.Decimal, error) {
	acc, err := l.account(s)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Balance(), nil
}

// Deposit adds amount and returns the new balance.
func (l *Ledger) Deposit(ctx context.Context, s *Session, amount decimal.Decimal) (decimal.Decimal, error) {
	acc, err := l.account(s)
	if err != nil {
		return decimal.Zero, err
	}
	if err := acc.Deposit(amount); err != nil {
		return acc.Balance(), err
	}
	if err := l.persist(ctx, "deposit"); err != nil {
		return acc.Balance(), err
	}
	l.log.Debug(ctx, "deposit", "session_id", s.ID.String(), "amount", amount.String())
	return acc.Balance(), nil
}

// Withdraw subtracts amount and returns the new balance. Without overdraft
// it fails with common.ErrorInsufficientFunds when amount exceeds the balance.
func (l *Ledger) Withdraw(ctx context.Context, s *Session, amount decimal.Decimal) (decimal.Decimal, error) {
	acc, err := l.account(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !l.allowOverdraft && amount.GreaterThan(acc.Balance()) {
		return acc.Balance(), common.ErrorInsufficientFunds
	}
	if err := acc.Withdraw(amount); err != nil {
		return acc.Balance(), err
	}
	if err := l.persist(ctx, "withdraw"); err != nil {
		return acc.Balance(), err
	}
	l.log.Debug(ctx, "withdrawal", "session_id", s.ID.String(), "amount", amount.String())
	return acc.Balance(), nil
}

// ChangePassword re-authenticates with current, then sets the password read
// from next. Failed re-authentication ends the session and returns
// common.ErrorUnauthorized.
func (l *Ledger) ChangePassword(ctx context.Context, s *Session, current PasswordPrompt, next func() ([]byte, error)) error {
	acc, err := l.account(s)
	if err != nil {
		return err
	}
	if err := l.reauthenticate(ctx, s, acc, current); err != nil {
		return err
	}

	password, err := next()
	if err != nil {
		return fmt.Errorf("read new password: %w", err)
	}
	defer common.WipeByteArray(password)

	if err := acc.ChangePassword(l.engine, password); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := l.persist(ctx, "change password"); err != nil {
		return err
	}

	l.log.Info(ctx, "password changed", "session_id", s.ID.String(), "user", s.Username)
	return nil
}

// DeleteAccount re-authenticates and removes the account. The session ends
// whether or not re-authentication succeeds.
func (l *Ledger) DeleteAccount(ctx context.Context, s *Session, prompt PasswordPrompt) error {
	acc, err := l.account(s)
	if err != nil {
		return err
	}
	defer l.Logout(ctx, s)

	if err := l.auth.Verify(ctx, acc, prompt); err != nil {
		return err
	}

	l.repo.Remove(acc.Username())
	if err := l.persist(ctx, "delete account"); err != nil {
		return err
	}

	l.log.Info(ctx, "account deleted", "user", acc.Username())
	return nil
}

// Exists reports whether username is taken.
func (l *Ledger) Exists(username string) bool {
	return l.repo.Exists(username)
}

// Usernames lists known accounts.
func (l *Ledger) Usernames() []string {
	return l.repo.Usernames()
}

func (l *Ledger) startSession(ctx context.Context, acc *models.Account) *Session {
	s := &Session{ID: uuid.New(), Username: acc.Username(), StartedAt: time.Now().UTC()}
	l.log.Info(ctx, "session started", "session_id", s.ID.String(), "user", s.Username)
	return s
}

func (l *Ledger) account(s *Session) (*models.Account, error) {
	if !s.Active() {
		return nil, common.ErrorUnauthorized
	}
	return l.repo.Get(s.Username)
}

func (l *Ledger) reauthenticate(ctx context.Context, s *Session, acc *models.Account, prompt PasswordPrompt) error {
	if err := l.auth.Verify(ctx, acc, prompt); err != nil {
		l.Logout(ctx, s)
		return err
	}
	return nil
}

func (l *Ledger) persist(ctx context.Context, op string) error {
	if err := l.repo.Save(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
