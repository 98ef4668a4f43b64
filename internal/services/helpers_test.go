package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophbank/internal/cryptox"
	"github.com/dmitrijs2005/gophbank/internal/logging"
	"github.com/dmitrijs2005/gophbank/internal/models"
	"github.com/dmitrijs2005/gophbank/internal/repositories/accounts"
	"github.com/dmitrijs2005/gophbank/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// stubSleep records requested delays instead of blocking.
func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var calls []time.Duration
	orig := sleep
	sleep = func(d time.Duration) { calls = append(calls, d) }
	t.Cleanup(func() { sleep = orig })
	return &calls
}

// passwords returns a prompt that yields the given candidates in order.
func passwords(list ...string) (PasswordPrompt, *[]int) {
	var attempts []int
	return func(attempt int) ([]byte, error) {
		attempts = append(attempts, attempt)
		if attempt >= len(list) {
			return nil, errors.New("no more passwords")
		}
		return []byte(list[attempt]), nil
	}, &attempts
}

func newPassword(pw string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(pw), nil }
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type env struct {
	ledger *Ledger
	repo   *accounts.Repository
	engine *cryptox.Engine
	path   string
	sleeps *[]time.Duration
}

func newEnv(t *testing.T, opts Options) *env {
	t.Helper()
	ctx := context.Background()

	e, err := cryptox.NewEngine()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Accounts.dat")
	repo, err := accounts.Load(ctx, store.NewFileStore(path, logging.NewNop()), logging.NewNop())
	require.NoError(t, err)

	return &env{
		ledger: NewLedger(repo, e, opts, logging.NewNop()),
		repo:   repo,
		engine: e,
		path:   path,
		sleeps: stubSleep(t),
	}
}

// reload reads the persisted store from disk into a fresh repository.
func (e *env) reload(t *testing.T) *accounts.Repository {
	t.Helper()
	repo, err := accounts.Load(context.Background(), store.NewFileStore(e.path, logging.NewNop()), logging.NewNop())
	require.NoError(t, err)
	return repo
}

type failingStore struct{}

func (failingStore) Load(context.Context) (map[string]*models.Account, error) {
	return map[string]*models.Account{}, nil
}
func (failingStore) Save(context.Context, map[string]*models.Account) error {
	return errors.New("disk full")
}
func (failingStore) Close() error { return nil }
