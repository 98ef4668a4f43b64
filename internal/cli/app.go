package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophbank/internal/config"
	"github.com/dmitrijs2005/gophbank/internal/cryptox"
	"github.com/dmitrijs2005/gophbank/internal/logging"
	"github.com/dmitrijs2005/gophbank/internal/repositories/accounts"
	"github.com/dmitrijs2005/gophbank/internal/services"
	"github.com/dmitrijs2005/gophbank/internal/store"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// App is the console shell around the ledger service.
type App struct {
	config *config.Config
	ledger *services.Ledger
	repo   *accounts.Repository
	store  store.Store
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the credential engine, opens the configured store and loads
// every account. Logs go to logOut; the menu reads in and writes out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	log, err := logging.New(logOut, c.LogLevel)
	if err != nil {
		return nil, err
	}

	engine, err := cryptox.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("credential engine: %w", err)
	}

	st, err := store.Open(ctx, c.Backend, c.StorePath, log)
	if err != nil {
		return nil, err
	}

	repo, err := accounts.Load(ctx, st, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	opts := services.Options{
		AllowOverdraft: c.AllowOverdraft,
		MaxAttempts:    c.MaxAttempts,
		FailureDelay:   c.FailureDelay,
		LockoutDelay:   c.LockoutDelay,
	}

	return &App{
		config: c,
		ledger: services.NewLedger(repo, engine, opts, log),
		repo:   repo,
		store:  st,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}

// ListAccounts writes every user name, one per line.
func (a *App) ListAccounts(w io.Writer) error {
	for _, name := range a.ledger.Usernames() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// Convert copies every account into a store of another backend or path.
func (a *App) Convert(ctx context.Context, backend, path string) error {
	target, err := store.Open(ctx, backend, path, a.log)
	if err != nil {
		return err
	}
	defer target.Close()

	if err := a.repo.SaveTo(ctx, target); err != nil {
		return err
	}

	a.log.Info(ctx, "accounts converted", "backend", backend, "path", path, "count", a.repo.Len())
	return nil
}
