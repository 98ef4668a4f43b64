// Package accounts holds the authoritative in-memory mapping of user name to
// account and its explicit load/save contract with a store.
//
// Mutations touch memory only; nothing reaches storage until Save.
package accounts

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/gophbank/internal/common"
	"github.com/dmitrijs2005/gophbank/internal/logging"
	"github.com/dmitrijs2005/gophbank/internal/models"
	"github.com/dmitrijs2005/gophbank/internal/store"
)

// Repository is not safe for concurrent use; the bank runs a single actor.
type Repository struct {
	accounts map[string]*models.Account
	store    store.Store
	log      logging.Logger
}

// Load reads the full mapping from st. Absent storage yields an empty
// repository; any other failure is returned and the repository is unusable.
func Load(ctx context.Context, st store.Store, log logging.Logger) (*Repository, error) {
	accounts, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	if accounts == nil {
		accounts = make(map[string]*models.Account)
	}

	log.Info(ctx, "account repository ready", "accounts", len(accounts))
	return &Repository{accounts: accounts, store: st, log: log}, nil
}

// Add inserts or overwrites acc under its user name.
func (r *Repository) Add(acc *models.Account) {
	r.accounts[acc.Username()] = acc
}

// Get returns the account for username or common.ErrorNotFound.
func (r *Repository) Get(username string) (*models.Account, error) {
	acc, ok := r.accounts[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return acc, nil
}

// Exists reports whether username is present.
func (r *Repository) Exists(username string) bool {
	_, ok := r.accounts[username]
	return ok
}

// Remove deletes username. Removing an absent name is a no-op.
func (r *Repository) Remove(username string) {
	delete(r.accounts, username)
}

// Usernames lists all user names in ascending order.
func (r *Repository) Usernames() []string {
	names := make([]string, 0, len(r.accounts))
	for name := range r.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Repository) Len() int { return len(r.accounts) }

// Save writes the whole mapping to the bound store.
func (r *Repository) Save(ctx context.Context) error {
	return r.SaveTo(ctx, r.store)
}

// SaveTo writes the whole mapping to st, e.g. when converting backends.
func (r *Repository) SaveTo(ctx context.Context, st store.Store) error {
	if err := st.Save(ctx, r.accounts); err != nil {
		r.log.Error(ctx, "failed to persist accounts", "error", err)
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}
