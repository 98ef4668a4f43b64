// Package store persists the full account mapping. Every backend loads the
// whole mapping at once and overwrites it on save; there is no incremental
// update format.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophbank/internal/logging"
	"github.com/dmitrijs2005/gophbank/internal/models"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var (
	ErrUnknownBackend     = errors.New("unknown store backend")
	ErrCorruptStore       = errors.New("corrupt account store")
	ErrUnsupportedVersion = errors.New("unsupported account store version")
)

// Store is the durable side of the account repository.
//
// Load returns an empty, non-nil map when nothing has been stored yet. Any
// other failure means the stored set cannot be trusted and must be treated
// as fatal by the caller.
type Store interface {
	Load(ctx context.Context) (map[string]*models.Account, error)
	Save(ctx context.Context, accounts map[string]*models.Account) error
	Close() error
}

// Open returns the Store for backend at path.
func Open(ctx context.Context, backend, path string, log logging.Logger) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path, log), nil
	case BackendSQLite:
		return NewSQLiteStore(ctx, path, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
