package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophbank/internal/filex"
	"github.com/dmitrijs2005/gophbank/internal/logging"
	"github.com/dmitrijs2005/gophbank/internal/models"
)

// FileStore keeps the encoded account document in a single file.
type FileStore struct {
	path string
	log  logging.Logger
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string, log logging.Logger) *FileStore {
	return &FileStore{path: path, log: log.With("store", BackendFile, "path", path)}
}

// Load reads and decodes the file. A missing or zero-length file yields an
// empty mapping.
func (s *FileStore) Load(ctx context.Context) (map[string]*models.Account, error) {
	ok, err := filex.Exists(s.path)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Info(ctx, "no account store found, starting empty")
		return map[string]*models.Account{}, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	accounts, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}

	s.log.Debug(ctx, "accounts loaded", "count", len(accounts))
	return accounts, nil
}

// Save writes the document to a temporary file next to the target, syncs it
// and renames it over the target. The previous file stays intact until the
// rename succeeds.
func (s *FileStore) Save(ctx context.Context, accounts map[string]*models.Account) (err error) {
	data, err := Encode(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}

	dir, err := filex.EnsureParentDir(s.path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	s.log.Debug(ctx, "accounts saved", "count", len(accounts))
	return nil
}

func (s *FileStore) Close() error { return nil }
