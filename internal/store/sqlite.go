package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophbank/internal/filex"
	"github.com/dmitrijs2005/gophbank/internal/logging"
	"github.com/dmitrijs2005/gophbank/internal/migrations"
	"github.com/dmitrijs2005/gophbank/internal/models"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps accounts in a single SQLite database file.
type SQLiteStore struct {
	db  *sql.DB
	log logging.Logger
}

var _ Store = (*SQLiteStore)(nil)

// gooseUp is a seam for testing goose.UpContext.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewSQLiteStore opens (or creates) the database at path and applies the
// embedded migrations. A file that is not a SQLite database fails here.
func NewSQLiteStore(ctx context.Context, path string, log logging.Logger) (*SQLiteStore, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// single writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return &SQLiteStore{db: db, log: log.With("store", BackendSQLite, "path", path)}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return gooseUp(ctx, db, ".")
}

func (s *SQLiteStore) Load(ctx context.Context) (map[string]*models.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, salt, password_hash, balance, last_kind, last_amount
		FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]*models.Account)
	for rows.Next() {
		var (
			state      models.AccountState
			lastKind   string
			lastAmount decimal.NullDecimal
		)
		if err := rows.Scan(&state.Username, &state.Salt, &state.PasswordHash, &state.Balance, &lastKind, &lastAmount); err != nil {
			return nil, fmt.Errorf("%w: scan account row: %v", ErrCorruptStore, err)
		}

		kind, err := models.ParseTransactionKind(lastKind)
		if err != nil {
			return nil, fmt.Errorf("%w: account %q: %v", ErrCorruptStore, state.Username, err)
		}
		if kind != models.TransactionNone {
			if !lastAmount.Valid {
				return nil, fmt.Errorf("%w: account %q: %s without amount", ErrCorruptStore, state.Username, kind)
			}
			state.LastKind = kind
			state.LastAmount = lastAmount.Decimal
		}

		acc, err := models.RestoreAccount(state)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
		}
		accounts[acc.Username()] = acc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}

	s.log.Debug(ctx, "accounts loaded", "count", len(accounts))
	return accounts, nil
}

// Save replaces every stored row with accounts inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, accounts map[string]*models.Account) error {
	err := withTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
			return fmt.Errorf("failed to clear accounts: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO accounts (username, salt, password_hash, balance, last_kind, last_amount)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, name := range sortedKeys(accounts) {
			st := accounts[name].State()
			last := decimal.NullDecimal{}
			if st.LastKind != models.TransactionNone {
				last = decimal.NewNullDecimal(st.LastAmount)
			}
			if _, err := stmt.ExecContext(ctx, st.Username, st.Salt, st.PasswordHash, st.Balance.String(), st.LastKind.String(), last); err != nil {
				return fmt.Errorf("failed to insert account[%s]: %w", st.Username, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug(ctx, "accounts saved", "count", len(accounts))
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// withTx begins a transaction, runs fn, and commits on success or rolls
// back on error/panic. Panics are rethrown.
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
