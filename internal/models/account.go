// Package models defines the account record held by the repository.
package models

import (
	"fmt"

	"github.com/dmitrijs2005/gophbank/internal/common"
	"github.com/dmitrijs2005/gophbank/internal/cryptox"
	"github.com/shopspring/decimal"
)

// TransactionKind tells which operation last changed the balance.
type TransactionKind uint8

const (
	TransactionNone TransactionKind = iota
	TransactionDeposit
	TransactionWithdrawal
)

func (k TransactionKind) String() string {
	switch k {
	case TransactionDeposit:
		return "deposit"
	case TransactionWithdrawal:
		return "withdrawal"
	default:
		return "none"
	}
}

// ParseTransactionKind is the inverse of TransactionKind.String.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch s {
	case "", "none":
		return TransactionNone, nil
	case "deposit":
		return TransactionDeposit, nil
	case "withdrawal":
		return TransactionWithdrawal, nil
	default:
		return TransactionNone, fmt.Errorf("unknown transaction kind %q", s)
	}
}

// Transaction is the most recent balance change.
type Transaction struct {
	Kind   TransactionKind
	Amount decimal.Decimal
}

// Account is one user's record. The plaintext password is never stored;
// passwordHash always corresponds to the current salt.
type Account struct {
	username     string
	salt         []byte
	passwordHash []byte
	balance      decimal.Decimal
	last         Transaction
}

// NewAccount creates an account with a zero balance and a fresh salt/hash
// pair derived from password.
func NewAccount(e *cryptox.Engine, username string, password []byte) (*Account, error) {
	if username == "" {
		return nil, common.ErrorInvalidUsername
	}
	a := &Account{username: username, balance: decimal.Zero}
	if err := a.ChangePassword(e, password); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Account) Username() string         { return a.username }
func (a *Account) Balance() decimal.Decimal { return a.balance }
func (a *Account) Salt() []byte             { return common.CloneBytes(a.salt) }
func (a *Account) PasswordHash() []byte     { return common.CloneBytes(a.passwordHash) }

// LastTransaction reports the most recent deposit or withdrawal. The second
// result is false before any transaction.
func (a *Account) LastTransaction() (Transaction, bool) {
	return a.last, a.last.Kind != TransactionNone
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return common.ErrorInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	a.last = Transaction{Kind: TransactionDeposit, Amount: amount}
	return nil
}

// Withdraw subtracts amount from the balance. The balance may go negative;
// callers enforce any overdraft policy.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return common.ErrorInvalidAmount
	}
	a.balance = a.balance.Sub(amount)
	a.last = Transaction{Kind: TransactionWithdrawal, Amount: amount}
	return nil
}

// ValidatePassword reports whether candidate matches the stored hash.
func (a *Account) ValidatePassword(e *cryptox.Engine, candidate []byte) bool {
	return e.Verify(candidate, a.salt, a.passwordHash)
}

// ChangePassword regenerates the salt and derives a new hash. On error the
// account keeps its previous credentials.
func (a *Account) ChangePassword(e *cryptox.Engine, password []byte) error {
	salt, err := e.NewSalt()
	if err != nil {
		return fmt.Errorf("new salt: %w", err)
	}
	a.salt = salt
	a.passwordHash = e.Derive(password, salt)
	return nil
}
