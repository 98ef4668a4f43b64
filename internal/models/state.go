package models

import (
	"fmt"

	"github.com/dmitrijs2005/gophbank/internal/common"
	"github.com/dmitrijs2005/gophbank/internal/cryptox"
	"github.com/shopspring/decimal"
)

// AccountState is the flat, persistable view of an Account. Stores encode
// and decode this struct field by field.
type AccountState struct {
	Username     string
	Salt         []byte
	PasswordHash []byte
	Balance      decimal.Decimal
	LastKind     TransactionKind
	LastAmount   decimal.Decimal
}

// State returns a copy of the account's persistable fields.
func (a *Account) State() AccountState {
	return AccountState{
		Username:     a.username,
		Salt:         common.CloneBytes(a.salt),
		PasswordHash: common.CloneBytes(a.passwordHash),
		Balance:      a.balance,
		LastKind:     a.last.Kind,
		LastAmount:   a.last.Amount,
	}
}

// RestoreAccount rebuilds an Account from persisted state.
func RestoreAccount(s AccountState) (*Account, error) {
	if s.Username == "" {
		return nil, common.ErrorInvalidUsername
	}
	if len(s.Salt) != cryptox.SaltSize {
		return nil, fmt.Errorf("account %q: salt must be %d bytes, got %d", s.Username, cryptox.SaltSize, len(s.Salt))
	}
	if len(s.PasswordHash) != cryptox.KeySize {
		return nil, fmt.Errorf("account %q: password hash must be %d bytes, got %d", s.Username, cryptox.KeySize, len(s.PasswordHash))
	}

	a := &Account{
		username:     s.Username,
		salt:         common.CloneBytes(s.Salt),
		passwordHash: common.CloneBytes(s.PasswordHash),
		balance:      s.Balance,
	}
	if s.LastKind != TransactionNone {
		a.last = Transaction{Kind: s.LastKind, Amount: s.LastAmount}
	}
	return a, nil
}
