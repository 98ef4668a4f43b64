package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/gophbank/internal/models"
	"github.com/shopspring/decimal"
)

// FormatVersion is the current version of the encoded account document.
const FormatVersion = 1

// document is the on-disk envelope:
//
//	{
//	  "version": 1,
//	  "accounts": [
//	    {
//	      "username": "alice",
//	      "salt": "<base64>",
//	      "password_hash": "<base64>",
//	      "balance": "30",
//	      "last_transaction": {"kind": "withdrawal", "amount": "20"}
//	    }
//	  ]
//	}
type document struct {
	Version  int             `json:"version"`
	Accounts []accountRecord `json:"accounts"`
}

type accountRecord struct {
	Username     string          `json:"username"`
	Salt         []byte          `json:"salt"`
	PasswordHash []byte          `json:"password_hash"`
	Balance      decimal.Decimal `json:"balance"`
	Last         *lastRecord     `json:"last_transaction,omitempty"`
}

type lastRecord struct {
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// Encode serializes accounts into a versioned document, ordered by username.
func Encode(accounts map[string]*models.Account) ([]byte, error) {
	doc := document{Version: FormatVersion, Accounts: make([]accountRecord, 0, len(accounts))}

	for _, name := range sortedKeys(accounts) {
		s := accounts[name].State()
		rec := accountRecord{
			Username:     s.Username,
			Salt:         s.Salt,
			PasswordHash: s.PasswordHash,
			Balance:      s.Balance,
		}
		if s.LastKind != models.TransactionNone {
			rec.Last = &lastRecord{Kind: s.LastKind.String(), Amount: s.LastAmount}
		}
		doc.Accounts = append(doc.Accounts, rec)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a document produced by Encode. Entries with a repeated
// username replace earlier ones.
func Decode(data []byte) (map[string]*models.Account, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if doc.Version == 0 {
		return nil, fmt.Errorf("%w: missing version", ErrCorruptStore)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	accounts := make(map[string]*models.Account, len(doc.Accounts))
	for i, rec := range doc.Accounts {
		state := models.AccountState{
			Username:     rec.Username,
			Salt:         rec.Salt,
			PasswordHash: rec.PasswordHash,
			Balance:      rec.Balance,
		}
		if rec.Last != nil {
			kind, err := models.ParseTransactionKind(rec.Last.Kind)
			if err != nil {
				return nil, fmt.Errorf("%w: account #%d: %v", ErrCorruptStore, i, err)
			}
			state.LastKind = kind
			state.LastAmount = rec.Last.Amount
		}

		acc, err := models.RestoreAccount(state)
		if err != nil {
			return nil, fmt.Errorf("%w: account #%d: %v", ErrCorruptStore, i, err)
		}
		accounts[acc.Username()] = acc
	}

	return accounts, nil
}

func sortedKeys(accounts map[string]*models.Account) []string {
	keys := make([]string, 0, len(accounts))
	for k := range accounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
