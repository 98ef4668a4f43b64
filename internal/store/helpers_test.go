package store

import (
	"testing"

	"github.com/dmitrijs2005/gophbank/internal/cryptox"
	"github.com/dmitrijs2005/gophbank/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEngine *cryptox.Engine

func engine(t *testing.T) *cryptox.Engine {
	t.Helper()
	if testEngine == nil {
		e, err := cryptox.NewEngine()
		require.NoError(t, err)
		testEngine = e
	}
	return testEngine
}

// sampleAccounts returns alice with a deposit and a withdrawal, and bob with
// no transactions.
func sampleAccounts(t *testing.T) map[string]*models.Account {
	t.Helper()
	e := engine(t)

	alice, err := models.NewAccount(e, "alice", []byte("Secret1"))
	require.NoError(t, err)
	require.NoError(t, alice.Deposit(decimal.RequireFromString("50.00")))
	require.NoError(t, alice.Withdraw(decimal.RequireFromString("20.00")))

	bob, err := models.NewAccount(e, "bob", []byte("hunter2"))
	require.NoError(t, err)

	return map[string]*models.Account{"alice": alice, "bob": bob}
}

func requireSameAccounts(t *testing.T, want, got map[string]*models.Account) {
	t.Helper()
	require.Len(t, got, len(want))
	for name, w := range want {
		g, ok := got[name]
		require.True(t, ok, "missing account %q", name)

		ws, gs := w.State(), g.State()
		assert.Equal(t, ws.Username, gs.Username)
		assert.Equal(t, ws.Salt, gs.Salt)
		assert.Equal(t, ws.PasswordHash, gs.PasswordHash)
		assert.True(t, ws.Balance.Equal(gs.Balance), "balance %s != %s", ws.Balance, gs.Balance)
		assert.Equal(t, ws.LastKind, gs.LastKind)
		assert.True(t, ws.LastAmount.Equal(gs.LastAmount), "last amount %s != %s", ws.LastAmount, gs.LastAmount)
	}
}
