package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophbank/internal/common"
	"github.com/dmitrijs2005/gophbank/internal/cryptox"
	"github.com/dmitrijs2005/gophbank/internal/logging"
	"github.com/dmitrijs2005/gophbank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (*Authenticator, *models.Account) {
	t.Helper()
	e, err := cryptox.NewEngine()
	require.NoError(t, err)
	acc, err := models.NewAccount(e, "alice", []byte("Secret1"))
	require.NoError(t, err)
	opts := Options{FailureDelay: DefaultFailureDelay, LockoutDelay: DefaultLockoutDelay}
	return NewAuthenticator(e, opts, logging.NewNop()), acc
}

func TestVerify_FirstAttempt(t *testing.T) {
	sleeps := stubSleep(t)
	a, acc := newAuth(t)
	prompt, attempts := passwords("Secret1")

	require.NoError(t, a.Verify(context.Background(), acc, prompt))
	assert.Equal(t, []int{0}, *attempts)
	assert.Empty(t, *sleeps)
}

func TestVerify_SucceedsAfterMiss(t *testing.T) {
	sleeps := stubSleep(t)
	a, acc := newAuth(t)
	prompt, attempts := passwords("nope", "Secret1")

	require.NoError(t, a.Verify(context.Background(), acc, prompt))
	assert.Equal(t, []int{0, 1}, *attempts)
	assert.Equal(t, []time.Duration{DefaultFailureDelay}, *sleeps)
}

func TestVerify_ThreeFailuresUnauthorized(t *testing.T) {
	sleeps := stubSleep(t)
	a, acc := newAuth(t)
	before := acc.State()
	prompt, attempts := passwords("WrongPass", "WrongPass", "WrongPass", "Secret1")

	err := a.Verify(context.Background(), acc, prompt)
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	assert.Equal(t, []int{0, 1, 2}, *attempts, "fourth prompt must not happen")
	assert.Equal(t, []time.Duration{
		DefaultFailureDelay, DefaultFailureDelay, DefaultFailureDelay, DefaultLockoutDelay,
	}, *sleeps)

	after := acc.State()
	assert.Equal(t, before.Salt, after.Salt)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
	assert.True(t, before.Balance.Equal(after.Balance))
}

func TestVerify_PromptError(t *testing.T) {
	stubSleep(t)
	a, acc := newAuth(t)
	boom := errors.New("tty closed")

	err := a.Verify(context.Background(), acc, func(int) ([]byte, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}

func TestVerify_WipesCandidate(t *testing.T) {
	stubSleep(t)
	a, acc := newAuth(t)
	var given []byte

	err := a.Verify(context.Background(), acc, func(int) ([]byte, error) {
		given = []byte("Secret1")
		return given, nil
	})
	require.NoError(t, err)
	assert.Equal(t, make([]byte, len("Secret1")), given)
}

func TestOptions_WithDefaults(t *testing.T) {
	o := Options{MaxAttempts: 0, FailureDelay: -time.Second, LockoutDelay: -time.Second}.withDefaults()
	assert.Equal(t, DefaultMaxAttempts, o.MaxAttempts)
	assert.Zero(t, o.FailureDelay)
	assert.Zero(t, o.LockoutDelay)

	custom := Options{MaxAttempts: 5, FailureDelay: time.Millisecond}.withDefaults()
	assert.Equal(t, 5, custom.MaxAttempts)
	assert.Equal(t, time.Millisecond, custom.FailureDelay)
}
