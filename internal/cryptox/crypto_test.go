package cryptox

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine()
	require.NoError(t, err)
	return e
}

func TestNewSalt_LengthAndEntropy(t *testing.T) {
	e := newEngine(t)

	s1, err := e.NewSalt()
	require.NoError(t, err)
	s2, err := e.NewSalt()
	require.NoError(t, err)

	assert.Len(t, s1, SaltSize)
	assert.Len(t, s2, SaltSize)
	assert.NotEqual(t, s1, s2)
}

func TestDerive_Deterministic(t *testing.T) {
	e := newEngine(t)
	password := []byte("secret-password")
	salt := []byte("fixed-salt-16byt")

	key1 := e.Derive(password, salt)
	key2 := e.Derive(password, salt)

	// одинаковые входы -> одинаковый вывод
	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	assert.Len(t, key1, KeySize)
}

func TestDerive_DifferentPasswords(t *testing.T) {
	e := newEngine(t)
	salt := []byte("fixed-salt-16byt")

	assert.NotEqual(t, e.Derive([]byte("p1"), salt), e.Derive([]byte("p2"), salt))
}

func TestDerive_DifferentSalts(t *testing.T) {
	e := newEngine(t)
	s1, err := e.NewSalt()
	require.NoError(t, err)
	s2, err := e.NewSalt()
	require.NoError(t, err)

	password := []byte("secret-password")
	if bytes.Equal(e.Derive(password, s1), e.Derive(password, s2)) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestVerify(t *testing.T) {
	e := newEngine(t)
	salt, err := e.NewSalt()
	require.NoError(t, err)
	hash := e.Derive([]byte("Secret1"), salt)

	tests := []struct {
		name      string
		candidate []byte
		stored    []byte
		want      bool
	}{
		{name: "correct password", candidate: []byte("Secret1"), stored: hash, want: true},
		{name: "wrong password", candidate: []byte("WrongPass"), stored: hash, want: false},
		{name: "empty password", candidate: []byte{}, stored: hash, want: false},
		{name: "truncated hash", candidate: []byte("Secret1"), stored: hash[:KeySize-1], want: false},
		{name: "nil hash", candidate: []byte("Secret1"), stored: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Verify(tt.candidate, salt, tt.stored))
		})
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestNewEngine_BrokenRandomSource(t *testing.T) {
	_, err := NewEngine(WithRandReader(brokenReader{}))
	require.ErrorIs(t, err, ErrPrimitiveUnavailable)
}

func TestNewEngine_NilRandomSource(t *testing.T) {
	_, err := NewEngine(WithRandReader(nil))
	require.ErrorIs(t, err, ErrPrimitiveUnavailable)
}

func TestNewEngine_CustomReader(t *testing.T) {
	e, err := NewEngine(WithRandReader(rand.Reader))
	require.NoError(t, err)
	s, err := e.NewSalt()
	require.NoError(t, err)
	assert.Len(t, s, SaltSize)
}

func TestNewEngine_ConsumesOneByte(t *testing.T) {
	src := bytes.NewReader(make([]byte, 1+SaltSize))

	e, err := NewEngine(WithRandReader(src))
	require.NoError(t, err)
	assert.Equal(t, SaltSize, src.Len())

	_, err = e.NewSalt()
	require.NoError(t, err)
	assert.Zero(t, src.Len())
}
