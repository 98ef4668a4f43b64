// Package cryptox implements the credential engine: salted, iterated
// password key derivation (PBKDF2-HMAC-SHA512) and verification.
package cryptox

import (
	"crypto"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophbank/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of a per-account salt in bytes.
	SaltSize = 16
	// Iterations is the PBKDF2 iteration count.
	Iterations = 65536
	// KeySize is the derived hash length in bytes (512 bits).
	KeySize = 64
)

// ErrPrimitiveUnavailable is returned by NewEngine when the hash function or
// the random source cannot be used.
var ErrPrimitiveUnavailable = errors.New("crypto primitive unavailable")

// Engine derives and verifies password hashes. It holds no per-account state;
// the only shared resource is the random source used for new salts.
type Engine struct {
	rand io.Reader
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandReader replaces crypto/rand.Reader as the salt source.
// Intended for tests.
func WithRandReader(r io.Reader) Option {
	return func(e *Engine) { e.rand = r }
}

// NewEngine constructs an Engine and checks that SHA-512 is available and the
// random source yields bytes. Either failure means the engine cannot exist and
// is reported as ErrPrimitiveUnavailable.
//
// The random source check reads (and discards) one byte, so every call
// consumes entropy from the configured reader.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{rand: rand.Reader}
	for _, opt := range opts {
		opt(e)
	}

	if !crypto.SHA512.Available() {
		return nil, fmt.Errorf("%w: sha512", ErrPrimitiveUnavailable)
	}
	if e.rand == nil {
		return nil, fmt.Errorf("%w: no random source", ErrPrimitiveUnavailable)
	}
	probe, err := common.ReadRandBytes(e.rand, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrimitiveUnavailable, err)
	}
	common.WipeByteArray(probe)

	return e, nil
}

// NewSalt returns SaltSize fresh random bytes.
func (e *Engine) NewSalt() ([]byte, error) {
	return common.ReadRandBytes(e.rand, SaltSize)
}

// Derive stretches password with salt through PBKDF2-HMAC-SHA512 using
// Iterations rounds and returns a KeySize-byte hash.
//
// Derive is deterministic: identical inputs always yield identical output.
//
// Example:
//
//	e, err := cryptox.NewEngine()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	salt, _ := e.NewSalt()
//	hash := e.Derive([]byte("Secret1"), salt)
//	ok := e.Verify([]byte("Secret1"), salt, hash) // true
func (e *Engine) Derive(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeySize, sha512.New)
}

// Verify recomputes the hash for candidate and compares it with stored in
// constant time. Any length or content mismatch returns false.
func (e *Engine) Verify(candidate, salt, stored []byte) bool {
	got := e.Derive(candidate, salt)
	defer common.WipeByteArray(got)
	return subtle.ConstantTimeCompare(got, stored) == 1
}
