// Package common defines shared sentinel errors and small byte helpers used
// across the bank core and its shell. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorInvalidUsername = errors.New("invalid user name")
	ErrorInvalidAmount   = errors.New("amount must be positive")

	// Balance-specific errors.
	ErrorInsufficientFunds = errors.New("insufficient funds")
)
