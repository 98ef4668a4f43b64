// Package services contains the bank's application services: password
// authentication with a bounded retry throttle, and the ledger operations a
// shell runs against an authenticated session.
//
// Expected user-facing outcomes are reported as sentinel errors from package
// common (ErrorNotFound, ErrorUnauthorized, ErrorAlreadyExists,
// ErrorInvalidAmount, ErrorInsufficientFunds). Every other error means the
// account set could not be persisted and the caller should stop.
package services
