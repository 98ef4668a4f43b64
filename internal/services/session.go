package services

import (
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated-account context handed to the shell by
// Register or Open. It stays valid until Logout, a failed re-authentication,
// or deletion of the account.
type Session struct {
	ID        uuid.UUID
	Username  string
	StartedAt time.Time

	ended bool
}

// Active reports whether s can still be used for account operations.
func (s *Session) Active() bool {
	return s != nil && !s.ended
}
