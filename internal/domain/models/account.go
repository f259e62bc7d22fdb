package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user. Username is unique case-insensitively and
// never changes after registration.
type Account struct {
	ID             uuid.UUID
	Username       string
	PassHash       string
	FailedAttempts int
	LockedUntil    time.Time
	CreatedAt      time.Time
}

// Locked reports whether the account is under an active lockout at the given
// moment. A zero LockedUntil means no lock is set.
func (a *Account) Locked(now time.Time) bool {
	return !a.LockedUntil.IsZero() && a.LockedUntil.After(now)
}
