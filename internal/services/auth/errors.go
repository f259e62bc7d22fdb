package auth

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is temporarily locked")
	ErrWeakPassword       = errors.New("password is too weak")
)

// InvalidCredentialsError is returned on a wrong password while the lockout
// threshold has not been reached yet. AttemptsLeft is how many more failures
// the account tolerates before it locks.
type InvalidCredentialsError struct {
	AttemptsLeft int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials, %d attempt(s) left", e.AttemptsLeft)
}

func (e *InvalidCredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// LockedError is returned while the account is under lockout, whether freshly
// triggered or still active from an earlier trigger.
type LockedError struct {
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account is temporarily locked, try again in %ds", e.Seconds())
}

func (e *LockedError) Is(target error) bool {
	return target == ErrAccountLocked
}

// Seconds is the remaining lock time rounded up, never below 1. Rounding up
// means a lock is never reported shorter than it actually is.
func (e *LockedError) Seconds() int {
	s := int(math.Ceil(e.Remaining.Seconds()))
	if s < 1 {
		s = 1
	}
	return s
}

// WeakPasswordError reports every strength rule the candidate password failed.
type WeakPasswordError struct {
	Reasons []string
}

func (e *WeakPasswordError) Error() string {
	return "weak password: " + strings.Join(e.Reasons, ", ")
}

func (e *WeakPasswordError) Is(target error) bool {
	return target == ErrWeakPassword
}
