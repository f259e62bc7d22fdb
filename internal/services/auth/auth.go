package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"authcore/internal/domain/models"
	"authcore/internal/lib/hash"
	"authcore/internal/lib/logger/sl"
	"authcore/internal/storage"
	"github.com/google/uuid"
)

// Metric label values for failed login attempts.
const (
	reasonBadPassword = "bad_password"
	reasonLocked      = "locked"
	reasonLockout     = "lockout_triggered"
)

type Auth struct {
	log             *slog.Logger
	accountSaver    AccountSaver
	accountProvider AccountProvider
	accountUpdater  AccountUpdater
	hasher          hash.Hasher
	maxAttempts     int
	lockoutFor      time.Duration
	failedLogins    *prometheus.CounterVec
	now             func() time.Time

	// mu serializes the read-check-write sequence of Login so two
	// concurrent attempts against one account cannot lose a counter
	// update or both slip under the lockout threshold.
	mu sync.Mutex
}

type AccountSaver interface {
	SaveAccount(ctx context.Context, account models.Account) (models.Account, error)
}

type AccountProvider interface {
	Account(ctx context.Context, username string) (models.Account, error)
	Accounts(ctx context.Context) ([]models.Account, error)
}

type AccountUpdater interface {
	UpdateAccount(ctx context.Context, account models.Account) error
}

// New returns a new instance of the Auth service
func New(
	log *slog.Logger,
	accountSaver AccountSaver,
	accountProvider AccountProvider,
	accountUpdater AccountUpdater,
	hasher hash.Hasher,
	maxAttempts int,
	lockoutFor time.Duration,
	failedLogins *prometheus.CounterVec,
) *Auth {
	return &Auth{
		log:             log,
		accountSaver:    accountSaver,
		accountProvider: accountProvider,
		accountUpdater:  accountUpdater,
		hasher:          hasher,
		maxAttempts:     maxAttempts,
		lockoutFor:      lockoutFor,
		failedLogins:    failedLogins,
		now:             time.Now,
	}
}

// WithClock replaces the wall clock, so tests can simulate lockout expiry
// without sleeping.
func (a *Auth) WithClock(now func() time.Time) *Auth {
	a.now = now
	return a
}

// Register creates a new account. Fails with ErrAccountExists if the
// case-insensitive username is taken, or ErrWeakPassword if the password
// fails the strength policy.
func (a *Auth) Register(ctx context.Context, username, password string) (models.Account, error) {
	const op = "auth.Register"
	log := a.log.With(slog.String("op", op), slog.String("username", username))
	log.Info("registering new account")

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.accountProvider.Account(ctx, username); err == nil {
		log.Warn("account already exists")
		return models.Account{}, fmt.Errorf("%s: %w", op, ErrAccountExists)
	} else if !errors.Is(err, storage.ErrAccountNotFound) {
		log.Error("failed to check account", sl.Err(err))
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := ValidatePasswordStrength(password); err != nil {
		log.Warn("weak password rejected", sl.Err(err))
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	passHash, err := a.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	account := models.Account{
		ID:        uuid.New(),
		Username:  username,
		PassHash:  passHash,
		CreatedAt: a.now(),
	}

	saved, err := a.accountSaver.SaveAccount(ctx, account)
	if err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			return models.Account{}, fmt.Errorf("%s: %w", op, ErrAccountExists)
		}

		log.Error("failed to save account", sl.Err(err))
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("account registered")

	return saved, nil
}

// Login verifies the credentials and runs the attempt/lockout state machine.
//
// Failure modes: ErrAccountNotFound for an unknown username, *LockedError
// while a lockout is active or freshly triggered, *InvalidCredentialsError
// on a wrong password below the threshold. A successful login resets the
// failure counter and clears any expired lock.
func (a *Auth) Login(ctx context.Context, username, password string) (models.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.login(ctx, username, password)
}

// login assumes a.mu is held.
func (a *Auth) login(ctx context.Context, username, password string) (models.Account, error) {
	const op = "auth.Login"
	log := a.log.With(slog.String("op", op), slog.String("username", username))
	log.Info("login attempt")

	account, err := a.accountProvider.Account(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			log.Warn("account not found", sl.Err(err))
			return models.Account{}, fmt.Errorf("%s: %w", op, ErrAccountNotFound)
		}

		log.Error("failed to get account", sl.Err(err))
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	now := a.now()

	if !account.LockedUntil.IsZero() {
		if account.LockedUntil.After(now) {
			remaining := account.LockedUntil.Sub(now)
			lockErr := &LockedError{Remaining: remaining}
			log.Warn("account is locked", slog.Int("remaining_seconds", lockErr.Seconds()))
			a.failedLogins.WithLabelValues(account.Username, reasonLocked).Inc()
			return models.Account{}, fmt.Errorf("%s: %w", op, lockErr)
		}

		// Lock deadline passed: clear lazily, there is no background timer.
		account.LockedUntil = time.Time{}
		account.FailedAttempts = 0
		log.Info("lockout expired, cleared")
	}

	ok, err := a.hasher.Verify(password, account.PassHash)
	if err != nil {
		log.Error("failed to verify password", sl.Err(err))
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		account.FailedAttempts++

		attemptsLeft := a.maxAttempts - account.FailedAttempts
		if attemptsLeft < 0 {
			attemptsLeft = 0
		}

		if account.FailedAttempts >= a.maxAttempts {
			// Threshold reached: lock the account and restart the counter.
			account.LockedUntil = now.Add(a.lockoutFor)
			account.FailedAttempts = 0

			if err := a.accountUpdater.UpdateAccount(ctx, account); err != nil {
				log.Error("failed to update account", sl.Err(err))
				return models.Account{}, fmt.Errorf("%s: %w", op, err)
			}

			remaining := account.LockedUntil.Sub(a.now())
			if remaining <= 0 {
				remaining = a.lockoutFor
			}

			log.Warn("lockout triggered", slog.Duration("lockout", a.lockoutFor))
			a.failedLogins.WithLabelValues(account.Username, reasonLockout).Inc()
			return models.Account{}, fmt.Errorf("%s: %w", op, &LockedError{Remaining: remaining})
		}

		if err := a.accountUpdater.UpdateAccount(ctx, account); err != nil {
			log.Error("failed to update account", sl.Err(err))
			return models.Account{}, fmt.Errorf("%s: %w", op, err)
		}

		log.Warn("invalid credentials", slog.Int("attempts_left", attemptsLeft))
		a.failedLogins.WithLabelValues(account.Username, reasonBadPassword).Inc()
		return models.Account{}, fmt.Errorf("%s: %w", op, &InvalidCredentialsError{AttemptsLeft: attemptsLeft})
	}

	account.FailedAttempts = 0
	account.LockedUntil = time.Time{}

	if err := a.accountUpdater.UpdateAccount(ctx, account); err != nil {
		log.Error("failed to update account", sl.Err(err))
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("login succeeded")

	return account, nil
}

// ChangePassword authenticates the caller with the old password, inheriting
// every failure mode of Login including its counter/lock side effects, then
// replaces the stored hash. The login-reset side effects are kept even when
// the new password turns out to be weak; they are harmless.
func (a *Auth) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	const op = "auth.ChangePassword"
	log := a.log.With(slog.String("op", op), slog.String("username", username))
	log.Info("changing password")

	a.mu.Lock()
	defer a.mu.Unlock()

	account, err := a.login(ctx, username, oldPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := ValidatePasswordStrength(newPassword); err != nil {
		log.Warn("weak new password rejected", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	passHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	account.PassHash = passHash
	if err := a.accountUpdater.UpdateAccount(ctx, account); err != nil {
		log.Error("failed to update account", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("password changed")

	return nil
}

// Exists reports whether an account with the given username is registered.
func (a *Auth) Exists(ctx context.Context, username string) (bool, error) {
	const op = "auth.Exists"

	if _, err := a.accountProvider.Account(ctx, username); err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

// Accounts returns a snapshot of all registered accounts in no particular
// order. Callers sort for display themselves.
func (a *Auth) Accounts(ctx context.Context) ([]models.Account, error) {
	const op = "auth.Accounts"

	accounts, err := a.accountProvider.Accounts(ctx)
	if err != nil {
		a.log.Error("failed to list accounts", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return accounts, nil
}
