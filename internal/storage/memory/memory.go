package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"authcore/internal/domain/models"
	"authcore/internal/storage"
)

// Storage keeps all accounts in process memory. Keys are lowercased
// usernames so lookups are case-insensitive. State lives only for the
// process lifetime.
type Storage struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

func New() *Storage {
	return &Storage{accounts: make(map[string]models.Account)}
}

func key(username string) string {
	return strings.ToLower(username)
}

func (s *Storage) SaveAccount(_ context.Context, account models.Account) (models.Account, error) {
	const op = "storage.memory.SaveAccount"

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(account.Username)
	if _, ok := s.accounts[k]; ok {
		return models.Account{}, fmt.Errorf("%s: %w", op, storage.ErrAccountExists)
	}

	s.accounts[k] = account
	return account, nil
}

func (s *Storage) Account(_ context.Context, username string) (models.Account, error) {
	const op = "storage.memory.Account"

	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[key(username)]
	if !ok {
		return models.Account{}, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}

	return account, nil
}

func (s *Storage) UpdateAccount(_ context.Context, account models.Account) error {
	const op = "storage.memory.UpdateAccount"

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(account.Username)
	if _, ok := s.accounts[k]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}

	s.accounts[k] = account
	return nil
}

// Accounts returns a snapshot of every account, in no particular order.
func (s *Storage) Accounts(_ context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}

	return accounts, nil
}
