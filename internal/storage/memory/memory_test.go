package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authcore/internal/domain/models"
	"authcore/internal/storage"
	"authcore/internal/storage/memory"
)

func newAccount(username string) models.Account {
	return models.Account{
		ID:        uuid.New(),
		Username:  username,
		PassHash:  gofakeit.LetterN(64),
		CreatedAt: time.Now(),
	}
}

func TestSaveAccount_DuplicateCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	_, err := store.SaveAccount(ctx, newAccount("Ali"))
	require.NoError(t, err)

	_, err = store.SaveAccount(ctx, newAccount("ALI"))
	require.ErrorIs(t, err, storage.ErrAccountExists)
}

func TestAccount_LookupCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	saved, err := store.SaveAccount(ctx, newAccount("Ali"))
	require.NoError(t, err)

	got, err := store.Account(ctx, "aLi")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Ali", got.Username)

	_, err = store.Account(ctx, gofakeit.LetterN(12))
	require.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	account, err := store.SaveAccount(ctx, newAccount(gofakeit.LetterN(10)))
	require.NoError(t, err)

	account.FailedAttempts = 2
	require.NoError(t, store.UpdateAccount(ctx, account))

	got, err := store.Account(ctx, account.Username)
	require.NoError(t, err)
	assert.Equal(t, 2, got.FailedAttempts)

	err = store.UpdateAccount(ctx, newAccount(gofakeit.LetterN(12)))
	require.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestAccounts_Snapshot(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	accounts, err := store.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	for i := 0; i < 5; i++ {
		_, err := store.SaveAccount(ctx, newAccount(gofakeit.LetterN(10)))
		require.NoError(t, err)
	}

	accounts, err = store.Accounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 5)

	// Mutating the snapshot must not reach the store.
	accounts[0].FailedAttempts = 99
	fresh, err := store.Account(ctx, accounts[0].Username)
	require.NoError(t, err)
	assert.Zero(t, fresh.FailedAttempts)
}
