package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-dashboard-service/internal/entity"
)

func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(openTestDB(t))

	created, err := repo.CreateAccount(ctx, &entity.Account{Email: "a@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.CreateAccount(ctx, &entity.Account{Email: "a@example.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := repo.GetAccountByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "a@example.com", accounts[0].Email)

	require.NoError(t, repo.DeleteAccountByEmail(ctx, "a@example.com"))
	assert.ErrorIs(t, repo.DeleteAccountByEmail(ctx, "a@example.com"), ErrNotFound)

	_, err = repo.GetAccountByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
