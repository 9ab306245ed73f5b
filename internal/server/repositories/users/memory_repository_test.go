package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	alice, err := repo.Create(ctx, &models.User{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)

	_, err = repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = repo.Create(ctx, &models.User{Username: "alice2", Email: "a@example.com"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got.Username = "mutated"
	again, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username, "stored record must not be shared")

	_, err = repo.FindByUsername(ctx, "Alice")
	require.ErrorIs(t, err, common.ErrorNotFound, "usernames are case-sensitive")

	require.NoError(t, repo.Delete(ctx, alice.ID))
	require.ErrorIs(t, repo.Delete(ctx, alice.ID), common.ErrorNotFound)

	_, err = repo.FindByUsername(ctx, "alice")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
