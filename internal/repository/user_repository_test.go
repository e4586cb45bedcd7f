package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	created, err := repo.CreateUser(ctx, InsertUser{Username: "collector", Password: "hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "collector", created.Username)

	byID, err := repo.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byName, err := repo.GetUserByUsername(ctx, "collector")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.CreateUser(ctx, InsertUser{Username: "collector", Password: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = repo.GetUser(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
