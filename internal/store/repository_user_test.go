// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserRepository(t *testing.T) UserRepository {
	t.Helper()

	documents, _ := newTestFileStore(t, false)
	return NewUserRepository(documents, logger.Nop())
}

func testUser(email string) models.User {
	return models.User{
		ID:           "user_" + email,
		Email:        NormalizeEmail(email),
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		FirstName:    "Jane",
		LastName:     "Doe",
		IsActive:     true,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := newTestUserRepository(t)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, testUser("jane@example.com"))
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, found.Email)
	assert.Equal(t, "Jane", found.FirstName)
}

func TestUserRepository_GetMissing(t *testing.T) {
	repo := newTestUserRepository(t)

	_, err := repo.GetUser(context.Background(), "user_nope")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestUserRepository_FindByEmail_CaseInsensitive(t *testing.T) {
	repo := newTestUserRepository(t)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, testUser("user@example.com"))
	require.NoError(t, err)

	for _, lookup := range []string{
		"user@example.com",
		"USER@EXAMPLE.COM",
		"  User@Example.Com  ",
	} {
		found, err := repo.FindUserByEmail(ctx, lookup)
		require.NoError(t, err, "lookup %q", lookup)
		assert.Equal(t, created.ID, found.ID)
	}
}

func TestUserRepository_FindByEmail_Missing(t *testing.T) {
	repo := newTestUserRepository(t)

	_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := newTestUserRepository(t)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, testUser("dup@example.com"))
	require.NoError(t, err)

	duplicate := testUser("dup@example.com")
	duplicate.ID = "user_other"
	_, err = repo.CreateUser(ctx, duplicate)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUserRepository_SaveUser_StampsUpdatedAt(t *testing.T) {
	repo := newTestUserRepository(t)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, testUser("jane@example.com"))
	require.NoError(t, err)

	now := time.Now()
	created.LastLogin = &now
	created.LoginAttempts = 3
	require.NoError(t, repo.SaveUser(ctx, created))

	loaded, err := repo.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.LoginAttempts)
	require.NotNil(t, loaded.LastLogin)
	assert.False(t, loaded.UpdatedAt.Before(created.CreatedAt))
}
