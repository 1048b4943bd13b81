package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func TestUserService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		user models.User
	}{
		{"blank name", models.User{Name: "  ", Email: "a@b.com"}},
		{"blank email", models.User{Name: "Alice", Email: ""}},
		{"email without at", models.User{Name: "Alice", Email: "not-an-email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := env.users.Create(ctx, &tc.user)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.user(t, "Alice", "alice@example.com")
	err := env.users.Create(ctx, &models.User{Name: "Clone", Email: "alice@example.com"})
	assert.True(t, domain.IsAlreadyExists(err))
}

func TestUserService_UpdateMergesPatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "Alice", "alice@example.com")

	// Name only; email stays.
	updated, err := env.users.Update(ctx, alice.ID, models.UserPatch{Name: strPtr("Alice B")})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	// An empty string counts as absent, not as a wipe.
	updated, err = env.users.Update(ctx, alice.ID, models.UserPatch{Name: strPtr(""), Email: strPtr("new@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestUserService_UpdateNothingProvided(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "Alice", "alice@example.com")

	_, err := env.users.Update(ctx, alice.ID, models.UserPatch{})
	assert.True(t, domain.IsValidation(err))

	_, err = env.users.Update(ctx, alice.ID, models.UserPatch{Name: strPtr(""), Email: strPtr("")})
	assert.True(t, domain.IsValidation(err))
}

func TestUserService_UpdateUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Update(context.Background(), 42, models.UserPatch{Name: strPtr("Ghost")})
	assert.True(t, domain.IsNotFound(err))
}

func TestUserService_DeleteAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "Alice", "alice@example.com")
	env.user(t, "Bob", "bob@example.com")

	require.NoError(t, env.users.Delete(ctx, alice.ID))
	assert.True(t, domain.IsNotFound(env.users.Delete(ctx, alice.ID)))

	users, err := env.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Bob", users[0].Name)
}
