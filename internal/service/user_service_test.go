package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/store"
)

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := NewUserService(users, fakeVerifier{}, slog.Default())

		user, err := svc.Register(ctx, "dana@example.com", "a-long-enough-password")
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", user.Email)

		stored, err := users.GetByEmail(ctx, "dana@example.com")
		require.NoError(t, err)
		assert.Empty(t, stored.Password)
		assert.NotEmpty(t, stored.HashedPassword)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		svc := NewUserService(users, fakeVerifier{}, slog.Default())

		_, err := svc.Register(ctx, "dana@example.com", "a-long-enough-password")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "dana@example.com", "another-long-password")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newFakeUserStore(), fakeVerifier{}, slog.Default())

		_, err := svc.Register(ctx, "not-an-email", "a-long-enough-password")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)

		_, err = svc.Register(ctx, "dana@example.com", "short")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})
}

func TestUserServiceAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := newFakeUserStore()
	svc := NewUserService(users, fakeVerifier{}, slog.Default())

	registered, err := svc.Register(ctx, "dana@example.com", "a-long-enough-password")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		user, err := svc.Authenticate(ctx, "dana@example.com", "a-long-enough-password")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(ctx, "dana@example.com", "wrong-password-entirely")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(ctx, "nobody@example.com", "a-long-enough-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
