package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/store"
)

func TestProfileService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	t.Run("get missing profile", func(t *testing.T) {
		t.Parallel()
		svc := NewProfileService(newFakeProfileStore(), slog.Default())
		_, err := svc.Get(ctx, userID)
		assert.ErrorIs(t, err, store.ErrProfileNotFound)
	})

	t.Run("update creates then replaces", func(t *testing.T) {
		t.Parallel()
		svc := NewProfileService(newFakeProfileStore(), slog.Default())

		created, err := svc.Update(ctx, userID, ProfileUpdate{
			FullName:        "Dana Developer",
			Skills:          []string{"Go"},
			ExperienceYears: 4,
			TargetRole:      "Platform Engineer",
		})
		require.NoError(t, err)
		assert.Equal(t, "Dana Developer", created.FullName)
		assert.Equal(t, userID, created.UserID)

		updated, err := svc.Update(ctx, userID, ProfileUpdate{
			FullName:        "Dana Developer",
			Skills:          []string{"Go", "Kubernetes"},
			ExperienceYears: 5,
			TargetRole:      "Staff Engineer",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID, "profile keeps its identity across updates")
		assert.Equal(t, []string{"Go", "Kubernetes"}, updated.Skills)

		got, err := svc.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Staff Engineer", got.TargetRole)
	})

	t.Run("nil skills stored as empty slice", func(t *testing.T) {
		t.Parallel()
		svc := NewProfileService(newFakeProfileStore(), slog.Default())

		profile, err := svc.Update(ctx, uuid.New(), ProfileUpdate{FullName: "Sam"})
		require.NoError(t, err)
		assert.NotNil(t, profile.Skills)
		assert.Empty(t, profile.Skills)
	})

	t.Run("invalid update rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewProfileService(newFakeProfileStore(), slog.Default())

		_, err := svc.Update(ctx, uuid.New(), ProfileUpdate{FullName: ""})
		assert.ErrorIs(t, err, domain.ErrEmptyFullName)

		_, err = svc.Update(ctx, uuid.New(), ProfileUpdate{FullName: "Sam", ExperienceYears: -1})
		assert.ErrorIs(t, err, domain.ErrNegativeExperience)
	})
}
