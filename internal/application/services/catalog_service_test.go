package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewhub/backend/internal/application/services"
	"github.com/reviewhub/backend/internal/domain/entities"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

func TestCatalogService_Create(t *testing.T) {
	st, _, _ := newSeededStore(t)
	catalog := services.NewCatalogService(st)
	ctx := context.Background()

	t.Run("normalizes tags and zeroes stats", func(t *testing.T) {
		svc, err := catalog.Create(ctx, services.ServiceInput{
			OwnerID:  "user_manager_approved",
			Sections: []entities.Section{{Title: "Consulting", Content: "Cloud architecture reviews"}},
			Tags:     "  Cloud   DEVOPS  ",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"cloud", "devops"}, svc.Tags)
		assert.Equal(t, "comp_1", svc.CompanyID)
		assert.Zero(t, svc.Stats.Views)
		assert.Empty(t, svc.Comments)
		assert.NotNil(t, svc.Likes)
	})

	t.Run("rejects non-managers and unlinked managers", func(t *testing.T) {
		for _, owner := range []string{"user_1", "user_manager_pending", "ghost"} {
			_, err := catalog.Create(ctx, services.ServiceInput{OwnerID: owner})
			assert.True(t, apperrors.IsForbidden(err), "owner %s", owner)
		}
	})
}

func TestCatalogService_Get_ReturnsDefensiveCopy(t *testing.T) {
	st, _, _ := newSeededStore(t)
	catalog := services.NewCatalogService(st)

	svc, err := catalog.Get("service_2")
	require.NoError(t, err)

	// Mutate everything we got back, then re-read.
	svc.Tags[0] = "corrupted"
	svc.Comments[0].Text = "corrupted"
	svc.Comments[0].Replies[0].Text = "corrupted"
	svc.Stats.Views = 9999

	fresh, err := catalog.Get("service_2")
	require.NoError(t, err)
	assert.Equal(t, "mobile", fresh.Tags[0])
	assert.NotEqual(t, "corrupted", fresh.Comments[0].Text)
	assert.NotEqual(t, "corrupted", fresh.Comments[0].Replies[0].Text)
	assert.Equal(t, 80, fresh.Stats.Views)

	_, err = catalog.Get("nope")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCatalogService_UpdateAndDelete_OwnershipChecks(t *testing.T) {
	st, _, _ := newSeededStore(t)
	catalog := services.NewCatalogService(st)
	ctx := context.Background()

	newTags := "updated tags"
	_, err := catalog.Update(ctx, "service_1", "user_1", services.ServicePatch{Tags: &newTags})
	assert.True(t, apperrors.IsForbidden(err))

	_, err = catalog.Update(ctx, "missing", "user_manager_approved", services.ServicePatch{})
	assert.True(t, apperrors.IsNotFound(err))

	updated, err := catalog.Update(ctx, "service_1", "user_manager_approved", services.ServicePatch{Tags: &newTags})
	require.NoError(t, err)
	assert.Equal(t, []string{"updated", "tags"}, updated.Tags)

	assert.True(t, apperrors.IsForbidden(catalog.Delete(ctx, "service_1", "user_1")))
	require.NoError(t, catalog.Delete(ctx, "service_1", "user_manager_approved"))
	_, err = catalog.Get("service_1")
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(catalog.Delete(ctx, "service_1", "user_manager_approved")))
}

func TestCatalogService_IncrementViews_Cooldown(t *testing.T) {
	st, _, clock := newSeededStore(t)
	catalog := services.NewCatalogService(st)
	ctx := context.Background()

	base, err := catalog.Get("service_1")
	require.NoError(t, err)

	// First view counts, an immediate second one does not.
	require.NoError(t, catalog.IncrementViews(ctx, "service_1", "user_1"))
	require.NoError(t, catalog.IncrementViews(ctx, "service_1", "user_1"))

	svc, err := catalog.Get("service_1")
	require.NoError(t, err)
	assert.Equal(t, base.Stats.Views+1, svc.Stats.Views)

	// Still inside the five minute window.
	clock.Advance(4 * time.Minute)
	require.NoError(t, catalog.IncrementViews(ctx, "service_1", "user_1"))
	svc, _ = catalog.Get("service_1")
	assert.Equal(t, base.Stats.Views+1, svc.Stats.Views)

	// Past the window the view counts again.
	clock.Advance(2 * time.Minute)
	require.NoError(t, catalog.IncrementViews(ctx, "service_1", "user_1"))
	svc, _ = catalog.Get("service_1")
	assert.Equal(t, base.Stats.Views+2, svc.Stats.Views)

	// A different user is tracked independently.
	require.NoError(t, catalog.IncrementViews(ctx, "service_1", "user_admin"))
	svc, _ = catalog.Get("service_1")
	assert.Equal(t, base.Stats.Views+3, svc.Stats.Views)
}

func TestCatalogService_IncrementViews_MissingServiceIsSilent(t *testing.T) {
	st, slot, _ := newSeededStore(t)
	catalog := services.NewCatalogService(st)

	saves := slot.Saves()
	assert.NoError(t, catalog.IncrementViews(context.Background(), "missing", "user_1"))
	assert.Equal(t, saves, slot.Saves(), "a view miss must not write a snapshot")
}

func TestCatalogService_ToggleLike(t *testing.T) {
	st, _, _ := newSeededStore(t)
	catalog := services.NewCatalogService(st)
	ctx := context.Background()

	assert.True(t, apperrors.IsNotFound(catalog.ToggleLike(ctx, "missing", "user_1")))

	base, _ := catalog.Get("service_1")

	require.NoError(t, catalog.ToggleLike(ctx, "service_1", "user_1"))
	svc, _ := catalog.Get("service_1")
	assert.Contains(t, svc.Likes, "user_1")
	assert.Equal(t, base.Stats.Likes+1, svc.Stats.Likes)

	// Toggling twice returns the service to its original reaction state.
	require.NoError(t, catalog.ToggleLike(ctx, "service_1", "user_1"))
	svc, _ = catalog.Get("service_1")
	assert.NotContains(t, svc.Likes, "user_1")
	assert.Equal(t, base.Stats.Likes, svc.Stats.Likes)
}

func TestCatalogService_RecordShare(t *testing.T) {
	st, _, _ := newSeededStore(t)
	catalog := services.NewCatalogService(st)
	ctx := context.Background()

	base, _ := catalog.Get("service_1")
	require.NoError(t, catalog.RecordShare(ctx, "service_1"))
	svc, _ := catalog.Get("service_1")
	assert.Equal(t, base.Stats.Shares+1, svc.Stats.Shares)

	assert.True(t, apperrors.IsNotFound(catalog.RecordShare(ctx, "missing")))
}

func TestCatalogService_ListByCompany(t *testing.T) {
	st, _, _ := newSeededStore(t)
	catalog := services.NewCatalogService(st)

	listed := catalog.ListByCompany("comp_1")
	require.Len(t, listed, 2)
	assert.Empty(t, catalog.ListByCompany("comp_other"))
}
