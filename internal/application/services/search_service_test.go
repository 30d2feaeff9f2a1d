package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewhub/backend/internal/application/services"
	"github.com/reviewhub/backend/internal/domain/entities"
)

func TestSearchService_BlankKeywordsReturnAllRanked(t *testing.T) {
	st, _, _ := newSeededStore(t)
	search := services.NewSearchService(st)

	results := search.Search("   ")
	require.Len(t, results, 2)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.GreaterOrEqual(t,
		services.RelevanceScore(results[0], now),
		services.RelevanceScore(results[1], now))
}

func TestSearchService_TagMatch(t *testing.T) {
	st, _, _ := newSeededStore(t)
	search := services.NewSearchService(st)

	results := search.Search("mobile")
	require.Len(t, results, 1)
	assert.Equal(t, "service_2", results[0].ID)
}

func TestSearchService_ContentSubstringMatch(t *testing.T) {
	st, _, _ := newSeededStore(t)
	search := services.NewSearchService(st)

	// "development" is a tag on service_1 and a content substring on
	// service_2 ("Cross-platform mobile development").
	results := search.Search("Development")
	require.Len(t, results, 2)

	// Any-term semantics: one bogus term does not spoil a match.
	results = search.Search("zzzz postgresql")
	require.Len(t, results, 1)
	assert.Equal(t, "service_1", results[0].ID)
}

func TestSearchService_NoMatch(t *testing.T) {
	st, _, _ := newSeededStore(t)
	search := services.NewSearchService(st)

	results := search.Search("quantum blockchain")
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchService_RankingFavorsEngagementAndDecaysWithAge(t *testing.T) {
	st, _, clock := newSeededStore(t)
	search := services.NewSearchService(st)
	catalog := services.NewCatalogService(st)
	reactions := services.NewReactionService(st)
	ctx := context.Background()

	// A brand new service with a top rating outranks the old seeds even
	// with their accumulated counters.
	svc, err := catalog.Create(ctx, services.ServiceInput{
		OwnerID:  "user_manager_approved",
		Sections: []entities.Section{{Title: "Hot", Content: "Brand new web offering"}},
		Tags:     "web",
	})
	require.NoError(t, err)
	require.NoError(t, reactions.RateService(ctx, svc.ID, "user_1", 5))
	clock.Advance(time.Hour)

	results := search.Search("web")
	require.NotEmpty(t, results)
	assert.Equal(t, svc.ID, results[0].ID)
}

func TestRelevanceScore_FloorsAgeForFreshServices(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &entities.Service{
		Stats:     entities.ServiceStats{Views: 10},
		CreatedAt: now,
	}

	score := services.RelevanceScore(svc, now)
	assert.InDelta(t, 100.0, score, 0.0001, "0.1*10 views / 0.01 floored days")
}
