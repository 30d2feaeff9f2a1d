package services

import (
	"sort"
	"strings"
	"time"

	"github.com/reviewhub/backend/internal/domain/entities"
	"github.com/reviewhub/backend/internal/store"
)

const (
	weightViews  = 0.1
	weightLikes  = 0.3
	weightShares = 0.5
	weightRating = 10.0

	// minAgeDays keeps the recency decay bounded: a service created this
	// instant would otherwise divide by zero and destabilize the sort.
	minAgeDays = 0.01

	millisPerDay = 24 * 60 * 60 * 1000
)

// SearchService filters the catalog by keyword and ranks results by a
// recency-decayed popularity score. It reads the catalog only.
type SearchService struct {
	store *store.Store
}

// NewSearchService creates a new search service.
func NewSearchService(st *store.Store) *SearchService {
	return &SearchService{store: st}
}

// Search returns services matching the keywords, most relevant first. Blank
// keywords return the whole catalog ranked. Keywords that reduce to no
// usable terms return an empty result, which is a different outcome from
// "no keywords supplied".
func (s *SearchService) Search(keywords string) []*entities.Service {
	var results []*entities.Service
	s.store.View(func(st *store.State) {
		now := st.Now()

		if strings.TrimSpace(keywords) == "" {
			for _, svc := range st.Services {
				results = append(results, svc.Clone())
			}
			sortByRelevance(results, now)
			return
		}

		terms := strings.Fields(strings.ToLower(keywords))
		if len(terms) == 0 {
			results = []*entities.Service{}
			return
		}

		for _, svc := range st.Services {
			if matchesAny(svc, terms) {
				results = append(results, svc.Clone())
			}
		}
		sortByRelevance(results, now)
	})
	if results == nil {
		results = []*entities.Service{}
	}
	return results
}

// matchesAny reports whether any term is one of the service's tags or a
// substring of any section's content.
func matchesAny(svc *entities.Service, terms []string) bool {
	for _, term := range terms {
		for _, tag := range svc.Tags {
			if tag == term {
				return true
			}
		}
		for _, section := range svc.Sections {
			if strings.Contains(strings.ToLower(section.Content), term) {
				return true
			}
		}
	}
	return false
}

func sortByRelevance(services []*entities.Service, now time.Time) {
	sort.SliceStable(services, func(i, j int) bool {
		return RelevanceScore(services[i], now) > RelevanceScore(services[j], now)
	})
}

// RelevanceScore is the recency-decayed popularity of a service: engagement
// plus rating weight, divided by age in days. Older services need
// proportionally more engagement to rank equally with newer ones.
func RelevanceScore(svc *entities.Service, now time.Time) float64 {
	ageDays := float64(now.Sub(svc.CreatedAt).Milliseconds()) / millisPerDay
	if ageDays < minAgeDays {
		ageDays = minAgeDays
	}
	interaction := weightViews*float64(svc.Stats.Views) +
		weightLikes*float64(svc.Stats.Likes) +
		weightShares*float64(svc.Stats.Shares)
	rating := weightRating * svc.Stats.TotalRating
	return (interaction + rating) / ageDays
}
