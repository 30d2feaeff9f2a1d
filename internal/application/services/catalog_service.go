package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/reviewhub/backend/internal/domain/entities"
	"github.com/reviewhub/backend/internal/store"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

// viewCooldown is how long a user's view of a service stays "hot": repeat
// views inside this window do not count.
const viewCooldownMillis = 300_000

// CatalogService handles CRUD over service posts, ownership checks and the
// per-service counters.
type CatalogService struct {
	store *store.Store
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{store: st}
}

// ServiceInput carries the content of a new service post. Tags is the raw
// user input; it is lowercased and split on whitespace.
type ServiceInput struct {
	OwnerID  string
	Sections []entities.Section
	Images   []string
	Tags     string
}

// ServicePatch is a partial update; nil fields are left untouched.
type ServicePatch struct {
	Sections *[]entities.Section
	Images   *[]string
	Tags     *string
}

// Create publishes a new service post. Only an approved manager with a
// linked company may publish.
func (s *CatalogService) Create(ctx context.Context, in ServiceInput) (*entities.Service, error) {
	var created *entities.Service
	err := s.store.Update(ctx, func(st *store.State) error {
		owner := st.UserByID(in.OwnerID)
		if owner == nil || owner.Role != entities.RoleManager || !owner.IsApproved || owner.CompanyID == "" {
			return apperrors.NewForbiddenError("only an approved manager with a company can publish services")
		}

		svc := &entities.Service{
			ID:        uuid.New().String(),
			CompanyID: owner.CompanyID,
			UserID:    owner.ID,
			Sections:  in.Sections,
			Images:    in.Images,
			Tags:      NormalizeTags(in.Tags),
			CreatedAt: st.Now(),
		}
		svc.Normalize()
		st.Services = append(st.Services, svc)
		created = svc.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns a deep copy of the service; mutating the result never touches
// store state.
func (s *CatalogService) Get(id string) (*entities.Service, error) {
	var found *entities.Service
	s.store.View(func(st *store.State) {
		if svc := st.ServiceByID(id); svc != nil {
			found = svc.Clone()
		}
	})
	if found == nil {
		return nil, apperrors.NewNotFoundError("service not found")
	}
	return found, nil
}

// ListByCompany returns copies of all services published by a company.
func (s *CatalogService) ListByCompany(companyID string) []*entities.Service {
	var out []*entities.Service
	s.store.View(func(st *store.State) {
		for _, svc := range st.Services {
			if svc.CompanyID == companyID {
				out = append(out, svc.Clone())
			}
		}
	})
	return out
}

// Update applies a partial patch. Only the recorded owner may update.
func (s *CatalogService) Update(ctx context.Context, id, callerID string, patch ServicePatch) (*entities.Service, error) {
	var updated *entities.Service
	err := s.store.Update(ctx, func(st *store.State) error {
		svc := st.ServiceByID(id)
		if svc == nil {
			return apperrors.NewNotFoundError("service not found")
		}
		if svc.UserID != callerID {
			return apperrors.NewForbiddenError("only the owner can update this service")
		}
		if patch.Sections != nil {
			svc.Sections = *patch.Sections
		}
		if patch.Images != nil {
			svc.Images = *patch.Images
		}
		if patch.Tags != nil {
			svc.Tags = NormalizeTags(*patch.Tags)
		}
		svc.Normalize()
		updated = svc.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the service and everything nested under it. Only the
// recorded owner may delete.
func (s *CatalogService) Delete(ctx context.Context, id, callerID string) error {
	return s.store.Update(ctx, func(st *store.State) error {
		for i, svc := range st.Services {
			if svc.ID != id {
				continue
			}
			if svc.UserID != callerID {
				return apperrors.NewForbiddenError("only the owner can delete this service")
			}
			st.Services = append(st.Services[:i], st.Services[i+1:]...)
			return nil
		}
		return apperrors.NewNotFoundError("service not found")
	})
}

// IncrementViews counts a view unless the same user viewed the service
// within the cooldown window. A missing service is a silent no-op: a view
// miss is not user-facing.
func (s *CatalogService) IncrementViews(ctx context.Context, serviceID, userID string) error {
	return s.store.Update(ctx, func(st *store.State) error {
		svc := st.ServiceByID(serviceID)
		if svc == nil {
			return store.ErrNoChange
		}
		now := st.Now().UnixMilli()
		last, seen := svc.Views[userID]
		if seen && now-last <= viewCooldownMillis {
			return store.ErrNoChange
		}
		svc.Stats.Views++
		svc.Views[userID] = now
		return nil
	})
}

// ToggleLike flips the user's membership in the service like set. The
// counter follows the toggle so set and counter can never diverge.
func (s *CatalogService) ToggleLike(ctx context.Context, serviceID, userID string) error {
	return s.store.Update(ctx, func(st *store.State) error {
		svc := st.ServiceByID(serviceID)
		if svc == nil {
			return apperrors.NewNotFoundError("service not found")
		}
		var added bool
		svc.Likes, added = toggleMembership(svc.Likes, userID)
		if added {
			svc.Stats.Likes++
		} else {
			svc.Stats.Likes--
		}
		return nil
	})
}

// RecordShare bumps the share counter used by relevance ranking.
func (s *CatalogService) RecordShare(ctx context.Context, serviceID string) error {
	return s.store.Update(ctx, func(st *store.State) error {
		svc := st.ServiceByID(serviceID)
		if svc == nil {
			return apperrors.NewNotFoundError("service not found")
		}
		svc.Stats.Shares++
		return nil
	})
}

// NormalizeTags lowercases the raw tag input and splits it on whitespace,
// dropping empty tokens.
func NormalizeTags(raw string) []string {
	tags := strings.Fields(strings.ToLower(raw))
	if tags == nil {
		return []string{}
	}
	return tags
}

// toggleMembership flips id's membership in the set, reporting whether it
// was added.
func toggleMembership(set []string, id string) ([]string, bool) {
	for i, member := range set {
		if member == id {
			return append(set[:i], set[i+1:]...), false
		}
	}
	return append(set, id), true
}

// removeMember drops id from the set if present.
func removeMember(set []string, id string) []string {
	for i, member := range set {
		if member == id {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}
