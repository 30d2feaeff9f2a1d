package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reviewhub/backend/internal/domain/entities"
	"github.com/reviewhub/backend/internal/domain/providers"
	"github.com/reviewhub/backend/internal/infrastructure/observability"
	apperrors "github.com/reviewhub/backend/pkg/errors"
	"github.com/reviewhub/backend/pkg/retry"
)

// Store is the single authority over the platform state. Every mutation runs
// under one lock and is followed by a full snapshot write, so no
// dirty-but-unsaved state survives a method return.
type Store struct {
	mu        sync.Mutex
	data      *entities.Snapshot
	snapshots providers.SnapshotProvider
	now       func() time.Time
	retryCfg  retry.Config
	metrics   *observability.Metrics

	// Secondary indexes into the nested comment/reply tree, rebuilt
	// together with every mutation.
	commentIndex map[string]string   // comment id -> service id
	replyIndex   map[string]replyRef // reply id -> location
}

type replyRef struct {
	serviceID string
	commentID string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Tests use this to pin the view
// cooldown and relevance decay.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRetry overrides the snapshot write retry policy.
func WithRetry(cfg retry.Config) Option {
	return func(s *Store) { s.retryCfg = cfg }
}

// WithMetrics attaches mutation/snapshot metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates a store over the given snapshot slot. Call Load before use.
func New(snapshots providers.SnapshotProvider, opts ...Option) *Store {
	s := &Store{
		snapshots: snapshots,
		now:       time.Now,
		retryCfg: retry.Config{
			MaxAttempts:     3,
			InitialDelay:    50 * time.Millisecond,
			MaxDelay:        time.Second,
			BackoffFactor:   2.0,
			MaxTotalTimeout: 5 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted document, or seeds the defaults when the slot is
// empty. A document that no longer parses is an error, not a silent reseed.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.snapshots.Load(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to load snapshot", err)
	}
	if !ok {
		s.data = Seed(s.now())
		s.data.Normalize()
		s.reindex()
		return s.persist(ctx)
	}

	var data entities.Snapshot
	if err := json.Unmarshal(raw, &data); err != nil {
		return apperrors.NewInvalidFormatError("snapshot document is not valid JSON", err)
	}
	data.Normalize()
	s.data = &data
	s.reindex()
	return nil
}

// State is the view handed to Update and View callbacks. It exposes the raw
// aggregate plus indexed lookups; it is only valid for the duration of the
// callback.
type State struct {
	*entities.Snapshot
	s *Store
}

// Now returns the store's notion of the current time.
func (st *State) Now() time.Time {
	return st.s.now()
}

// ErrNoChange is returned by Update callbacks that decided not to mutate
// anything. Update treats it as success and skips the snapshot write.
var ErrNoChange = errors.New("store: no change")

// Update runs fn under the store lock and, when it succeeds, reindexes and
// writes the snapshot. fn must validate before mutating so a returned error
// leaves no partial state behind.
func (s *Store) Update(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&State{Snapshot: s.data, s: s}); err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}
	s.reindex()
	if s.metrics != nil {
		s.metrics.MutationCount.Add(ctx, 1)
	}
	return s.persist(ctx)
}

// View runs fn under the store lock without persisting. fn must not mutate;
// anything it wants to hand out must be cloned.
func (s *Store) View(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&State{Snapshot: s.data, s: s})
}

// persist serializes the aggregate and overwrites the snapshot slot.
// Persistence is best effort: a slot outage is logged, not surfaced, so a
// user-visible mutation never fails after the fact.
func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize snapshot", err)
	}
	start := s.now()
	err = retry.Do(ctx, s.retryCfg, func() error {
		return s.snapshots.Save(ctx, raw)
	})
	if s.metrics != nil {
		s.metrics.SnapshotWriteCount.Add(ctx, 1)
		s.metrics.SnapshotWriteDuration.Record(ctx, float64(s.now().Sub(start).Milliseconds()))
	}
	if err != nil {
		log.Error().Err(err).Msg("snapshot write failed, in-memory state is ahead of the slot")
	}
	return nil
}

func (s *Store) reindex() {
	s.commentIndex = make(map[string]string)
	s.replyIndex = make(map[string]replyRef)
	for _, svc := range s.data.Services {
		for _, c := range svc.Comments {
			s.commentIndex[c.ID] = svc.ID
			for _, r := range c.Replies {
				s.replyIndex[r.ID] = replyRef{serviceID: svc.ID, commentID: c.ID}
			}
		}
	}
}

// ServiceByID returns the live service, or nil.
func (st *State) ServiceByID(id string) *entities.Service {
	for _, svc := range st.Services {
		if svc.ID == id {
			return svc
		}
	}
	return nil
}

// UserByID returns the live user, or nil.
func (st *State) UserByID(id string) *entities.User {
	for _, u := range st.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UserByEmail returns the live user, or nil.
func (st *State) UserByEmail(email string) *entities.User {
	for _, u := range st.Users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// CompanyByID returns the live company, or nil.
func (st *State) CompanyByID(id string) *entities.Company {
	for _, c := range st.Companies {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ReviewByID returns the live review, or nil.
func (st *State) ReviewByID(id string) *entities.Review {
	for _, r := range st.Reviews {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// CommentByID resolves a comment anywhere in the catalog through the
// secondary index. Returns the containing service and the comment, or nils.
func (st *State) CommentByID(id string) (*entities.Service, *entities.Comment) {
	svcID, ok := st.s.commentIndex[id]
	if !ok {
		return st.scanComment(id)
	}
	svc := st.ServiceByID(svcID)
	if svc == nil {
		return nil, nil
	}
	for _, c := range svc.Comments {
		if c.ID == id {
			return svc, c
		}
	}
	return nil, nil
}

// ReplyByID resolves a reply anywhere in the catalog. Returns the containing
// service, comment and the reply, or nils.
func (st *State) ReplyByID(id string) (*entities.Service, *entities.Comment, *entities.Reply) {
	ref, ok := st.s.replyIndex[id]
	if !ok {
		return st.scanReply(id)
	}
	svc := st.ServiceByID(ref.serviceID)
	if svc == nil {
		return nil, nil, nil
	}
	for _, c := range svc.Comments {
		if c.ID != ref.commentID {
			continue
		}
		for _, r := range c.Replies {
			if r.ID == id {
				return svc, c, r
			}
		}
	}
	return nil, nil, nil
}

// scanComment covers entries created inside the current Update callback,
// before the post-mutation reindex has run.
func (st *State) scanComment(id string) (*entities.Service, *entities.Comment) {
	for _, svc := range st.Services {
		for _, c := range svc.Comments {
			if c.ID == id {
				return svc, c
			}
		}
	}
	return nil, nil
}

func (st *State) scanReply(id string) (*entities.Service, *entities.Comment, *entities.Reply) {
	for _, svc := range st.Services {
		for _, c := range svc.Comments {
			for _, r := range c.Replies {
				if r.ID == id {
					return svc, c, r
				}
			}
		}
	}
	return nil, nil, nil
}
