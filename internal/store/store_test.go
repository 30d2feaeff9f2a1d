package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewhub/backend/internal/adapters/snapshot"
	"github.com/reviewhub/backend/internal/domain/entities"
	"github.com/reviewhub/backend/internal/store"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newStore(t *testing.T) (*store.Store, *snapshot.MemoryAdapter) {
	t.Helper()
	slot := snapshot.NewMemoryAdapter()
	s := store.New(slot, store.WithClock(fixedClock))
	require.NoError(t, s.Load(context.Background()))
	return s, slot
}

func TestStore_Load_SeedsEmptySlot(t *testing.T) {
	s, slot := newStore(t)

	assert.Equal(t, 1, slot.Saves(), "seeding persists immediately")

	s.View(func(st *store.State) {
		assert.Len(t, st.Users, 4)
		assert.Len(t, st.Companies, 1)
		assert.Len(t, st.ManagerApplications, 1)
		assert.Len(t, st.Services, 2)
		assert.Empty(t, st.Sessions)
		assert.Empty(t, st.Reviews)

		svc := st.ServiceByID("service_1")
		require.NotNil(t, svc)
		assert.Empty(t, svc.Comments)
		assert.NotNil(t, svc.Likes)
		assert.NotNil(t, svc.Views)
		assert.NotNil(t, svc.Ratings)
	})
}

func TestStore_Load_ReadsExistingDocument(t *testing.T) {
	slot := snapshot.NewMemoryAdapter()

	first := store.New(slot, store.WithClock(fixedClock))
	require.NoError(t, first.Load(context.Background()))
	require.NoError(t, first.Update(context.Background(), func(st *store.State) error {
		st.Users = append(st.Users, &entities.User{ID: "extra", Email: "x@x", Role: entities.RoleUser})
		return nil
	}))

	second := store.New(slot, store.WithClock(fixedClock))
	require.NoError(t, second.Load(context.Background()))
	second.View(func(st *store.State) {
		assert.NotNil(t, st.UserByID("extra"))
	})
}

func TestStore_Load_RejectsCorruptDocument(t *testing.T) {
	slot := snapshot.NewMemoryAdapter()
	require.NoError(t, slot.Save(context.Background(), []byte("{not json")))

	s := store.New(slot, store.WithClock(fixedClock))
	err := s.Load(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidFormat))
}

func TestStore_Update_PersistsEveryMutation(t *testing.T) {
	s, slot := newStore(t)
	before := slot.Saves()

	require.NoError(t, s.Update(context.Background(), func(st *store.State) error {
		st.ServiceByID("service_1").Stats.Shares++
		return nil
	}))
	assert.Equal(t, before+1, slot.Saves())

	var doc entities.Snapshot
	require.NoError(t, json.Unmarshal(slot.Bytes(), &doc))
	for _, svc := range doc.Services {
		if svc.ID == "service_1" {
			assert.Equal(t, 13, svc.Stats.Shares)
		}
	}
}

func TestStore_Update_ErrorSkipsPersist(t *testing.T) {
	s, slot := newStore(t)
	before := slot.Saves()

	err := s.Update(context.Background(), func(st *store.State) error {
		return apperrors.NewNotFoundError("nope")
	})
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, before, slot.Saves())

	require.NoError(t, s.Update(context.Background(), func(st *store.State) error {
		return store.ErrNoChange
	}))
	assert.Equal(t, before, slot.Saves())
}

func TestStore_ExportImport_RoundTrip(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Update(context.Background(), func(st *store.State) error {
		st.ServiceByID("service_1").Tags = append(st.ServiceByID("service_1").Tags, "exported")
		return nil
	}))

	doc, err := s.Export()
	require.NoError(t, err)

	other, _ := newStore(t)
	require.NoError(t, other.Import(context.Background(), doc))
	other.View(func(st *store.State) {
		assert.Contains(t, st.ServiceByID("service_1").Tags, "exported")

		// Indexes and nested collections come back with the import.
		_, c := st.CommentByID("comment_1")
		require.NotNil(t, c)
		assert.NotNil(t, c.Likes)
	})
}

func TestStore_Import_InvalidFormatLeavesStateUntouched(t *testing.T) {
	s, slot := newStore(t)
	before := slot.Saves()

	err := s.Import(context.Background(), []byte("definitely not json"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidFormat))
	assert.Equal(t, before, slot.Saves())

	s.View(func(st *store.State) {
		assert.Len(t, st.Users, 4)
	})
}

func TestStore_Reset_RestoresSeed(t *testing.T) {
	s, slot := newStore(t)

	require.NoError(t, s.Update(context.Background(), func(st *store.State) error {
		st.Services = nil
		st.Users = nil
		return nil
	}))

	before := slot.Saves()
	require.NoError(t, s.Reset(context.Background()))
	assert.Equal(t, before+1, slot.Saves())

	s.View(func(st *store.State) {
		assert.Len(t, st.Users, 4)
		assert.Len(t, st.Services, 2)
	})
}

func TestStore_IndexedLookups(t *testing.T) {
	s, _ := newStore(t)

	s.View(func(st *store.State) {
		svc, c := st.CommentByID("comment_1")
		require.NotNil(t, c)
		assert.Equal(t, "service_2", svc.ID)

		svc, c, r := st.ReplyByID("reply_1")
		require.NotNil(t, r)
		assert.Equal(t, "service_2", svc.ID)
		assert.Equal(t, "comment_1", c.ID)

		_, missing := st.CommentByID("nope")
		assert.Nil(t, missing)
	})
}
