package participation_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mysterymeet/backend/internal/event"
	"github.com/mysterymeet/backend/internal/location"
	"github.com/mysterymeet/backend/internal/participation"
	"github.com/mysterymeet/backend/internal/storage"
)

func seedEvent(t *testing.T, store *storage.MemoryStore, maxParticipants int) *event.Event {
	t.Helper()
	e := &event.Event{
		ID:              fmt.Sprintf("event-%d", time.Now().UnixNano()),
		Title:           "Capacity test",
		StartsAt:        time.Now().Add(24 * time.Hour),
		ExactLocation:   location.Coordinate{Lat: 40, Lon: -74},
		PublicLocation:  location.Coordinate{Lat: 40.003, Lon: -74.002},
		ExactAddress:    "12 Main St, Springfield",
		PublicArea:      "Springfield",
		MaxParticipants: maxParticipants,
		CreatorID:       "creator",
		CreatedAt:       time.Now(),
	}
	require.NoError(t, store.CreateEvent(context.Background(), e))
	return e
}

func TestJoin_Ok(t *testing.T) {
	store := storage.NewMemoryStore()
	ctrl := participation.NewController(store)
	e := seedEvent(t, store, 3)

	status, err := ctrl.Join(context.Background(), e.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, participation.StatusOk, status)

	joined, err := ctrl.IsParticipant(context.Background(), e.ID, "alice")
	require.NoError(t, err)
	assert.True(t, joined)
}

func TestJoin_Idempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	ctrl := participation.NewController(store)
	e := seedEvent(t, store, 3)
	ctx := context.Background()

	first, err := ctrl.Join(ctx, e.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, participation.StatusOk, first)

	second, err := ctrl.Join(ctx, e.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, participation.StatusAlreadyJoined, second)

	// The repeat attempt consumed no capacity.
	count, err := ctrl.Count(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestJoin_NotFound(t *testing.T) {
	store := storage.NewMemoryStore()
	ctrl := participation.NewController(store)

	status, err := ctrl.Join(context.Background(), "no-such-event", "alice")
	require.NoError(t, err)
	assert.Equal(t, participation.StatusNotFound, status)
}

func TestJoin_CapacityExceeded(t *testing.T) {
	store := storage.NewMemoryStore()
	ctrl := participation.NewController(store)
	e := seedEvent(t, store, 2)
	ctx := context.Background()

	for _, u := range []string{"u1", "u2"} {
		status, err := ctrl.Join(ctx, e.ID, u)
		require.NoError(t, err)
		require.Equal(t, participation.StatusOk, status)
	}

	status, err := ctrl.Join(ctx, e.ID, "u3")
	require.NoError(t, err)
	assert.Equal(t, participation.StatusCapacityExceeded, status)
}

func TestJoin_CapacityInvariantUnderRace(t *testing.T) {
	const capacity = 5
	const attempts = 50

	store := storage.NewMemoryStore()
	ctrl := participation.NewController(store)
	e := seedEvent(t, store, capacity)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]participation.Status, attempts)
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = ctrl.Join(ctx, e.ID, fmt.Sprintf("user-%d", i))
		}(i)
	}
	wg.Wait()

	var admitted, rejected int
	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		switch results[i] {
		case participation.StatusOk:
			admitted++
		case participation.StatusCapacityExceeded:
			rejected++
		default:
			t.Fatalf("unexpected status %v", results[i])
		}
	}

	assert.Equal(t, capacity, admitted, "exactly capacity joins must succeed")
	assert.Equal(t, attempts-capacity, rejected)

	count, err := ctrl.Count(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, capacity, count)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ok", participation.StatusOk.String())
	assert.Equal(t, "already_joined", participation.StatusAlreadyJoined.String())
	assert.Equal(t, "capacity_exceeded", participation.StatusCapacityExceeded.String())
	assert.Equal(t, "not_found", participation.StatusNotFound.String())
}
