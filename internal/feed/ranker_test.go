package feed_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mysterymeet/backend/internal/event"
	"github.com/mysterymeet/backend/internal/feed"
	"github.com/mysterymeet/backend/internal/location"
)

// viewer sits at (40, -74); ~0.01 degrees of latitude is ~1.1 km.
var viewer = location.Coordinate{Lat: 40.0, Lon: -74.0}

func viewAt(id string, lat, lon float64) event.View {
	return event.View{
		ID:          id,
		Latitude:    lat,
		Longitude:   lon,
		HasLocation: true,
	}
}

func nearViews() []event.View {
	return []event.View{
		viewAt("near-1", 40.001, -74.001),
		viewAt("near-2", 40.01, -74.0),
		viewAt("near-3", 39.99, -74.01),
	}
}

func farViews() []event.View {
	return []event.View{
		viewAt("far-1", 41.0, -74.0),
		viewAt("far-2", 40.0, -75.0),
		viewAt("far-3", 34.05, -118.24),
	}
}

func TestRank_NearAlwaysBeforeFar(t *testing.T) {
	ranker := feed.NewRanker(5)
	views := append(nearViews(), farViews()...)

	near := map[string]bool{"near-1": true, "near-2": true, "near-3": true}

	for run := 0; run < 50; run++ {
		ranked := ranker.Rank(views, &viewer)
		require.Len(t, ranked, len(views))

		for i, v := range ranked {
			if near[v.ID] {
				assert.Less(t, i, 3, "near event %s ranked after a far event on run %d", v.ID, run)
			} else {
				assert.GreaterOrEqual(t, i, 3, "far event %s ranked before a near event on run %d", v.ID, run)
			}
		}
	}
}

func TestRank_ShufflesWithinPartitions(t *testing.T) {
	ranker := feed.NewRanker(5)
	views := []event.View{
		viewAt("a", 40.001, -74.0),
		viewAt("b", 40.002, -74.0),
		viewAt("c", 40.003, -74.0),
		viewAt("d", 40.004, -74.0),
		viewAt("e", 40.005, -74.0),
		viewAt("f", 40.006, -74.0),
	}

	orders := make(map[string]bool)
	for run := 0; run < 30; run++ {
		ranked := ranker.Rank(views, &viewer)
		ids := make([]string, len(ranked))
		for i, v := range ranked {
			ids[i] = v.ID
		}
		orders[strings.Join(ids, ",")] = true
	}

	// 30 shuffles of 6 elements collapsing to one order would mean the
	// ordering is deterministic and fingerprintable.
	assert.Greater(t, len(orders), 1)
}

func TestRank_NoViewerPositionShufflesEverything(t *testing.T) {
	ranker := feed.NewRanker(5)
	views := append(nearViews(), farViews()...)

	ranked := ranker.Rank(views, nil)
	require.Len(t, ranked, len(views))

	seen := make(map[string]bool)
	for _, v := range ranked {
		seen[v.ID] = true
	}
	for _, v := range views {
		assert.True(t, seen[v.ID], "event %s missing from ranked output", v.ID)
	}
}

func TestRank_MissingCoordinatesRankFar(t *testing.T) {
	ranker := feed.NewRanker(5)

	noLocation := event.View{ID: "mystery"}
	views := append(nearViews(), noLocation)

	for run := 0; run < 20; run++ {
		ranked := ranker.Rank(views, &viewer)
		assert.Equal(t, "mystery", ranked[len(ranked)-1].ID)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	ranker := feed.NewRanker(5)
	views := append(nearViews(), farViews()...)
	original := make([]event.View, len(views))
	copy(original, views)

	ranker.Rank(views, &viewer)

	assert.Equal(t, original, views)
}

func TestRank_BoundaryIsInclusive(t *testing.T) {
	ranker := feed.NewRanker(5)

	// ~4.9 km north of the viewer, just inside the default radius.
	inside := viewAt("inside", 40.0441, -74.0)
	// ~55 km north, well outside.
	outside := viewAt("outside", 40.5, -74.0)

	for run := 0; run < 20; run++ {
		ranked := ranker.Rank([]event.View{outside, inside}, &viewer)
		require.Len(t, ranked, 2)
		assert.Equal(t, "inside", ranked[0].ID)
		assert.Equal(t, "outside", ranked[1].ID)
	}
}
