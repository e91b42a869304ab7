package feed

import (
	"math/rand"

	"github.com/mysterymeet/backend/internal/event"
	"github.com/mysterymeet/backend/internal/location"
)

// DefaultNearRadiusKm is the partition boundary between near and far events.
const DefaultNearRadiusKm = 5.0

// Ranker orders a feed with a proximity bias while keeping the order
// non-deterministic. A fully distance-sorted list would let a caller
// binary-search another user's position by planting probe events and
// watching their rank; partitioning at a fixed radius and shuffling inside
// each partition surfaces nearby events first without exposing fine-grained
// ordering.
type Ranker struct {
	nearRadiusKm float64
}

func NewRanker(nearRadiusKm float64) *Ranker {
	if nearRadiusKm <= 0 {
		nearRadiusKm = DefaultNearRadiusKm
	}
	return &Ranker{nearRadiusKm: nearRadiusKm}
}

// Rank returns the events in display order for a viewer. With no viewer
// position every event lands in one uniform shuffle; creation order is
// deliberately not a fallback, since it leaks who created what when.
//
// Distances are computed on the already-resolved coordinates the views
// carry, so ranking can never touch an exact location the viewer is not
// allowed to see.
func (r *Ranker) Rank(views []event.View, viewerPos *location.Coordinate) []event.View {
	out := make([]event.View, len(views))
	copy(out, views)

	if viewerPos == nil {
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
		return out
	}

	near := make([]event.View, 0, len(out))
	far := make([]event.View, 0, len(out))

	for _, v := range out {
		if !v.HasLocation {
			far = append(far, v)
			continue
		}
		if location.DistanceKm(*viewerPos, v.Coordinate()) <= r.nearRadiusKm {
			near = append(near, v)
		} else {
			far = append(far, v)
		}
	}

	rand.Shuffle(len(near), func(i, j int) {
		near[i], near[j] = near[j], near[i]
	})
	rand.Shuffle(len(far), func(i, j int) {
		far[i], far[j] = far[j], far[i]
	})

	return append(near, far...)
}
