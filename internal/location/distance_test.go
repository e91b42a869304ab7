package location

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Coordinate
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "new york to los angeles",
			a:         Coordinate{Lat: 40.7128, Lon: -74.0060},
			b:         Coordinate{Lat: 34.0522, Lon: -118.2437},
			wantKm:    3936,
			tolerance: 20,
		},
		{
			name:      "london to paris",
			a:         Coordinate{Lat: 51.5074, Lon: -0.1278},
			b:         Coordinate{Lat: 48.8566, Lon: 2.3522},
			wantKm:    344,
			tolerance: 5,
		},
		{
			name:      "one degree of latitude at the equator",
			a:         Coordinate{Lat: 0, Lon: 0},
			b:         Coordinate{Lat: 1, Lon: 0},
			wantKm:    111.2,
			tolerance: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			assert.InDelta(t, tt.wantKm, got, tt.tolerance)
		})
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		a := Coordinate{Lat: rng.Float64()*180 - 90, Lon: rng.Float64()*360 - 180}
		b := Coordinate{Lat: rng.Float64()*180 - 90, Lon: rng.Float64()*360 - 180}

		assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
	}
}

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 40.7128, Lon: -74.0060},
		{Lat: -89.9, Lon: 179.9},
		{Lat: 90, Lon: 0},
	}

	for _, p := range points {
		assert.Zero(t, DistanceKm(p, p))
	}
}

func TestDistanceKm_StableNearPolesAndAntimeridian(t *testing.T) {
	// Must not produce NaN or panic anywhere on the valid domain.
	edges := []struct{ a, b Coordinate }{
		{Coordinate{Lat: 89.9999, Lon: 0}, Coordinate{Lat: 89.9999, Lon: 180}},
		{Coordinate{Lat: -90, Lon: -180}, Coordinate{Lat: 90, Lon: 180}},
		{Coordinate{Lat: 0, Lon: 179.9999}, Coordinate{Lat: 0, Lon: -179.9999}},
	}

	for _, e := range edges {
		d := DistanceKm(e.a, e.b)
		assert.False(t, d != d, "distance is NaN for %v -> %v", e.a, e.b)
		assert.GreaterOrEqual(t, d, 0.0)
	}
}
