package location

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

func TestObfuscate_OffsetWithinBoundsAndNonZero(t *testing.T) {
	exact := Coordinate{Lat: 40.0, Lon: -74.0}
	const maxOffset = 0.007

	for i := 0; i < 500; i++ {
		public, err := Obfuscate(exact, maxOffset)
		require.NoError(t, err)

		latDiff := math.Abs(public.Lat - exact.Lat)
		lonDiff := math.Abs(public.Lon - exact.Lon)

		assert.Greater(t, latDiff, 0.0, "public latitude must never equal exact")
		assert.Greater(t, lonDiff, 0.0, "public longitude must never equal exact")
		assert.LessOrEqual(t, latDiff, maxOffset)
		assert.LessOrEqual(t, lonDiff, maxOffset)
	}
}

func TestObfuscate_IndependentPerCall(t *testing.T) {
	exact := Coordinate{Lat: 52.52, Lon: 13.405}

	a, err := Obfuscate(exact, 0.007)
	require.NoError(t, err)
	b, err := Obfuscate(exact, 0.007)
	require.NoError(t, err)

	// Two draws colliding on both axes is vanishingly unlikely.
	assert.False(t, a.Lat == b.Lat && a.Lon == b.Lon)
}

func TestObfuscate_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		exact   Coordinate
		offset  float64
		wantErr error
	}{
		{"latitude too high", Coordinate{Lat: 91, Lon: 0}, 0.007, apperrors.ErrInvalidLatitude},
		{"latitude too low", Coordinate{Lat: -90.5, Lon: 0}, 0.007, apperrors.ErrInvalidLatitude},
		{"longitude too high", Coordinate{Lat: 0, Lon: 180.1}, 0.007, apperrors.ErrInvalidLongitude},
		{"zero offset", Coordinate{Lat: 0, Lon: 0}, 0, apperrors.ErrInvalidOffset},
		{"negative offset", Coordinate{Lat: 0, Lon: 0}, -0.1, apperrors.ErrInvalidOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Obfuscate(tt.exact, tt.offset)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeriveAreaLabel(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{
			name:    "full geocoded address",
			address: "12 Main St, Springfield, IL 62701, USA",
			want:    "12 Main St, Springfield",
		},
		{
			name:    "two segments",
			address: "Alexanderplatz, Berlin",
			want:    "Alexanderplatz, Berlin",
		},
		{
			name:    "no delimiter returned unchanged",
			address: "Townsville",
			want:    "Townsville",
		},
		{
			name:    "whitespace trimmed",
			address: "  5 Oak Ave ,  Portland , OR",
			want:    "5 Oak Ave, Portland",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveAreaLabel(tt.address))
		})
	}
}

func TestCoordinate_AreaCell(t *testing.T) {
	c := Coordinate{Lat: 40.0, Lon: -74.0}

	cell := c.AreaCell(5)
	assert.Len(t, cell, 5)

	// A nearby point in the same ~5km cell shares the prefix at precision 4.
	nearby := Coordinate{Lat: 40.001, Lon: -74.001}
	assert.Equal(t, c.AreaCell(4), nearby.AreaCell(4))
}
