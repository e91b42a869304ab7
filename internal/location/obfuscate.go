package location

import (
	"math/rand"
	"strings"

	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

// DefaultMaxOffsetDegrees is roughly 700 meters at mid-latitudes.
const DefaultMaxOffsetDegrees = 0.007

// Obfuscate returns a public coordinate offset from the exact one by a
// uniform random amount in (0, maxOffsetDeg] per axis. The offset is never
// zero on either axis, so the public point never equals the exact point.
//
// Callers must persist the result at event creation and serve the stored
// value on every read: re-obfuscating per request would let a client average
// repeated reads and recover the exact point.
func Obfuscate(exact Coordinate, maxOffsetDeg float64) (Coordinate, error) {
	if err := exact.Validate(); err != nil {
		return Coordinate{}, err
	}
	if maxOffsetDeg <= 0 {
		return Coordinate{}, apperrors.ErrInvalidOffset
	}

	return Coordinate{
		Lat: exact.Lat + nonZeroOffset(maxOffsetDeg),
		Lon: exact.Lon + nonZeroOffset(maxOffsetDeg),
	}, nil
}

// nonZeroOffset draws from [-max, +max], redrawing zero so the fuzzed axis
// always moves.
func nonZeroOffset(max float64) float64 {
	for {
		offset := (rand.Float64()*2 - 1) * max
		if offset != 0 {
			return offset
		}
	}
}

// AreaLabelFunc redacts a full address into a label safe to show to
// non-participants. It is a swappable strategy: the comma-segment heuristic
// below is locale-dependent.
type AreaLabelFunc func(fullAddress string) string

// DeriveAreaLabel keeps the first two comma-delimited segments of an address
// ("12 Main St, Springfield, IL, USA" -> "12 Main St, Springfield"). An
// address with no comma is returned unchanged, since no coarser form can be
// derived from the text alone.
func DeriveAreaLabel(fullAddress string) string {
	parts := strings.Split(fullAddress, ",")
	if len(parts) < 2 {
		return strings.TrimSpace(fullAddress)
	}

	return strings.TrimSpace(parts[0]) + ", " + strings.TrimSpace(parts[1])
}
