package location

import (
	"github.com/mmcloughlin/geohash"

	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the coordinate is within valid WGS84 bounds.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return apperrors.ErrInvalidLatitude
	}
	if c.Lon < -180 || c.Lon > 180 {
		return apperrors.ErrInvalidLongitude
	}
	return nil
}

// AreaCell returns the geohash cell of the coordinate at the given precision.
// Cells are computed from public coordinates only and are coarse enough to
// group events on a map without pointing at any one of them.
func (c Coordinate) AreaCell(precision int) string {
	return geohash.EncodeWithPrecision(c.Lat, c.Lon, uint(precision))
}
