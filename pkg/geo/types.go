package geo

import (
	"math"

	"github.com/lintang-b-s/places-heatmap/pkg"
)

// Coordinate model info
//
//	@Description	a point in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" msgpack:"lat"`
	Lon float64 `json:"lon" msgpack:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// Validate checks that the coordinate is finite and inside the lat/lon ranges.
func (c Coordinate) Validate() error {
	if !isFinite(c.Lat) || !isFinite(c.Lon) {
		return pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "coordinate (%v, %v) is not finite", c.Lat, c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
