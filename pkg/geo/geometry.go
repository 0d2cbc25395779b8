package geo

import (
	"math"

	"github.com/lintang-b-s/places-heatmap/pkg"
)

type BoundingBox struct {
	Min Coordinate `json:"min"`
	Max Coordinate `json:"max"`
}

// NewBoundingBox returns the smallest lat/lon box containing every point. points must not be empty.
func NewBoundingBox(points []Coordinate) BoundingBox {
	min, max := points[0], points[0]
	for i := 1; i < len(points); i++ {
		if points[i].Lat < min.Lat {
			min.Lat = points[i].Lat
		}
		if points[i].Lat > max.Lat {
			max.Lat = points[i].Lat
		}
		if points[i].Lon < min.Lon {
			min.Lon = points[i].Lon
		}
		if points[i].Lon > max.Lon {
			max.Lon = points[i].Lon
		}
	}
	return BoundingBox{
		Min: min,
		Max: max,
	}
}

func (bb *BoundingBox) Contains(c Coordinate) bool {
	if c.Lat < bb.Min.Lat || c.Lat > bb.Max.Lat {
		return false
	}
	if c.Lon < bb.Min.Lon || c.Lon > bb.Max.Lon {
		return false
	}
	return true
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180.0
}

func radToDeg(r float64) float64 {
	return 180.0 * r / math.Pi
}

// Given a start point, initial bearing, and distance, this will calculate the destination point travelling along a
// (shortest distance) great circle arc.
// https://www.movable-type.co.uk/scripts/latlong.html
// dist in meters, bearing in degrees clockwise from north.
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / earthRadiusM

	bearing = degToRad(bearing)

	lat1 = degToRad(lat1)
	lon1 = degToRad(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)
	lon2 = math.Mod((lon2+3*math.Pi), (2*math.Pi)) - math.Pi

	return radToDeg(lat2), radToDeg(lon2)
}

// ComputeOffset is GetDestinationPoint for a Coordinate.
func ComputeOffset(from Coordinate, dist, bearing float64) Coordinate {
	lat, lon := GetDestinationPoint(from.Lat, from.Lon, bearing, dist)
	return NewCoordinate(lat, lon)
}

// Bearing returns the initial great circle bearing from a to b in degrees, normalized to [0, 360).
func Bearing(a, b Coordinate) float64 {
	lat1, lat2 := degToRad(a.Lat), degToRad(b.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return math.Mod(radToDeg(math.Atan2(y, x))+360, 360)
}

// PlanSearchCenters returns the four sub-query centers around center: offsetRadius/2 meters away on bearings
// 45, 135, 225 and 315 degrees, in that order.
func PlanSearchCenters(center Coordinate, offsetRadius float64) ([]Coordinate, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if !isFinite(offsetRadius) || offsetRadius < 0 {
		return nil, pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "offset radius %v must be a finite non negative number", offsetRadius)
	}

	centers := make([]Coordinate, 0, SubQueryCount)
	for heading := firstBearing; heading < 360; heading += bearingStep {
		centers = append(centers, ComputeOffset(center, offsetRadius/2, heading))
	}
	return centers, nil
}
