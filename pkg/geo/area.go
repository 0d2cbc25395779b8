package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// SearchArea model info
//
//	@Description	the map center, the four sub-query centers around it and the circle that roughly encloses their results.
type SearchArea struct {
	Center       Coordinate   `json:"center"`
	SubQueries   []Coordinate `json:"sub_query_centers"`
	OffsetRadius float64      `json:"offset_radius"` // meters
	Radius       float64      `json:"radius"`        // meters, radius of the circle drawn around Center

	cap s2.Cap
}

func NewSearchArea(center Coordinate, offsetRadius float64) (SearchArea, error) {
	centers, err := PlanSearchCenters(center, offsetRadius)
	if err != nil {
		return SearchArea{}, err
	}

	radius := offsetRadius * SearchAreaFactor
	capCenter := s2.PointFromLatLng(s2.LatLngFromDegrees(center.Lat, center.Lon))

	return SearchArea{
		Center:       center,
		SubQueries:   centers,
		OffsetRadius: offsetRadius,
		Radius:       radius,
		cap:          s2.CapFromCenterAngle(capCenter, s1.Angle(radius/earthRadiusM)),
	}, nil
}

// Contains reports whether c lies inside the drawn circle.
func (a SearchArea) Contains(c Coordinate) bool {
	return a.cap.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)))
}

// CountOutside returns how many points fall outside the drawn circle.
func (a SearchArea) CountOutside(points []Coordinate) int {
	n := 0
	for _, p := range points {
		if !a.Contains(p) {
			n++
		}
	}
	return n
}
