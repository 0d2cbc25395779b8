package datastructure

import "github.com/lintang-b-s/places-heatmap/pkg/geo"

// PlaceResult model info
// @Description a place returned by the places search api. two results are the same place iff their ids are equal.
type PlaceResult struct {
	ID       string         `json:"id"`       // opaque id assigned by the places provider
	Location geo.Coordinate `json:"location"` // geometry.location of the place
}

func NewPlaceResult(id string, lat, lon float64) PlaceResult {
	return PlaceResult{
		ID:       id,
		Location: geo.NewCoordinate(lat, lon),
	}
}
