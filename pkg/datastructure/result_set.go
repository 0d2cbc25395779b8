package datastructure

import "github.com/lintang-b-s/places-heatmap/pkg/geo"

// ResultSet merges the places of every sub-query of one keyword submission, keyed by place id.
// the first result seen for an id wins. not safe for concurrent use, it lives inside a single background job.
type ResultSet struct {
	places map[string]PlaceResult
	order  []string
}

func NewResultSet() *ResultSet {
	return &ResultSet{
		places: make(map[string]PlaceResult),
	}
}

// Add inserts p unless a place with the same id is already in the set. returns true if p was inserted.
func (rs *ResultSet) Add(p PlaceResult) bool {
	if _, ok := rs.places[p.ID]; ok {
		return false
	}
	rs.places[p.ID] = p
	rs.order = append(rs.order, p.ID)
	return true
}

// AddAll adds every result and returns how many were new.
func (rs *ResultSet) AddAll(results []PlaceResult) int {
	added := 0
	for _, p := range results {
		if rs.Add(p) {
			added++
		}
	}
	return added
}

func (rs *ResultSet) Get(id string) (PlaceResult, bool) {
	p, ok := rs.places[id]
	return p, ok
}

func (rs *ResultSet) Len() int {
	return len(rs.places)
}

// Coordinates drains the set into its coordinates, in insertion order, and empties it.
func (rs *ResultSet) Coordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(rs.order))
	for _, id := range rs.order {
		coords = append(coords, rs.places[id].Location)
	}
	rs.places = make(map[string]PlaceResult)
	rs.order = nil
	return coords
}
