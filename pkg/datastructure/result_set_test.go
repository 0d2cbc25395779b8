package datastructure

import (
	"testing"

	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/stretchr/testify/assert"
)

func TestResultSet(t *testing.T) {
	t.Run("first seen wins", func(t *testing.T) {
		rs := NewResultSet()
		assert.True(t, rs.Add(NewPlaceResult("abc123", -33.86, 151.20)))
		assert.False(t, rs.Add(NewPlaceResult("abc123", -33.8600001, 151.2000001)))

		p, ok := rs.Get("abc123")
		assert.True(t, ok)
		assert.Equal(t, geo.NewCoordinate(-33.86, 151.20), p.Location)
		assert.Equal(t, 1, rs.Len())
	})

	t.Run("same coordinate different ids are distinct", func(t *testing.T) {
		rs := NewResultSet()
		added := rs.AddAll([]PlaceResult{
			NewPlaceResult("a", 1, 1),
			NewPlaceResult("b", 1, 1),
			NewPlaceResult("a", 2, 2),
		})
		assert.Equal(t, 2, added)
		assert.Equal(t, 2, rs.Len())
	})

	t.Run("coordinates drains the set", func(t *testing.T) {
		rs := NewResultSet()
		rs.AddAll([]PlaceResult{
			NewPlaceResult("a", 1, 1),
			NewPlaceResult("b", 2, 2),
		})
		coords := rs.Coordinates()
		assert.ElementsMatch(t, []geo.Coordinate{geo.NewCoordinate(1, 1), geo.NewCoordinate(2, 2)}, coords)
		assert.Equal(t, 0, rs.Len())
		assert.Empty(t, rs.Coordinates())
	})
}
