package aggregator

import (
	"context"

	"github.com/lintang-b-s/places-heatmap/pkg/datastructure"
	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/lintang-b-s/places-heatmap/pkg/places"
)

type Searcher interface {
	NewSearchRequest(keyword string, center geo.Coordinate) places.SearchRequest
	RadarSearch(ctx context.Context, req places.SearchRequest) ([]datastructure.PlaceResult, error)
}

// EventSink receives the failures of individual sub-queries while an aggregation is running.
type EventSink interface {
	SubQueryFailed(ev SubQueryError)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ev SubQueryError)

func (f EventSinkFunc) SubQueryFailed(ev SubQueryError) {
	f(ev)
}
