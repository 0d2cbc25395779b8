package aggregator

import (
	"context"
	"errors"
	"fmt"

	"github.com/lintang-b-s/places-heatmap/pkg/datastructure"
	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/lintang-b-s/places-heatmap/pkg/places"

	"go.uber.org/zap"
)

type FailureKind int

const (
	MalformedRequest FailureKind = iota
	CannotConnect
	CannotProcess
	Unknown
)

func (k FailureKind) String() string {
	switch k {
	case MalformedRequest:
		return "malformed_request"
	case CannotConnect:
		return "cannot_connect"
	case CannotProcess:
		return "cannot_process"
	default:
		return "unknown"
	}
}

// KindOf classifies a sub-query error returned by the places client.
func KindOf(err error) FailureKind {
	switch {
	case errors.Is(err, places.ErrMalformedRequest):
		return MalformedRequest
	case errors.Is(err, places.ErrCannotConnect):
		return CannotConnect
	case errors.Is(err, places.ErrCannotProcess):
		return CannotProcess
	default:
		return Unknown
	}
}

// SubQueryError is a failed sub-query. it only empties that sub-query's contribution.
type SubQueryError struct {
	Keyword string
	Index   int
	Center  geo.Coordinate
	Kind    FailureKind
	Err     error
}

func (e SubQueryError) Error() string {
	return fmt.Sprintf("sub-query %d of %q at (%v, %v): %v", e.Index, e.Keyword, e.Center.Lat, e.Center.Lon, e.Err)
}

func (e SubQueryError) Unwrap() error {
	return e.Err
}

type Result struct {
	Keyword    string
	Points     []geo.Coordinate
	SubQueries int
	Failures   []SubQueryError
}

// Empty reports whether no place survived the merge.
func (r Result) Empty() bool {
	return len(r.Points) == 0
}

type Aggregator struct {
	searcher Searcher
	log      *zap.Logger
}

func New(searcher Searcher, log *zap.Logger) *Aggregator {
	return &Aggregator{
		searcher: searcher,
		log:      log,
	}
}

// Aggregate runs one radar search per center, one after another, and merges the places by id. the first place
// seen for an id wins. failed sub-queries are passed to sink (may be nil) and recorded in Result.Failures, the
// other sub-queries still run.
func (a *Aggregator) Aggregate(ctx context.Context, keyword string, centers []geo.Coordinate, sink EventSink) Result {
	merged := datastructure.NewResultSet()
	res := Result{
		Keyword:    keyword,
		SubQueries: len(centers),
	}

	for i, center := range centers {
		req := a.searcher.NewSearchRequest(keyword, center)
		results, err := a.searcher.RadarSearch(ctx, req)
		if err != nil {
			ev := SubQueryError{
				Keyword: keyword,
				Index:   i,
				Center:  center,
				Kind:    KindOf(err),
				Err:     err,
			}
			a.log.Warn("sub-query failed", zap.String("keyword", keyword), zap.Int("sub_query", i),
				zap.String("kind", ev.Kind.String()), zap.Error(err))
			res.Failures = append(res.Failures, ev)
			if sink != nil {
				sink.SubQueryFailed(ev)
			}
			continue
		}

		added := merged.AddAll(results)
		a.log.Debug("sub-query merged", zap.String("keyword", keyword), zap.Int("sub_query", i),
			zap.Int("results", len(results)), zap.Int("new", added))
	}

	res.Points = merged.Coordinates()
	a.log.Info("aggregation done", zap.String("keyword", keyword), zap.Int("places", len(res.Points)),
		zap.Int("failed_sub_queries", len(res.Failures)))
	return res
}
