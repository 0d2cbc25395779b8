package aggregator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/lintang-b-s/places-heatmap/pkg/datastructure"
	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/lintang-b-s/places-heatmap/pkg/places"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var sydney = geo.NewCoordinate(-33.873651, 151.2058896)

type scriptedResponse struct {
	results []datastructure.PlaceResult
	err     error
}

// fakeSearcher answers the i-th request with responses[i].
type fakeSearcher struct {
	mu        sync.Mutex
	responses []scriptedResponse
	requests  []places.SearchRequest
}

func (f *fakeSearcher) NewSearchRequest(keyword string, center geo.Coordinate) places.SearchRequest {
	return places.SearchRequest{Center: center, Radius: 5000, Keyword: keyword}
}

func (f *fakeSearcher) RadarSearch(ctx context.Context, req places.SearchRequest) ([]datastructure.PlaceResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.requests)
	f.requests = append(f.requests, req)
	r := f.responses[i]
	return r.results, r.err
}

func plan(t *testing.T) []geo.Coordinate {
	centers, err := geo.PlanSearchCenters(sydney, 8000)
	require.NoError(t, err)
	return centers
}

func TestAggregate(t *testing.T) {
	t.Run("one entry per distinct id", func(t *testing.T) {
		s := &fakeSearcher{responses: []scriptedResponse{
			{results: []datastructure.PlaceResult{
				datastructure.NewPlaceResult("abc123", -33.85, 151.21),
				datastructure.NewPlaceResult("x", -33.86, 151.22),
			}},
			{results: []datastructure.PlaceResult{datastructure.NewPlaceResult("y", -33.88, 151.23)}},
			{results: []datastructure.PlaceResult{
				datastructure.NewPlaceResult("abc123", -33.8500001, 151.2100001),
				datastructure.NewPlaceResult("x", -33.86, 151.22),
			}},
			{results: nil},
		}}

		agg := New(s, zap.NewNop())
		res := agg.Aggregate(context.Background(), "pizza", plan(t), nil)

		assert.Equal(t, 4, res.SubQueries)
		assert.Empty(t, res.Failures)
		assert.ElementsMatch(t, []geo.Coordinate{
			geo.NewCoordinate(-33.85, 151.21),
			geo.NewCoordinate(-33.86, 151.22),
			geo.NewCoordinate(-33.88, 151.23),
		}, res.Points)
		assert.False(t, res.Empty())
	})

	t.Run("requests go to the planned centers in order", func(t *testing.T) {
		s := &fakeSearcher{responses: make([]scriptedResponse, 4)}
		centers := plan(t)

		res := New(s, zap.NewNop()).Aggregate(context.Background(), "coffee shop", centers, nil)
		assert.True(t, res.Empty())

		require.Len(t, s.requests, 4)
		for i, req := range s.requests {
			assert.Equal(t, centers[i], req.Center)
			assert.Equal(t, "coffee shop", req.Keyword)
		}
	})

	t.Run("a failed sub-query does not stop the others", func(t *testing.T) {
		parseErr := fmt.Errorf("%w: bad body", places.ErrCannotProcess)
		s := &fakeSearcher{responses: []scriptedResponse{
			{results: []datastructure.PlaceResult{datastructure.NewPlaceResult("a", 1, 1)}},
			{err: parseErr},
			{results: []datastructure.PlaceResult{datastructure.NewPlaceResult("b", 2, 2)}},
			{results: []datastructure.PlaceResult{datastructure.NewPlaceResult("c", 3, 3)}},
		}}

		var events []SubQueryError
		sink := EventSinkFunc(func(ev SubQueryError) { events = append(events, ev) })

		centers := plan(t)
		res := New(s, zap.NewNop()).Aggregate(context.Background(), "bar", centers, sink)

		assert.Len(t, res.Points, 3)
		require.Len(t, events, 1)
		assert.Equal(t, 1, events[0].Index)
		assert.Equal(t, centers[1], events[0].Center)
		assert.Equal(t, CannotProcess, events[0].Kind)
		assert.True(t, errors.Is(events[0], places.ErrCannotProcess))
		assert.Equal(t, events, res.Failures)
	})

	t.Run("every sub-query failing gives an empty result", func(t *testing.T) {
		connErr := fmt.Errorf("%w: refused", places.ErrCannotConnect)
		s := &fakeSearcher{responses: []scriptedResponse{{err: connErr}, {err: connErr}, {err: connErr}, {err: errors.New("boom")}}}

		res := New(s, zap.NewNop()).Aggregate(context.Background(), "bar", plan(t), nil)
		assert.True(t, res.Empty())
		require.Len(t, res.Failures, 4)
		assert.Equal(t, CannotConnect, res.Failures[0].Kind)
		assert.Equal(t, Unknown, res.Failures[3].Kind)
	})
}

func TestAggregateAgainstPlacesServer(t *testing.T) {
	t.Run("against a places server with one malformed response", func(t *testing.T) {
		var mu sync.Mutex
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()

			switch n {
			case 1:
				_, _ = w.Write([]byte(`{"results": [{"id": "abc123", "geometry": {"location": {"lat": -33.84, "lng": 151.23}}}]}`))
			case 2:
				_, _ = w.Write([]byte(`{"results": [{"id": "zzz", "geometry": {"location": {"lat": -33.89, "lng": 151.24}}}]}`))
			case 3:
				_, _ = w.Write([]byte(`{"results": [{"id": "abc123", "geometry": {"location": {"lat": -33.8400001, "lng": 151.2300001}}}]}`))
			default:
				_, _ = w.Write([]byte(`not json`))
			}
		}))
		defer srv.Close()

		client := places.NewClient(places.Config{BaseURL: srv.URL, APIKey: "k"}, srv.Client(), zap.NewNop())
		res := New(client, zap.NewNop()).Aggregate(context.Background(), "pub", plan(t), nil)

		assert.ElementsMatch(t, []geo.Coordinate{
			geo.NewCoordinate(-33.84, 151.23),
			geo.NewCoordinate(-33.89, 151.24),
		}, res.Points)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, 3, res.Failures[0].Index)
		assert.Equal(t, CannotProcess, res.Failures[0].Kind)
	})
}
