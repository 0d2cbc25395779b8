package usecases

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/places-heatmap/pkg"
	"github.com/lintang-b-s/places-heatmap/pkg/aggregator"
	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/lintang-b-s/places-heatmap/pkg/heatmap"
	"github.com/lintang-b-s/places-heatmap/pkg/kvdb"
	"github.com/lintang-b-s/places-heatmap/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var sydney = geo.NewCoordinate(-33.873651, 151.2058896)

type staticAggregator map[string][]geo.Coordinate

func (a staticAggregator) Aggregate(ctx context.Context, keyword string, centers []geo.Coordinate,
	sink aggregator.EventSink) aggregator.Result {
	return aggregator.Result{Keyword: keyword, Points: a[keyword], SubQueries: len(centers)}
}

func newService(t *testing.T) (*HeatmapService, *kvdb.KVDB) {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "overlays.db"), 0600, nil)
	require.NoError(t, err)
	store, err := kvdb.NewKVDB(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	agg := staticAggregator{
		"pizza":         {geo.NewCoordinate(-33.85, 151.21), geo.NewCoordinate(-33.86, 151.22)},
		"24/7 pharmacy": {geo.NewCoordinate(-33.87, 151.20)},
	}
	renderer := heatmap.NewStoreRenderer(store)
	cfg := session.Config{Center: sydney, OffsetRadius: 8000, Workers: 2}
	log := zap.NewNop()

	manager := session.NewManager(func(id string) (*session.Session, error) {
		return session.New(id, cfg, agg, renderer, log)
	}, func(id string) error {
		_, err := store.DeleteSession(id)
		return err
	}, log)
	t.Cleanup(func() { _ = manager.Close() })

	area, err := geo.NewSearchArea(sydney, 8000)
	require.NoError(t, err)
	return New(log, manager, store, area), store
}

func TestHeatmapService(t *testing.T) {
	svc, store := newService(t)

	id, err := svc.CreateSession()
	require.NoError(t, err)

	require.NoError(t, svc.Submit(id, "pizza"))
	assert.Eventually(t, func() bool {
		layers, pending, err := svc.Overlays(id)
		return err == nil && len(layers) == 1 && len(pending) == 0
	}, 2*time.Second, 10*time.Millisecond)

	err = svc.Submit(id, "pizza")
	assert.Equal(t, pkg.ErrConflict, pkg.ErrorCode(err))

	layers, _, err := svc.Overlays(id)
	require.NoError(t, err)
	overlayID := layers[0].OverlayID

	fc, err := svc.Overlay(id, overlayID)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 2)
	assert.Equal(t, true, fc.ExtraMembers["visible"])

	require.NoError(t, svc.SetVisible(id, overlayID, false))
	fc, err = svc.Overlay(id, overlayID)
	require.NoError(t, err)
	assert.Equal(t, false, fc.ExtraMembers["visible"])

	_, err = svc.Overlay(id, "pizza")
	assert.Equal(t, pkg.ErrNotFound, pkg.ErrorCode(err))

	notices, err := svc.Notices(id)
	require.NoError(t, err)
	require.NotEmpty(t, notices)
	assert.Equal(t, session.NoticeRendered, notices[0].Kind)

	require.NoError(t, svc.DeleteSession(id))
	recs, err := store.ListOverlays(id)
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, _, err = svc.Overlays(id)
	assert.Equal(t, pkg.ErrNotFound, pkg.ErrorCode(err))
}

func TestHeatmapServiceNoResults(t *testing.T) {
	svc, _ := newService(t)

	id, err := svc.CreateSession()
	require.NoError(t, err)

	require.NoError(t, svc.Submit(id, "nothing here"))
	assert.Eventually(t, func() bool {
		_, pending, err := svc.Overlays(id)
		return err == nil && len(pending) == 0
	}, 2*time.Second, 10*time.Millisecond)

	notices, err := svc.Notices(id)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, session.NoticeNoResults, notices[0].Kind)

	// keyword is released and can be submitted again
	assert.NoError(t, svc.Submit(id, "nothing here"))
}

func TestHeatmapServiceUnknownSession(t *testing.T) {
	svc, _ := newService(t)
	assert.Equal(t, pkg.ErrNotFound, pkg.ErrorCode(svc.Submit("missing", "pizza")))
	assert.Equal(t, pkg.ErrNotFound, pkg.ErrorCode(svc.DeleteSession("missing")))
	assert.Equal(t, sydney, svc.SearchArea().Center)
}

func TestHeatmapServiceExport(t *testing.T) {
	svc, _ := newService(t)

	id, err := svc.CreateSession()
	require.NoError(t, err)
	require.NoError(t, svc.Submit(id, "pizza"))
	require.NoError(t, svc.Submit(id, "24/7 pharmacy"))
	assert.Eventually(t, func() bool {
		layers, _, err := svc.Overlays(id)
		return err == nil && len(layers) == 2
	}, 2*time.Second, 10*time.Millisecond)

	fc, err := svc.Export(id)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 3)
	assert.ElementsMatch(t, []string{"pizza", "24/7 pharmacy"}, fc.ExtraMembers["keywords"])

	layers, _, err := svc.Overlays(id)
	require.NoError(t, err)
	for _, l := range layers {
		if l.Keyword == "24/7 pharmacy" {
			require.NoError(t, svc.SetVisible(id, l.OverlayID, false))
		}
	}
	fc, err = svc.Export(id)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 2)
	assert.Equal(t, []string{"pizza"}, fc.ExtraMembers["keywords"])

	_, err = svc.Export("missing")
	assert.Equal(t, pkg.ErrNotFound, pkg.ErrorCode(err))
}
