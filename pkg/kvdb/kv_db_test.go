package kvdb

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestDB(t *testing.T) *KVDB {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "overlays.db"), 0600, nil)
	require.NoError(t, err)
	kv, err := NewKVDB(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func sampleRecord(id, session, keyword string) OverlayRecord {
	points := make([]geo.Coordinate, 0, 200)
	for i := 0; i < 200; i++ {
		points = append(points, geo.NewCoordinate(-33.87+float64(i)*1e-4, 151.2+float64(i)*1e-4))
	}
	return OverlayRecord{
		ID:          id,
		SessionID:   session,
		Keyword:     keyword,
		Colors:      []uint32{0xffee2c2c},
		StartPoints: []float32{1.0},
		Points:      points,
		Visible:     true,
		CreatedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestOverlayStore(t *testing.T) {
	kv := openTestDB(t)

	t.Run("put and get", func(t *testing.T) {
		rec := sampleRecord("o1", "s1", "pizza")
		require.NoError(t, kv.PutOverlay(rec))

		got, err := kv.GetOverlay("o1")
		require.NoError(t, err)
		assert.Equal(t, rec.Keyword, got.Keyword)
		assert.Equal(t, rec.Points, got.Points)
		assert.Equal(t, rec.Colors, got.Colors)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, got.Visible)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := kv.GetOverlay("nope")
		assert.True(t, errors.Is(err, ErrorsKeyNotExists))
		assert.True(t, errors.Is(kv.SetOverlayVisible("nope", false), ErrorsKeyNotExists))
	})

	t.Run("toggle visibility", func(t *testing.T) {
		require.NoError(t, kv.SetOverlayVisible("o1", false))
		got, err := kv.GetOverlay("o1")
		require.NoError(t, err)
		assert.False(t, got.Visible)
	})

	t.Run("list and delete by session", func(t *testing.T) {
		require.NoError(t, kv.PutOverlay(sampleRecord("o2", "s1", "sushi")))
		require.NoError(t, kv.PutOverlay(sampleRecord("o3", "s2", "pizza")))

		recs, err := kv.ListOverlays("s1")
		require.NoError(t, err)
		assert.Len(t, recs, 2)

		n, err := kv.DeleteSession("s1")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		recs, err = kv.ListOverlays("s1")
		require.NoError(t, err)
		assert.Empty(t, recs)

		recs, err = kv.ListOverlays("s2")
		require.NoError(t, err)
		assert.Len(t, recs, 1)

		require.NoError(t, kv.DeleteOverlay("o3"))
		_, err = kv.GetOverlay("o3")
		assert.True(t, errors.Is(err, ErrorsKeyNotExists))
	})
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlays.db")

	db, err := bolt.Open(path, 0600, nil)
	require.NoError(t, err)
	kv, err := NewKVDB(db)
	require.NoError(t, err)
	require.NotNil(t, kv.encoder)
	require.NotNil(t, kv.decoder)
	require.NoError(t, kv.PutOverlay(sampleRecord("o1", "s1", "pizza")))
	require.NoError(t, kv.Close())

	db, err = bolt.Open(path, 0600, nil)
	require.NoError(t, err)
	kv, err = NewKVDB(db)
	require.NoError(t, err)
	defer kv.Close()

	want := sampleRecord("o1", "s1", "pizza")
	rec, err := kv.GetOverlay("o1")
	require.NoError(t, err)
	assert.Equal(t, want.Points, rec.Points)
	assert.Equal(t, want.Colors, rec.Colors)
	assert.True(t, want.CreatedAt.Equal(rec.CreatedAt))
}
