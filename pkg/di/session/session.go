package session_di

import (
	"github.com/lintang-b-s/places-heatmap/pkg/aggregator"
	"github.com/lintang-b-s/places-heatmap/pkg/di/config"
	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/lintang-b-s/places-heatmap/pkg/heatmap"
	"github.com/lintang-b-s/places-heatmap/pkg/kvdb"
	"github.com/lintang-b-s/places-heatmap/pkg/places"
	"github.com/lintang-b-s/places-heatmap/pkg/session"

	"go.uber.org/zap"
)

// New returns the session manager. sessions render into the overlay store and drop their overlays from it
// when closed.
func New(cfg *config.Config, client *places.Client, store *kvdb.KVDB, log *zap.Logger) (*session.Manager, func()) {
	agg := aggregator.New(client, log)
	renderer := heatmap.NewStoreRenderer(store)
	sessCfg := session.Config{
		Center:       cfg.Center,
		OffsetRadius: cfg.OffsetRadius,
		Palette:      heatmap.DefaultPalette,
		Workers:      cfg.Workers,
	}

	manager := session.NewManager(func(id string) (*session.Session, error) {
		return session.New(id, sessCfg, agg, renderer, log)
	}, func(id string) error {
		n, err := store.DeleteSession(id)
		if n > 0 {
			log.Info("dropped leftover overlays", zap.String("session", id), zap.Int("overlays", n))
		}
		return err
	}, log)

	cleanup := func() {
		if err := manager.Close(); err != nil {
			log.Error("close sessions", zap.Error(err))
		}
	}
	return manager, cleanup
}

func NewSearchArea(cfg *config.Config) (geo.SearchArea, error) {
	return geo.NewSearchArea(cfg.Center, cfg.OffsetRadius)
}
