package kv_di

import (
	"time"

	"github.com/lintang-b-s/places-heatmap/pkg/di/config"
	"github.com/lintang-b-s/places-heatmap/pkg/kvdb"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

func New(cfg *config.Config, log *zap.Logger) (*kvdb.KVDB, func(), error) {
	db, err := bolt.Open(cfg.OverlayDB, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, nil, err
	}

	bboltKV, err := kvdb.NewKVDB(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := bboltKV.Close(); err != nil {
			log.Error("close overlay db", zap.Error(err))
		}
	}

	return bboltKV, cleanup, nil
}
