package main

import (
	"log"

	"github.com/lintang-b-s/places-heatmap/pkg/di"

	"go.uber.org/zap"
)

func main() {
	server, cleanup, err := di.InitializeHeatmapService()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	server.Log.Info("places heatmap api started")
	if err := server.Wait(); err != nil {
		server.Log.Error("api stopped", zap.Error(err))
		cleanup()
		log.Fatal(err)
	}
	server.Log.Info("api stopped")
}
