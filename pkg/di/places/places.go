package places_di

import (
	"net/http"

	"github.com/lintang-b-s/places-heatmap/pkg/di/config"
	"github.com/lintang-b-s/places-heatmap/pkg/places"

	"go.uber.org/zap"
)

func New(cfg *config.Config, log *zap.Logger) *places.Client {
	if cfg.Places.APIKey == "" {
		log.Warn("PLACES_API_KEY is empty, every radar search will be rejected by the places api")
	}
	client := places.NewClient(cfg.Places, &http.Client{Timeout: cfg.Places.Timeout}, log)
	log.Info("places client ready", zap.String("base_url", cfg.Places.BaseURL),
		zap.Int("search_radius", client.SearchRadius()), zap.Float64("offset_radius", cfg.OffsetRadius))
	return client
}
