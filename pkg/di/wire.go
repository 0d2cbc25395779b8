//go:build wireinject

//go:generate wire
package di

import (
	"context"

	"github.com/lintang-b-s/places-heatmap/pkg/di/config"
	shortcontext "github.com/lintang-b-s/places-heatmap/pkg/di/context"
	kv_di "github.com/lintang-b-s/places-heatmap/pkg/di/kv"
	logger_di "github.com/lintang-b-s/places-heatmap/pkg/di/logger"
	places_di "github.com/lintang-b-s/places-heatmap/pkg/di/places"
	session_di "github.com/lintang-b-s/places-heatmap/pkg/di/session"
	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	heatmapHttp "github.com/lintang-b-s/places-heatmap/pkg/http"
	"github.com/lintang-b-s/places-heatmap/pkg/http/http-router/controllers"
	"github.com/lintang-b-s/places-heatmap/pkg/http/usecases"
	"github.com/lintang-b-s/places-heatmap/pkg/kvdb"
	"github.com/lintang-b-s/places-heatmap/pkg/session"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var defaultSet = wire.NewSet(
	shortcontext.New,
	config.New,
	logger_di.New,
	kv_di.New,
	places_di.New,
	session_di.New,
	session_di.NewSearchArea,
)

var heatmapSet = wire.NewSet(
	defaultSet,
	NewHeatmapService,
	NewHeatmapAPIServer,
)

func NewHeatmapService(log *zap.Logger, manager *session.Manager, store *kvdb.KVDB,
	area geo.SearchArea) controllers.HeatmapService {
	return usecases.New(log, manager, store, area)
}

func NewHeatmapAPIServer(ctx context.Context, log *zap.Logger,
	heatmapService controllers.HeatmapService) (*heatmapHttp.Server, error) {
	api := heatmapHttp.NewServer(log)

	apiService, err := api.Use(
		ctx, log, heatmapService,
	)
	if err != nil {
		return nil, err
	}

	return apiService, nil
}

func InitializeHeatmapService() (*heatmapHttp.Server, func(), error) {

	panic(wire.Build(heatmapSet))
}
