package http_router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lintang-b-s/places-heatmap/pkg/http/http-router/controllers"
	router_helper "github.com/lintang-b-s/places-heatmap/pkg/http/http-router/router-helper"
	http_server "github.com/lintang-b-s/places-heatmap/pkg/http/server"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler builds the router with every middleware attached.
func (api *API) Handler(heatmapService controllers.HeatmapService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", requestIDHeader},
		ExposedHeaders:   []string{"Link", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore

	})

	group := router_helper.NewRouteGroup(router, "/api")

	heatmapRoutes := controllers.New(heatmapService, api.log)

	heatmapRoutes.Routes(group)

	return alice.New(corsHandler.Handler, RequestID, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log)).Then(router)
}

// Run serves the api until ctx is done, then shuts the server down gracefully.
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,

	heatmapService controllers.HeatmapService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(heatmapService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	errC := make(chan error, 1)
	go func() {
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		api.log.Info("shutting down API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
