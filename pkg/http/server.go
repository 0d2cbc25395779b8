package http

import (
	"context"

	http_router "github.com/lintang-b-s/places-heatmap/pkg/http/http-router"
	"github.com/lintang-b-s/places-heatmap/pkg/http/http-router/controllers"
	http_server "github.com/lintang-b-s/places-heatmap/pkg/http/server"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the api in the background. it stops when ctx is done, Wait returns its error.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	heatmapService controllers.HeatmapService,

) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)

	viper.SetDefault("API_TIMEOUT", "60s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(
			gctx, config, heatmapService,
		)
	})
	s.g = g

	return s, nil

}

// Wait blocks until the api has stopped.
func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}
