package http_server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

// New returns the http.Server for handler. request contexts derive from ctx.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           http.TimeoutHandler(handler, config.Timeout, "request timed out"),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       config.Timeout,
		WriteTimeout:      config.Timeout + time.Second,
		IdleTimeout:       time.Minute,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}
}
