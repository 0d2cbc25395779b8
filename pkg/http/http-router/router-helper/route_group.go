package router_helper

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup registers httprouter handles under a common path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

// Group returns a child group below the current prefix.
func (g *RouteGroup) Group(prefix string) *RouteGroup {
	return NewRouteGroup(g.router, g.path(prefix))
}

func (g *RouteGroup) path(p string) string {
	joined := path.Join(g.prefix, p)
	if p != "" && p[len(p)-1] == '/' && joined[len(joined)-1] != '/' {
		joined += "/"
	}
	return joined
}

func (g *RouteGroup) GET(p string, handle httprouter.Handle) {
	g.router.Handle(http.MethodGet, g.path(p), handle)
}

func (g *RouteGroup) POST(p string, handle httprouter.Handle) {
	g.router.Handle(http.MethodPost, g.path(p), handle)
}

func (g *RouteGroup) PUT(p string, handle httprouter.Handle) {
	g.router.Handle(http.MethodPut, g.path(p), handle)
}

func (g *RouteGroup) DELETE(p string, handle httprouter.Handle) {
	g.router.Handle(http.MethodDelete, g.path(p), handle)
}
