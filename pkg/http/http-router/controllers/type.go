package controllers

import (
	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/lintang-b-s/places-heatmap/pkg/session"

	"github.com/paulmach/orb/geojson"
)

type HeatmapService interface {
	CreateSession() (string, error)
	DeleteSession(sessionID string) error
	Submit(sessionID, keyword string) error
	Overlays(sessionID string) ([]session.LayerInfo, []string, error)
	Overlay(sessionID, overlayID string) (*geojson.FeatureCollection, error)
	Export(sessionID string) (*geojson.FeatureCollection, error)
	SetVisible(sessionID, overlayID string, visible bool) error
	Notices(sessionID string) ([]session.Notice, error)
	SearchArea() geo.SearchArea
}
