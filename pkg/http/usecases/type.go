package usecases

import (
	"github.com/lintang-b-s/places-heatmap/pkg/kvdb"
	"github.com/lintang-b-s/places-heatmap/pkg/session"
)

type SessionManager interface {
	Create() (*session.Session, error)
	Get(id string) (*session.Session, error)
	Delete(id string) error
}

type OverlayStore interface {
	GetOverlay(id string) (kvdb.OverlayRecord, error)
	ListOverlays(sessionID string) ([]kvdb.OverlayRecord, error)
}
