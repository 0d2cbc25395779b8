package usecases

import (
	"errors"
	"sort"

	"github.com/lintang-b-s/places-heatmap/pkg"
	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/lintang-b-s/places-heatmap/pkg/heatmap"
	"github.com/lintang-b-s/places-heatmap/pkg/kvdb"
	"github.com/lintang-b-s/places-heatmap/pkg/session"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type HeatmapService struct {
	log      *zap.Logger
	sessions SessionManager
	store    OverlayStore
	area     geo.SearchArea
}

func New(log *zap.Logger, sessions SessionManager, store OverlayStore, area geo.SearchArea) *HeatmapService {
	return &HeatmapService{
		log:      log,
		sessions: sessions,
		store:    store,
		area:     area,
	}
}

func (s *HeatmapService) CreateSession() (string, error) {
	sess, err := s.sessions.Create()
	if err != nil {
		return "", pkg.WrapErrorf(err, pkg.ErrInternalServerError, "create session")
	}
	return sess.ID(), nil
}

func (s *HeatmapService) DeleteSession(sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// Submit hands keyword to the session. the heatmap is rendered in the background.
func (s *HeatmapService) Submit(sessionID, keyword string) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	_, err = sess.Submit(keyword)
	return err
}

func (s *HeatmapService) Overlays(sessionID string) ([]session.LayerInfo, []string, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return sess.Layers(), sess.Pending(), nil
}

// Overlay reads the stored overlay back and returns it as geojson.
func (s *HeatmapService) Overlay(sessionID, overlayID string) (*geojson.FeatureCollection, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.Layer(overlayID); err != nil {
		return nil, err
	}

	rec, err := s.store.GetOverlay(overlayID)
	if err != nil {
		if errors.Is(err, kvdb.ErrorsKeyNotExists) {
			return nil, pkg.WrapErrorf(err, pkg.ErrNotFound, "overlay %s not found", overlayID)
		}
		return nil, pkg.WrapErrorf(err, pkg.ErrInternalServerError, "read overlay %s", overlayID)
	}
	layer, err := heatmap.LayerFromRecord(rec)
	if err != nil {
		return nil, err
	}
	return heatmap.FeatureCollection(layer, rec.Visible), nil
}

// Export returns every visible stored overlay of the session as one feature collection, oldest first.
func (s *HeatmapService) Export(sessionID string) (*geojson.FeatureCollection, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	recs, err := s.store.ListOverlays(sessionID)
	if err != nil {
		return nil, pkg.WrapErrorf(err, pkg.ErrInternalServerError, "list overlays of session %s", sessionID)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.Before(recs[j].CreatedAt)
	})

	out := geojson.NewFeatureCollection()
	keywords := []string{}
	for _, rec := range recs {
		if !rec.Visible {
			continue
		}
		layer, err := heatmap.LayerFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out.Features = append(out.Features, heatmap.FeatureCollection(layer, true).Features...)
		keywords = append(keywords, rec.Keyword)
	}
	out.ExtraMembers = geojson.Properties{"keywords": keywords}
	return out, nil
}

func (s *HeatmapService) SetVisible(sessionID, overlayID string, visible bool) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	return sess.SetVisible(overlayID, visible)
}

func (s *HeatmapService) Notices(sessionID string) ([]session.Notice, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Notices(), nil
}

func (s *HeatmapService) SearchArea() geo.SearchArea {
	return s.area
}
