package heatmap

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lintang-b-s/places-heatmap/pkg"
	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/lintang-b-s/places-heatmap/pkg/kvdb"

	"github.com/google/uuid"
)

// Layer is what gets handed to a Renderer: the merged points of one keyword and its gradient.
type Layer struct {
	SessionID string
	Keyword   string
	Gradient  Gradient
	Points    []geo.Coordinate
}

// Overlay is the handle of a rendered layer.
type Overlay interface {
	ID() string
	Visible() bool
	SetVisible(visible bool) error
	Remove() error
}

type Renderer interface {
	Render(ctx context.Context, layer Layer) (Overlay, error)
}

func validateLayer(layer Layer) error {
	if len(layer.Points) == 0 {
		return pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "layer %q has no points", layer.Keyword)
	}
	if len(layer.Gradient.Colors) == 0 {
		return pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "layer %q has no gradient", layer.Keyword)
	}
	return nil
}

// MemoryRenderer keeps overlays in memory.
type MemoryRenderer struct {
	mu       sync.Mutex
	overlays map[string]*memoryOverlay
}

func NewMemoryRenderer() *MemoryRenderer {
	return &MemoryRenderer{overlays: make(map[string]*memoryOverlay)}
}

func (r *MemoryRenderer) Render(ctx context.Context, layer Layer) (Overlay, error) {
	if err := validateLayer(layer); err != nil {
		return nil, err
	}
	o := &memoryOverlay{
		id:       uuid.NewString(),
		layer:    layer,
		visible:  true,
		renderer: r,
	}
	r.mu.Lock()
	r.overlays[o.id] = o
	r.mu.Unlock()
	return o, nil
}

// Layers returns the layers currently on the map.
func (r *MemoryRenderer) Layers() []Layer {
	r.mu.Lock()
	defer r.mu.Unlock()
	layers := make([]Layer, 0, len(r.overlays))
	for _, o := range r.overlays {
		layers = append(layers, o.layer)
	}
	return layers
}

type memoryOverlay struct {
	id       string
	layer    Layer
	renderer *MemoryRenderer

	mu      sync.Mutex
	visible bool
}

func (o *memoryOverlay) ID() string {
	return o.id
}

func (o *memoryOverlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

func (o *memoryOverlay) SetVisible(visible bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = visible
	return nil
}

func (o *memoryOverlay) Remove() error {
	o.renderer.mu.Lock()
	defer o.renderer.mu.Unlock()
	delete(o.renderer.overlays, o.id)
	return nil
}

type OverlayStore interface {
	PutOverlay(rec kvdb.OverlayRecord) error
	GetOverlay(id string) (kvdb.OverlayRecord, error)
	SetOverlayVisible(id string, visible bool) error
	DeleteOverlay(id string) error
}

// StoreRenderer renders a layer by writing it to an OverlayStore, where map clients pick it up.
type StoreRenderer struct {
	store OverlayStore
	now   func() time.Time
}

func NewStoreRenderer(store OverlayStore) *StoreRenderer {
	return &StoreRenderer{store: store, now: time.Now}
}

func (r *StoreRenderer) Render(ctx context.Context, layer Layer) (Overlay, error) {
	if err := validateLayer(layer); err != nil {
		return nil, err
	}
	colors := make([]uint32, 0, len(layer.Gradient.Colors))
	for _, c := range layer.Gradient.Colors {
		colors = append(colors, c.ARGB())
	}
	rec := kvdb.OverlayRecord{
		ID:          uuid.NewString(),
		SessionID:   layer.SessionID,
		Keyword:     layer.Keyword,
		Colors:      colors,
		StartPoints: layer.Gradient.StartPoints,
		Points:      layer.Points,
		Visible:     true,
		CreatedAt:   r.now(),
	}
	if err := r.store.PutOverlay(rec); err != nil {
		return nil, pkg.WrapErrorf(err, pkg.ErrInternalServerError, "save overlay for %q", layer.Keyword)
	}
	return &storeOverlay{id: rec.ID, visible: true, store: r.store}, nil
}

type storeOverlay struct {
	id    string
	store OverlayStore

	mu      sync.Mutex
	visible bool
}

func (o *storeOverlay) ID() string {
	return o.id
}

func (o *storeOverlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

func (o *storeOverlay) SetVisible(visible bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.store.SetOverlayVisible(o.id, visible); err != nil {
		if errors.Is(err, kvdb.ErrorsKeyNotExists) {
			return pkg.WrapErrorf(err, pkg.ErrNotFound, "overlay %s not found", o.id)
		}
		return pkg.WrapErrorf(err, pkg.ErrInternalServerError, "update overlay %s", o.id)
	}
	o.visible = visible
	return nil
}

func (o *storeOverlay) Remove() error {
	return o.store.DeleteOverlay(o.id)
}

// LayerFromRecord rebuilds the layer of a stored overlay. a record with a broken gradient is rejected.
func LayerFromRecord(rec kvdb.OverlayRecord) (Layer, error) {
	colors := make([]Color, 0, len(rec.Colors))
	for _, argb := range rec.Colors {
		colors = append(colors, RGB(uint8(argb>>16), uint8(argb>>8), uint8(argb)))
	}
	gradient, err := NewGradient(colors, rec.StartPoints)
	if err != nil {
		return Layer{}, pkg.WrapErrorf(err, pkg.ErrInternalServerError, "stored overlay %s", rec.ID)
	}
	return Layer{
		SessionID: rec.SessionID,
		Keyword:   rec.Keyword,
		Gradient:  gradient,
		Points:    rec.Points,
	}, nil
}
