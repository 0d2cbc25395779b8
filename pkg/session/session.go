package session

import (
	"context"
	"sync"

	"github.com/lintang-b-s/places-heatmap/pkg"
	"github.com/lintang-b-s/places-heatmap/pkg/aggregator"
	"github.com/lintang-b-s/places-heatmap/pkg/concurrent"
	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/lintang-b-s/places-heatmap/pkg/heatmap"

	"go.uber.org/zap"
)

type Aggregator interface {
	Aggregate(ctx context.Context, keyword string, centers []geo.Coordinate, sink aggregator.EventSink) aggregator.Result
}

type Config struct {
	Center       geo.Coordinate
	OffsetRadius float64 // meters, the sub-query centers are OffsetRadius/2 away from Center
	Palette      heatmap.Palette
	Workers      int
	// OnNotice, when set, is called for every notice while the session lock is held. it must not call back into
	// the session.
	OnNotice func(Notice)
}

// LayerInfo model info
//
//	@Description	a rendered heatmap overlay of one keyword.
type LayerInfo struct {
	Keyword     string          `json:"keyword"`
	OverlayID   string          `json:"overlay_id"`
	ColorIndex  int             `json:"color_index"`
	Color       string          `json:"color"` // #rrggbb
	Visible     bool            `json:"visible"`
	Points      int             `json:"points"`
	OutsideArea int             `json:"outside_area"` // points outside the drawn search area circle
	Bounds      geo.BoundingBox `json:"bounds"`
}

type layerEntry struct {
	keyword     string
	overlay     heatmap.Overlay
	colorIndex  int
	points      int
	outsideArea int
	bounds      geo.BoundingBox
}

type submissionJob struct {
	keyword string
}

func (j submissionJob) JobID() string {
	return j.keyword
}

type completion struct {
	keyword string
	result  aggregator.Result
}

// Session owns the keyword registry, the palette slots and the overlay table of one user. Submit, SetVisible and
// the other exported methods are the foreground: they run under mu. every accepted keyword is aggregated by one
// job on the background worker, whose result comes back on the worker's results channel and is applied by the
// foreground loop. background jobs only append sub-query failure notices, under mu.
type Session struct {
	id         string
	log        *zap.Logger
	cfg        Config
	area       geo.SearchArea
	aggregator Aggregator
	renderer   heatmap.Renderer
	worker     *concurrent.BackgroundWorker[submissionJob, completion]
	loopDone   chan struct{}

	mu         sync.Mutex
	keywords   map[string]bool
	pending    map[string]*Submission
	layers     map[string]*layerEntry
	byOverlay  map[string]string // overlay id -> keyword
	order      []string
	usedColors map[int]bool
	notices    []Notice
	closed     bool
}

func New(id string, cfg Config, agg Aggregator, renderer heatmap.Renderer, log *zap.Logger) (*Session, error) {
	if len(cfg.Palette) == 0 {
		cfg.Palette = heatmap.DefaultPalette
	}
	area, err := geo.NewSearchArea(cfg.Center, cfg.OffsetRadius)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:         id,
		log:        log.With(zap.String("session", id)),
		cfg:        cfg,
		area:       area,
		aggregator: agg,
		renderer:   renderer,
		loopDone:   make(chan struct{}),
		keywords:   make(map[string]bool),
		pending:    make(map[string]*Submission),
		layers:     make(map[string]*layerEntry),
		byOverlay:  make(map[string]string),
		usedColors: make(map[int]bool),
	}

	// at most palette size submissions are in flight, so neither channel of the worker can fill up.
	s.worker = concurrent.NewBackgroundWorker[submissionJob, completion](cfg.Workers, cfg.Palette.Size(), s.aggregate)
	s.worker.Start()
	go s.run()

	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) SearchArea() geo.SearchArea {
	return s.area
}

// Capacity is the number of overlays the session can show, one per palette color.
func (s *Session) Capacity() int {
	return s.cfg.Palette.Size()
}

// Submit accepts keyword for aggregation or rejects it right away. it never waits for network work.
func (s *Session) Submit(keyword string) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, pkg.WrapErrorf(nil, pkg.ErrNotFound, "session %s is closed", s.id)
	}
	if keyword == "" {
		return nil, pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "keyword must not be empty")
	}
	if s.keywords[keyword] {
		s.pushNotice(newNotice(NoticeDuplicateKeyword, keyword, duplicateMessage()))
		return nil, pkg.WrapErrorf(nil, pkg.ErrConflict, "%s", duplicateMessage())
	}
	if len(s.layers)+len(s.pending) >= s.Capacity() {
		s.pushNotice(newNotice(NoticeCapacityReached, keyword, capacityMessage(s.Capacity())))
		return nil, pkg.WrapErrorf(nil, pkg.ErrCapacityExceeded, "%s", capacityMessage(s.Capacity()))
	}

	s.keywords[keyword] = true
	sub := newSubmission(keyword)
	s.pending[keyword] = sub

	s.log.Info("keyword submitted", zap.String("keyword", keyword))
	s.worker.TriggerProcessing(submissionJob{keyword: keyword})
	return sub, nil
}

// aggregate is the background job. the context is not tied to any request: a started submission always runs to
// the end.
func (s *Session) aggregate(job submissionJob) completion {
	res := s.aggregator.Aggregate(context.Background(), job.keyword, s.area.SubQueries,
		aggregator.EventSinkFunc(s.subQueryFailed))
	return completion{keyword: job.keyword, result: res}
}

// subQueryFailed runs on the background job while later sub-queries are still pending. it only touches the
// notice list, under mu.
func (s *Session) subQueryFailed(ev aggregator.SubQueryError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushNotice(subQueryNotice(ev))
}

func (s *Session) run() {
	defer close(s.loopDone)
	for c := range s.worker.Results() {
		s.apply(c)
	}
}

func (s *Session) apply(c completion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := s.pending[c.keyword]
	delete(s.pending, c.keyword)

	outcome := Outcome{
		Keyword:  c.keyword,
		Failures: c.result.Failures,
	}

	if c.result.Empty() {
		delete(s.keywords, c.keyword)
		s.pushNotice(newNotice(NoticeNoResults, c.keyword, noResultsMessage()))
		outcome.NoResults = true
		s.log.Info("no results", zap.String("keyword", c.keyword))
		sub.resolve(outcome)
		return
	}

	colorIndex := s.cfg.Palette.NextFree(s.usedColors)
	color := s.cfg.Palette[colorIndex]
	overlay, err := s.renderer.Render(context.Background(), heatmap.Layer{
		SessionID: s.id,
		Keyword:   c.keyword,
		Gradient:  heatmap.MakeGradient(color),
		Points:    c.result.Points,
	})
	if err != nil {
		delete(s.keywords, c.keyword)
		s.pushNotice(newNotice(NoticeRenderFailed, c.keyword, "Cannot render heatmap"))
		s.log.Error("render failed", zap.String("keyword", c.keyword), zap.Error(err))
		outcome.Err = err
		sub.resolve(outcome)
		return
	}

	s.usedColors[colorIndex] = true
	s.layers[c.keyword] = &layerEntry{
		keyword:     c.keyword,
		overlay:     overlay,
		colorIndex:  colorIndex,
		points:      len(c.result.Points),
		outsideArea: s.area.CountOutside(c.result.Points),
		bounds:      geo.NewBoundingBox(c.result.Points),
	}
	s.byOverlay[overlay.ID()] = c.keyword
	s.order = append(s.order, c.keyword)
	s.pushNotice(newNotice(NoticeRendered, c.keyword, "Heatmap rendered"))
	s.log.Info("overlay rendered", zap.String("keyword", c.keyword), zap.Int("points", len(c.result.Points)),
		zap.String("color", color.Hex()))

	outcome.Rendered = true
	outcome.Points = len(c.result.Points)
	outcome.Color = color
	outcome.OverlayID = overlay.ID()
	sub.resolve(outcome)
}

func (s *Session) pushNotice(n Notice) {
	s.notices = append(s.notices, n)
	if s.cfg.OnNotice != nil {
		s.cfg.OnNotice(n)
	}
}

// overlay must be called with mu held.
func (s *Session) overlay(overlayID string) (*layerEntry, error) {
	kw, ok := s.byOverlay[overlayID]
	if !ok {
		return nil, pkg.WrapErrorf(nil, pkg.ErrNotFound, "no overlay %q", overlayID)
	}
	return s.layers[kw], nil
}

// SetVisible shows or hides an overlay. overlays are addressed by id since keywords are free text.
func (s *Session) SetVisible(overlayID string, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.overlay(overlayID)
	if err != nil {
		return err
	}
	return l.overlay.SetVisible(visible)
}

func (s *Session) info(l *layerEntry) LayerInfo {
	return LayerInfo{
		Keyword:     l.keyword,
		OverlayID:   l.overlay.ID(),
		ColorIndex:  l.colorIndex,
		Color:       s.cfg.Palette[l.colorIndex].Hex(),
		Visible:     l.overlay.Visible(),
		Points:      l.points,
		OutsideArea: l.outsideArea,
		Bounds:      l.bounds,
	}
}

// Layers returns the rendered overlays in the order they were rendered.
func (s *Session) Layers() []LayerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]LayerInfo, 0, len(s.order))
	for _, kw := range s.order {
		infos = append(infos, s.info(s.layers[kw]))
	}
	return infos
}

func (s *Session) Layer(overlayID string) (LayerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.overlay(overlayID)
	if err != nil {
		return LayerInfo{}, err
	}
	return s.info(l), nil
}

// Pending returns the keywords whose background work has not been applied yet. a non empty list is what the
// progress indicator shows.
func (s *Session) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	kws := make([]string, 0, len(s.pending))
	for kw := range s.pending {
		kws = append(kws, kw)
	}
	return kws
}

// Keywords returns the keyword registry: pending and rendered keywords.
func (s *Session) Keywords() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	kws := make([]string, 0, len(s.keywords))
	for kw := range s.keywords {
		kws = append(kws, kw)
	}
	return kws
}

// Notices returns and clears the notices collected so far.
func (s *Session) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notices
	s.notices = nil
	return n
}

// Close stops accepting keywords, waits for the submissions in flight to be applied and removes every overlay.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.worker.Close()
	<-s.loopDone

	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for _, kw := range s.order {
		if err := s.layers[kw].overlay.Remove(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.log.Info("session closed", zap.Int("overlays", len(s.order)))
	return firstErr
}
