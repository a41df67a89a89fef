// Package session owns one drawing surface and everything hanging off it:
// the stroke recorder, the undo history, the debounced classification and
// the chart view. All mutations are serialized by the session lock.
package session

import (
	"context"
	"image"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/inkrank/doodle/canvas"
	"github.com/inkrank/doodle/chart"
	"github.com/inkrank/doodle/classifier"
	"github.com/inkrank/doodle/config"
	"github.com/inkrank/doodle/geom"
	"github.com/inkrank/doodle/history"
	"github.com/inkrank/doodle/log"
	"github.com/inkrank/doodle/normalize"
	"github.com/inkrank/doodle/schedule"
	"github.com/inkrank/doodle/sketch"
)

const inferenceKey = "inference"

type Session struct {
	ID string

	cfg    config.Config
	labels []string
	model  *classifier.Model
	latest chart.Latest
	view   chart.View

	mu       sync.Mutex
	canvas   *canvas.Canvas
	history  *history.Manager
	recorder *sketch.Recorder
	seq      uint64

	sched    *schedule.Scheduler
	inflight *semaphore.Weighted
}

// New creates a session drawing on a blank canvas. view may be nil; the
// session always keeps the latest chart itself.
func New(cfg config.Config, model *classifier.Model, view chart.View) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		cfg:      cfg,
		labels:   model.Labels(),
		model:    model,
		sched:    schedule.New(cfg.Debounce),
		inflight: semaphore.NewWeighted(1),
	}
	s.view = &s.latest
	if view != nil {
		s.view = chart.Multi{&s.latest, view}
	}

	s.canvas = canvas.New(cfg.Canvas.Width, cfg.Canvas.Height, canvas.WithLineWidth(cfg.Canvas.LineWidth))
	s.history = history.New(s.canvas, cfg.HistoryMaxDepth)
	s.recorder = sketch.NewRecorder(s.canvas, s.history, s.trigger)

	log.Trace.Printf("session %s: %dx%d canvas", s.ID, cfg.Canvas.Width, cfg.Canvas.Height)
	return s
}

func (s *Session) PointerDown(p geom.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.Press(p)
}

func (s *Session) PointerMove(p geom.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder.Move(p)
}

func (s *Session) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder.Release()
}

func (s *Session) PointerLeave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder.Leave()
}

// Undo restores the previous raster and schedules a new classification. It
// reports false when there was nothing to undo.
func (s *Session) Undo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.history.Undo()
	if ok && err == nil {
		s.trigger()
	}
	return ok, err
}

func (s *Session) Redo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.history.Redo()
	if ok && err == nil {
		s.trigger()
	}
	return ok, err
}

// Clear forgets every point and snapshot, blanks the raster and hides the
// chart. Pending and in-flight classifications are dropped.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sched.Cancel(inferenceKey)
	s.seq++
	s.recorder.Reset()
	s.history.Clear()
	s.canvas.Clear()
	s.view.Hide()
	log.Trace.Printf("session %s: cleared", s.ID)
}

// Predict schedules a classification of the current sketch.
func (s *Session) Predict() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trigger()
}

// trigger must be called with s.mu held. Nothing is scheduled until the
// model is ready, but the bump still invalidates results in flight.
func (s *Session) trigger() {
	s.seq++
	if !s.model.Ready() {
		log.Trace.Printf("session %s: model %s, not scheduling", s.ID, s.model.State())
		return
	}
	s.sched.Schedule(inferenceKey, s.Infer)
}

// Infer runs one classification cycle right away. It is what the scheduler
// runs once the quiet period elapses.
func (s *Session) Infer(ctx context.Context) {
	if !s.model.Ready() {
		log.Trace.Printf("session %s: model %s, request dropped", s.ID, s.model.State())
		return
	}

	s.mu.Lock()
	seq := s.seq
	if s.canvas.IsBlank() {
		s.view.Hide()
		s.mu.Unlock()
		return
	}
	box, ok := s.boundingBox()
	if !ok {
		s.mu.Unlock()
		return
	}
	gray, err := normalize.Crop(s.canvas.Image(), box)
	s.mu.Unlock()
	if err != nil {
		log.Warning.Printf("session %s: %v", s.ID, err)
		return
	}

	input := normalize.Normalize(gray)

	if err := s.inflight.Acquire(ctx, 1); err != nil {
		return
	}
	probs, err := s.model.Classify(ctx, input)
	s.inflight.Release(1)
	if err != nil {
		log.Warning.Printf("session %s: classify: %v", s.ID, err)
		return
	}

	c := chart.Build(chart.Rank(probs, s.cfg.Chart.TopK), s.labels, s.cfg.Chart.Palette)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		log.Trace.Printf("session %s: stale result %d, current %d", s.ID, seq, s.seq)
		return
	}
	s.view.Show(c)
}

func (s *Session) boundingBox() (geom.Box, bool) {
	return geom.BoundingBox(s.recorder.Coordinates(), s.cfg.Canvas.Margin, s.cfg.Canvas.Width, s.cfg.Canvas.Height)
}

// BoundingBox is the padded box around every recorded point.
func (s *Session) BoundingBox() (geom.Box, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundingBox()
}

func (s *Session) Coordinates() []geom.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.Coordinates()
}

// Chart is the last chart shown.
func (s *Session) Chart() chart.Chart {
	return s.latest.Chart()
}

func (s *Session) Labels() []string {
	return s.labels
}

// Image returns a copy of the raster.
func (s *Session) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.canvas.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

// WritePNG encodes the raster as PNG.
func (s *Session) WritePNG(w io.Writer) error {
	return png.Encode(w, s.Image())
}

type Status struct {
	ID      string `json:"id"`
	Stroke  string `json:"stroke"`
	Points  int    `json:"points"`
	Undo    int    `json:"undo"`
	Redo    int    `json:"redo"`
	Blank   bool   `json:"blank"`
	Pending bool   `json:"pending"`
	Model   string `json:"model"`
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	undo, redo := s.history.Depth()
	return Status{
		ID:      s.ID,
		Stroke:  s.recorder.State().String(),
		Points:  len(s.recorder.Coordinates()),
		Undo:    undo,
		Redo:    redo,
		Blank:   s.canvas.IsBlank(),
		Pending: s.sched.Pending(inferenceKey),
		Model:   s.model.State().String(),
	}
}

// Close stops the scheduler and waits for a running classification.
func (s *Session) Close() {
	s.sched.Stop()
}
