package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inkrank/doodle/classifier"
	"github.com/inkrank/doodle/config"
	"github.com/inkrank/doodle/geom"
	"github.com/inkrank/doodle/log"
	"github.com/inkrank/doodle/session"
	"github.com/inkrank/doodle/version"
)

type ApiServer struct {
	cfg     config.Config
	model   *classifier.Model
	session *session.Session
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewApiServer(cfg config.Config, model *classifier.Model) *ApiServer {
	return &ApiServer{
		cfg:     cfg,
		model:   model,
		session: session.New(cfg, model, nil),
	}
}

func (s *ApiServer) Close() {
	s.session.Close()
}

func (s *ApiServer) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func (s *ApiServer) writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{Data: data})
}

func (s *ApiServer) writeMessage(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{Message: msg})
}

func (s *ApiServer) decodePoint(w http.ResponseWriter, r *http.Request) (geom.Point, bool) {
	var req struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return geom.Point{}, false
	}
	if req.X == nil || req.Y == nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("x and y are required"))
		return geom.Point{}, false
	}
	return geom.Point{X: *req.X, Y: *req.Y}, true
}

// POST /api/pointer/{event}
func (s *ApiServer) handlePointer(w http.ResponseWriter, r *http.Request) {
	switch event := chi.URLParam(r, "event"); event {
	case "down":
		p, ok := s.decodePoint(w, r)
		if !ok {
			return
		}
		if err := s.session.PointerDown(p); err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
	case "move":
		p, ok := s.decodePoint(w, r)
		if !ok {
			return
		}
		s.session.PointerMove(p)
	case "up":
		s.session.PointerUp()
	case "leave":
		s.session.PointerLeave()
	default:
		s.writeError(w, http.StatusNotFound, fmt.Errorf("unknown pointer event %q", event))
		return
	}
	s.writeSuccess(w, s.session.Status())
}

// POST /api/undo
func (s *ApiServer) handleUndo(w http.ResponseWriter, r *http.Request) {
	ok, err := s.session.Undo()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeSuccess(w, map[string]bool{"applied": ok})
}

// POST /api/redo
func (s *ApiServer) handleRedo(w http.ResponseWriter, r *http.Request) {
	ok, err := s.session.Redo()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeSuccess(w, map[string]bool{"applied": ok})
}

// POST /api/clear
func (s *ApiServer) handleClear(w http.ResponseWriter, r *http.Request) {
	s.session.Clear()
	s.writeMessage(w, "cleared")
}

// POST /api/predict
func (s *ApiServer) handlePredict(w http.ResponseWriter, r *http.Request) {
	s.session.Predict()
	s.writeMessage(w, "scheduled")
}

// GET /api/chart
func (s *ApiServer) handleChart(w http.ResponseWriter, r *http.Request) {
	s.writeSuccess(w, s.session.Chart())
}

// GET /api/bbox
func (s *ApiServer) handleBbox(w http.ResponseWriter, r *http.Request) {
	box, ok := s.session.BoundingBox()
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("no points recorded"))
		return
	}
	s.writeSuccess(w, box)
}

// GET /api/status
func (s *ApiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeSuccess(w, s.session.Status())
}

// GET /api/canvas.png
func (s *ApiServer) handleCanvas(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	if err := s.session.WritePNG(w); err != nil {
		log.Error.Printf("canvas: %v", err)
	}
}

// GET /api/labels
func (s *ApiServer) handleLabels(w http.ResponseWriter, r *http.Request) {
	s.writeSuccess(w, s.session.Labels())
}

// GET /api/version
func (s *ApiServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeSuccess(w, map[string]string{"version": version.Version})
}

func (s *ApiServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/pointer/{event}", s.handlePointer)
		r.Post("/undo", s.handleUndo)
		r.Post("/redo", s.handleRedo)
		r.Post("/clear", s.handleClear)
		r.Post("/predict", s.handlePredict)
		r.Get("/chart", s.handleChart)
		r.Get("/bbox", s.handleBbox)
		r.Get("/status", s.handleStatus)
		r.Get("/canvas.png", s.handleCanvas)
		r.Get("/labels", s.handleLabels)
		r.Get("/version", s.handleVersion)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if !s.model.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, "classifier %s", s.model.State())
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

func runServerMode(port string, cfg config.Config, model *classifier.Model) {
	server := NewApiServer(cfg, model)
	defer server.Close()

	log.Info.Printf("Starting HTTP server on port %s, session %s", port, server.session.ID)
	if err := http.ListenAndServe(":"+port, server.routes()); err != nil {
		log.Error.Fatalf("Server failed: %v", err)
	}
}
