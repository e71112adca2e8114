package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxGridSide bounds the grid a single request may ask for.
const maxGridSide = 500

type RouteRequest struct {
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Start      Position   `json:"start"`
	End        Position   `json:"end"`
	Barriers   []Position `json:"barriers,omitempty"`
	BorderWall bool       `json:"borderWall,omitempty"`
	Frames     bool       `json:"frames,omitempty"` // Return every rendered frame
}

type RouteResponse struct {
	RunID         string     `json:"runId"`
	Success       bool       `json:"success"`
	Message       string     `json:"message,omitempty"`
	Moves         int        `json:"moves"`
	Path          []Position `json:"path,omitempty"`
	Expanded      int        `json:"expanded"`
	Board         []string   `json:"board,omitempty"`
	Frames        []Frame    `json:"frames,omitempty"`
	FramesDropped int        `json:"framesDropped,omitempty"`
}

// Server exposes the search over HTTP.
type Server struct {
	cfg    Config
	logger *zap.Logger
}

func NewServer(cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cfg: cfg, logger: logger}
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /route - Run a knight search on the posted grid
func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("runId", runID))

	if r.Method != http.MethodPost {
		logger.Warn("method not allowed", zap.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Rows == 0 {
		req.Rows = s.cfg.Rows
	}
	if req.Cols == 0 {
		req.Cols = s.cfg.Cols
	}
	logger.Info("route request received",
		zap.Int("rows", req.Rows),
		zap.Int("cols", req.Cols),
		zap.Stringer("start", req.Start),
		zap.Stringer("end", req.End),
		zap.Int("barriers", len(req.Barriers)))

	grid, err := buildRequestGrid(req)
	if err != nil {
		logger.Warn("rejected grid", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var recorder *FrameRecorder
	var renderer Renderer
	if req.Frames {
		cells := s.cfg.MaxCells
		if cells <= 0 {
			cells = defaultMaxFrameCells
		}
		recorder = NewFrameRecorder(s.cfg.MaxFrames, cells)
		renderer = recorder
	}

	result, err := RunGrid(r.Context(), grid, renderer, WithLogger(logger))
	if err != nil {
		if errors.Is(err, ErrInvalidConfiguration) {
			logger.Warn("invalid configuration", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Warn("search aborted", zap.Error(err))
		http.Error(w, "Search aborted", http.StatusServiceUnavailable)
		return
	}

	response := RouteResponse{
		RunID:    runID,
		Success:  result.Found,
		Moves:    result.Moves,
		Path:     result.Path,
		Expanded: result.Expanded,
		Board:    FormatGrid(grid),
	}
	if result.Found {
		response.Message = foundMessage(result.Moves)
	} else {
		response.Message = notFoundMessage
	}
	if recorder != nil {
		response.Frames = recorder.Frames()
		response.FramesDropped = recorder.Dropped()
	}

	writeJSON(w, http.StatusOK, response, logger)
}

// buildRequestGrid turns a route request into a grid. Start and end go down
// first so the border wall and barriers cannot cover them.
func buildRequestGrid(req RouteRequest) (*Grid, error) {
	if req.Rows > maxGridSide || req.Cols > maxGridSide {
		return nil, fmt.Errorf("%w: grid larger than %dx%d is not supported", ErrInvalidBoard, maxGridSide, maxGridSide)
	}
	grid, err := NewGrid(req.Rows, req.Cols)
	if err != nil {
		return nil, err
	}
	if err := grid.SetStart(req.Start); err != nil {
		return nil, err
	}
	if err := grid.SetEnd(req.End); err != nil {
		return nil, err
	}
	if req.BorderWall {
		grid.ToggleBorderWall()
	}
	for _, p := range req.Barriers {
		if err := grid.SetBarrier(p); err != nil {
			return nil, err
		}
	}
	return grid, nil
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"rows":   s.cfg.Rows,
		"cols":   s.cfg.Cols,
	}, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("failed to write response", zap.Error(err))
	}
}
