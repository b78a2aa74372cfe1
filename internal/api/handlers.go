package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/tilegen/internal/archive"
	"github.com/VoidMesh/tilegen/internal/errdefs"
	"github.com/VoidMesh/tilegen/internal/logging"
	"github.com/VoidMesh/tilegen/internal/mapgen"
	"github.com/VoidMesh/tilegen/internal/tilegen"
	"github.com/VoidMesh/tilegen/internal/tileset"
)

const tmxContentType = "application/x-tiled-tmx+xml"

// Runner executes generation runs.
type Runner interface {
	Run(ctx context.Context, req tilegen.Request) (*tilegen.Result, error)
}

// RunStore is the subset of the run archive used by the handlers.
type RunStore interface {
	SaveRun(ctx context.Context, run archive.Run) error
	ListRuns(ctx context.Context, limit int) ([]archive.Run, error)
	GetRun(ctx context.Context, id string) (archive.Run, error)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GenerateRequest is the body of POST /api/v1/maps.
type GenerateRequest struct {
	mapgen.Params
	Seed int64 `json:"seed"`
}

// RunSummary describes a finished run in JSON responses.
type RunSummary struct {
	RunID     string        `json:"run_id"`
	Seed      int64         `json:"seed"`
	NextSeed  int64         `json:"next_seed,omitempty"`
	Selection string        `json:"selection"`
	Params    mapgen.Params `json:"params"`
	Tiles     map[int]int   `json:"tile_histogram,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	TMX       string        `json:"tmx,omitempty"`
}

// Limits bounds the work a single request may ask for. Zero disables a limit.
type Limits struct {
	MaxCells  int
	MaxBiomes int
}

type Handler struct {
	runner   Runner
	tilesets *tileset.Config
	store    RunStore
	limits   Limits
	logger   logging.LoggerInterface
}

// NewHandler creates the HTTP handlers. store may be nil when archiving is disabled.
func NewHandler(runner Runner, tilesets *tileset.Config, store RunStore, limits Limits, logger logging.LoggerInterface) *Handler {
	return &Handler{
		runner:   runner,
		tilesets: tilesets,
		store:    store,
		limits:   limits,
		logger:   logger.With("component", "http-api"),
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "tilegen",
		"archive":   h.store != nil,
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

// GenerateMap runs the generator and returns the TMX document, or a JSON
// summary with ?format=json.
func (h *Handler) GenerateMap(w http.ResponseWriter, r *http.Request) {
	req := GenerateRequest{Params: mapgen.DefaultParams()}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if msg := h.limits.exceeded(req.Params); msg != "" {
		h.renderError(w, r, http.StatusRequestEntityTooLarge, msg, nil)
		return
	}

	res, err := h.runner.Run(r.Context(), tilegen.Request{Config: h.tilesets, Params: req.Params, Seed: req.Seed})
	if err != nil {
		h.renderError(w, r, statusFor(err), err.Error(), err)
		return
	}

	if h.store != nil {
		if err := h.store.SaveRun(r.Context(), archive.RunFromResult(res)); err != nil {
			h.renderError(w, r, http.StatusInternalServerError, "failed to archive run", err)
			return
		}
	}

	w.Header().Set("X-Run-ID", res.RunID.String())
	w.Header().Set("X-Seed", strconv.FormatInt(res.Seed, 10))

	if r.URL.Query().Get("format") == "json" {
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, RunSummary{
			RunID:     res.RunID.String(),
			Seed:      res.Seed,
			NextSeed:  res.NextSeed,
			Selection: res.Selection.String(),
			Params:    res.Spec.Params(),
			Tiles:     res.Map.Histogram(),
			CreatedAt: res.CreatedAt,
			TMX:       string(res.TMX),
		})
		return
	}

	h.writeTMX(w, http.StatusCreated, res.TMX)
}

// ListRuns returns archived runs, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.renderError(w, r, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = n
	}

	runs, err := h.store.ListRuns(r.Context(), limit)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to list runs", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun returns an archived TMX document, or its metadata with ?format=json.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.store.GetRun(r.Context(), id)
	if errors.Is(err, archive.ErrNotFound) {
		h.renderError(w, r, http.StatusNotFound, "run not found", nil)
		return
	}
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to load run", err)
		return
	}

	w.Header().Set("X-Run-ID", run.ID)
	if r.URL.Query().Get("format") == "json" {
		render.Status(r, http.StatusOK)
		render.JSON(w, r, run)
		return
	}
	h.writeTMX(w, http.StatusOK, run.TMX)
}

func (h *Handler) writeTMX(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", tmxContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to write response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errdefs.ErrNonTermination):
		return http.StatusUnprocessableEntity
	case errdefs.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// exceeded returns a message naming the first limit p breaks, or "".
func (l Limits) exceeded(p mapgen.Params) string {
	if n := l.MaxCells; n > 0 && (p.Width > n || p.Height > n || (p.Height > 0 && p.Width > n/p.Height)) {
		return "map exceeds " + strconv.Itoa(n) + " cells"
	}
	if n := l.MaxBiomes; n > 0 && p.BiomeCount > n {
		return "map exceeds " + strconv.Itoa(n) + " biomes"
	}
	return ""
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		h.logger.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
			errorResponse.Message = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
