package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fondsvergleich/vergleichsrechner/internal/calculation"
	"github.com/fondsvergleich/vergleichsrechner/internal/config"
	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/fondsvergleich/vergleichsrechner/internal/output"
	"github.com/fondsvergleich/vergleichsrechner/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; a bundle is a few hundred bytes.
const maxBodyBytes = 1 << 20

// Handler serves the comparison and bundle endpoints.
type Handler struct {
	db     *sql.DB
	store  *store.BundleStore
	engine *calculation.CalculationEngine
	parser *config.InputParser
	logger *zap.Logger
}

// NewHandler creates a Handler. db and bundles may share the same database.
func NewHandler(db *sql.DB, bundles *store.BundleStore, engine *calculation.CalculationEngine, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Handler{
		db:     db,
		store:  bundles,
		engine: engine,
		parser: config.NewInputParser(),
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health handles GET /api/system/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := store.HealthCheck(r.Context(), h.db); err != nil {
		RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	RespondJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// Compare handles POST /api/compare. The body is a parameter bundle.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		RespondError(w, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	bundle, err := h.parser.Parse(body)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "invalid parameter bundle", err.Error())
		return
	}

	h.runAndRespond(w, r, *bundle)
}

// BreakEven handles POST /api/breakeven. The body is a parameter bundle; the
// response is the policy cost rate at which both products end level.
func (h *Handler) BreakEven(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		RespondError(w, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}
	bundle, err := h.parser.Parse(body)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "invalid parameter bundle", err.Error())
		return
	}
	input, err := bundle.ToRunInput()
	if err != nil {
		RespondError(w, http.StatusBadRequest, "invalid parameter bundle", err.Error())
		return
	}

	res, err := h.engine.CalculateBreakEvenPolicyCost(r.Context(), input)
	if err != nil {
		if errors.Is(err, calculation.ErrNoBreakEven) {
			RespondError(w, http.StatusUnprocessableEntity, "no break-even cost rate", err.Error())
			return
		}
		h.logger.Error("break-even search failed", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "break-even search failed", err.Error())
		return
	}
	RespondJSON(w, http.StatusOK, res)
}

// CreateBundleRequest is the body of POST /api/bundles.
type CreateBundleRequest struct {
	Name   string          `json:"name"`
	Params json.RawMessage `json:"params"`
}

// ListBundles handles GET /api/bundles
func (h *Handler) ListBundles(w http.ResponseWriter, r *http.Request) {
	bundles, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list bundles", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "failed to retrieve bundles", err.Error())
		return
	}

	RespondJSON(w, http.StatusOK, bundles)
}

// CreateBundle handles POST /api/bundles
func (h *Handler) CreateBundle(w http.ResponseWriter, r *http.Request) {
	var req CreateBundleRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if len(req.Params) == 0 {
		RespondError(w, http.StatusBadRequest, "params are required", nil)
		return
	}

	params, err := h.parser.Parse(req.Params)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "invalid parameter bundle", err.Error())
		return
	}

	bundle, err := h.store.Create(r.Context(), req.Name, *params)
	if err != nil {
		if errors.Is(err, store.ErrInvalidName) {
			RespondError(w, http.StatusBadRequest, "invalid bundle name", err.Error())
			return
		}
		h.logger.Error("failed to create bundle", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "failed to create bundle", err.Error())
		return
	}

	RespondJSON(w, http.StatusCreated, bundle)
}

// GetBundle handles GET /api/bundles/{id}
func (h *Handler) GetBundle(w http.ResponseWriter, r *http.Request) {
	bundle, ok := h.loadBundle(w, r)
	if !ok {
		return
	}
	RespondJSON(w, http.StatusOK, bundle)
}

// DeleteBundle handles DELETE /api/bundles/{id}
func (h *Handler) DeleteBundle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrBundleNotFound) {
			RespondError(w, http.StatusNotFound, "bundle not found", nil)
			return
		}
		h.logger.Error("failed to delete bundle", zap.String("id", id), zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "failed to delete bundle", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CompareBundle handles POST /api/bundles/{id}/compare
func (h *Handler) CompareBundle(w http.ResponseWriter, r *http.Request) {
	bundle, ok := h.loadBundle(w, r)
	if !ok {
		return
	}
	h.runAndRespond(w, r, bundle.Params)
}

func (h *Handler) loadBundle(w http.ResponseWriter, r *http.Request) (store.Bundle, bool) {
	id := chi.URLParam(r, "id")
	bundle, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrBundleNotFound) {
			RespondError(w, http.StatusNotFound, "bundle not found", nil)
			return store.Bundle{}, false
		}
		h.logger.Error("failed to load bundle", zap.String("id", id), zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "failed to retrieve bundle", err.Error())
		return store.Bundle{}, false
	}
	return bundle, true
}

// runAndRespond projects the bundle and writes the result. The optional
// ?format= query selects a textual formatter instead of the JSON result.
func (h *Handler) runAndRespond(w http.ResponseWriter, r *http.Request, params config.ParameterBundle) {
	input, err := params.ToRunInput()
	if err != nil {
		RespondError(w, http.StatusBadRequest, "invalid parameter bundle", err.Error())
		return
	}

	result, err := h.run(r.Context(), input)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.Error("comparison failed", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "comparison failed", err.Error())
		return
	}

	format := strings.TrimSpace(r.URL.Query().Get("format"))
	if format == "" || output.NormalizeFormatName(format) == "json" {
		RespondJSON(w, http.StatusOK, result)
		return
	}

	f, err := output.Lookup(format)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "unsupported format", err.Error())
		return
	}
	data, err := f.Format(result)
	if err != nil {
		h.logger.Error("failed to format result", zap.String("format", f.Name()), zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "failed to format result", err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType(f.Name()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) run(ctx context.Context, input domain.RunInput) (*domain.ComparisonResult, error) {
	h.logger.Debug("running comparison", zap.Int("horizon", input.Horizon), zap.Int("events", len(input.Events)))
	return h.engine.Run(ctx, input)
}

func contentType(formatter string) string {
	switch output.Extension(formatter) {
	case "csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "json":
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}
