// Package handlers contains the HTTP request handlers.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/internal/pipeline"
	"github.com/databanq/dqscore/internal/report"
	"github.com/databanq/dqscore/pkg/logger"
	"github.com/databanq/dqscore/pkg/redis"
)

// QualityHandler serves batch scoring and report retrieval. The store is
// optional: without a database the check endpoint still scores, it just
// cannot persist or look reports back up.
type QualityHandler struct {
	runner *pipeline.Runner
	store  contracts.ReportStore
	cache  *redis.Cache
	logger *logger.Logger
}

// NewQualityHandler creates a quality handler
func NewQualityHandler(runner *pipeline.Runner, store contracts.ReportStore, cache *redis.Cache, log *logger.Logger) *QualityHandler {
	return &QualityHandler{
		runner: runner,
		store:  store,
		cache:  cache,
		logger: log,
	}
}

type checkRequest struct {
	Source string             `json:"source"`
	Rows   []contracts.RawRow `json:"rows"`
}

// bodySource adapts an already-decoded request body to a row source
type bodySource struct {
	rows []contracts.RawRow
}

func (s *bodySource) Rows(ctx context.Context) ([]contracts.RawRow, error) {
	return s.rows, nil
}

// Check scores a batch submitted in the request body
// POST /api/quality/check
func (h *QualityHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Source == "" {
		req.Source = "api"
	}

	result, err := h.runner.Run(r.Context(), &bodySource{rows: req.Rows}, req.Source)
	if err != nil {
		h.logger.WithError(err).Error("Batch scoring failed")
		respondError(w, http.StatusInternalServerError, "batch scoring failed")
		return
	}

	if h.store != nil {
		if err := h.store.Save(r.Context(), result.Report); err != nil {
			// Persistence failure must not lose the report for the caller
			h.logger.WithError(err).Error("Failed to persist batch report")
		}
	}
	h.cacheReport(r.Context(), result.Report)

	respondJSON(w, http.StatusOK, result)
}

// Latest returns the most recently generated report
// GET /api/quality/reports/latest
func (h *QualityHandler) Latest(w http.ResponseWriter, r *http.Request) {
	var cached contracts.BatchReport
	if hit, _ := h.cache.Get(r.Context(), redis.LatestReportKey(), &cached); hit {
		respondJSON(w, http.StatusOK, &cached)
		return
	}

	if h.store == nil {
		respondError(w, http.StatusNotFound, "no reports available")
		return
	}

	rep, err := h.store.Latest(r.Context())
	if errors.Is(err, report.ErrNotFound) {
		respondError(w, http.StatusNotFound, "no reports available")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest report")
		respondError(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	h.cacheReport(r.Context(), rep)
	respondJSON(w, http.StatusOK, rep)
}

// GetByID returns one report by batch id
// GET /api/quality/reports/{id}
func (h *QualityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["id"]

	var cached contracts.BatchReport
	if hit, _ := h.cache.Get(r.Context(), redis.ReportKey(batchID), &cached); hit {
		respondJSON(w, http.StatusOK, &cached)
		return
	}

	if h.store == nil {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}

	rep, err := h.store.GetByID(r.Context(), batchID)
	if errors.Is(err, report.ErrNotFound) {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load report")
		respondError(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	_ = h.cache.Set(r.Context(), redis.ReportKey(batchID), rep, redis.TTLLong)
	respondJSON(w, http.StatusOK, rep)
}

func (h *QualityHandler) cacheReport(ctx context.Context, rep *contracts.BatchReport) {
	if err := h.cache.Set(ctx, redis.LatestReportKey(), rep, redis.TTLMedium); err != nil {
		h.logger.WithError(err).Warn("Failed to cache latest report")
	}
	if err := h.cache.Set(ctx, redis.ReportKey(rep.BatchID), rep, redis.TTLLong); err != nil {
		h.logger.WithError(err).Warn("Failed to cache report")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
