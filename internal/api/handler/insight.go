// internal/api/handler/insight.go
package handler

import (
	"log/slog"
	"net/http"

	"kumbara-api/internal/service"
	"kumbara-api/internal/util"
)

// InsightHandler handles HTTP requests for the insight feed and dashboard.
type InsightHandler struct {
	insights  service.InsightService
	dashboard service.DashboardService
	logger    *slog.Logger
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insights service.InsightService, dashboard service.DashboardService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{insights: insights, dashboard: dashboard, logger: logger}
}

// GetInsights handles the insight feed request.
// GET /insights
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	insights, err := h.insights.GetInsights(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": insights})
}

// RefreshInsights handles the forced regeneration request.
// POST /insights/refresh
func (h *InsightHandler) RefreshInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	insights, err := h.insights.RefreshInsights(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": insights})
}

// GetDashboard handles the aggregated home view request.
// GET /dashboard
func (h *InsightHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	dashboard, err := h.dashboard.GetDashboard(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, dashboard)
}
