// internal/api/handler/engagement.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kumbara-api/internal/service"
	"kumbara-api/internal/util"
)

// EngagementHandler handles HTTP requests for points, tasks and reels.
type EngagementHandler struct {
	service service.EngagementService
	logger  *slog.Logger
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(svc service.EngagementService, logger *slog.Logger) *EngagementHandler {
	return &EngagementHandler{service: svc, logger: logger}
}

// GetPoints handles the points summary request.
// GET /points
func (h *EngagementHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	points, err := h.service.GetPoints(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"total_points":        points.TotalPoints,
		"spent_points":        points.SpentPoints,
		"available_points":    points.Available(),
		"current_streak_days": points.CurrentStreakDays,
		"last_activity_date":  points.LastActivityDate,
	})
}

// ListTasks handles the task list request.
// GET /tasks
func (h *EngagementHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": tasks})
}

// CompleteTask handles the task completion request.
// POST /tasks/{taskID}/complete
func (h *EngagementHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	completion, points, err := h.service.CompleteTask(r.Context(), userID, taskID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":             "Task completed",
		"points_earned":       completion.PointsEarned,
		"total_points":        points.TotalPoints,
		"current_streak_days": points.CurrentStreakDays,
	})
}

// ListReels handles the reel catalog request.
// GET /reels
func (h *EngagementHandler) ListReels(w http.ResponseWriter, r *http.Request) {
	reels, err := h.service.ListReels(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": reels})
}

// ListReelViews handles the watch history request.
// GET /reels/views
func (h *EngagementHandler) ListReelViews(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	views, err := h.service.ListReelViews(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": views})
}

// WatchReelRequest represents the request body for a reel watch.
type WatchReelRequest struct {
	WatchedSeconds int `json:"watched_seconds"`
}

// WatchReel handles the reel watch request.
// POST /reels/{reelID}/watch
func (h *EngagementHandler) WatchReel(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	reelID, err := strconv.ParseInt(chi.URLParam(r, "reelID"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req WatchReelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	view, points, err := h.service.WatchReel(r.Context(), userID, reelID, req.WatchedSeconds)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":             "View recorded",
		"points_earned":       view.PointsEarned,
		"total_points":        points.TotalPoints,
		"current_streak_days": points.CurrentStreakDays,
	})
}
