// internal/api/handler/reward.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kumbara-api/internal/service"
	"kumbara-api/internal/util"
)

// RewardHandler handles HTTP requests for the reward catalog and redemptions.
type RewardHandler struct {
	service service.RewardService
	logger  *slog.Logger
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(svc service.RewardService, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{service: svc, logger: logger}
}

// ListRewards handles the catalog request.
// GET /rewards
func (h *RewardHandler) ListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.service.ListRewards(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": rewards})
}

// Redeem handles the redemption request.
// POST /rewards/{rewardID}/redeem
func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	rewardID, err := strconv.ParseInt(chi.URLParam(r, "rewardID"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	redemption, points, err := h.service.Redeem(r.Context(), userID, rewardID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":          "Reward redeemed",
		"reference":        redemption.Reference,
		"points_spent":     redemption.PointsSpent,
		"available_points": points.Available(),
	})
}

// ListRedemptions handles the redemption history request.
// GET /rewards/redemptions
func (h *RewardHandler) ListRedemptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	redemptions, err := h.service.ListRedemptions(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": redemptions})
}
