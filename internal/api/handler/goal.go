// internal/api/handler/goal.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/service"
	"kumbara-api/internal/util"
)

// GoalHandler handles HTTP requests for goals, split rules and round-up rules.
type GoalHandler struct {
	service service.GoalService
	logger  *slog.Logger
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(svc service.GoalService, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{service: svc, logger: logger}
}

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	Icon         *string          `json:"icon"`
	Color        string           `json:"color"`
}

// CreateGoal handles the goal creation request.
// POST /goals
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	goal, err := h.service.CreateGoal(r.Context(), userID, req.Name, req.Type, req.TargetAmount, req.Icon, req.Color)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, goal)
}

// ListGoals handles the goal list request.
// GET /goals
func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	goals, err := h.service.ListGoals(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": goals})
}

// UpdateGoalRequest represents the request body for a goal update.
// Omitted fields are left unchanged.
type UpdateGoalRequest struct {
	Name          *string          `json:"name"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	IsActive      *bool            `json:"is_active"`
}

// UpdateGoal handles the goal update request.
// PATCH /goals/{goalID}
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	goalID, err := strconv.ParseInt(chi.URLParam(r, "goalID"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	goal, err := h.service.UpdateGoal(r.Context(), userID, goalID, repository.GoalPatch{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, goal)
}

// DeleteGoal handles the goal deactivation request.
// DELETE /goals/{goalID}
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	goalID, err := strconv.ParseInt(chi.URLParam(r, "goalID"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteGoal(r.Context(), userID, goalID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Goal deactivated"})
}

// SetSplitRuleRequest represents the request body for binding a split rule.
type SetSplitRuleRequest struct {
	GoalID     int64           `json:"goal_id"`
	Percentage decimal.Decimal `json:"percentage"`
	Priority   int             `json:"priority"`
}

// SetSplitRule handles the split rule upsert request.
// POST /goals/split-rules
func (h *GoalHandler) SetSplitRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req SetSplitRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	rule, err := h.service.SetSplitRule(r.Context(), userID, req.GoalID, req.Percentage, req.Priority)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, rule)
}

// ListSplitRules handles the split rule list request.
// GET /goals/split-rules
func (h *GoalHandler) ListSplitRules(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	rules, err := h.service.ListSplitRules(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": rules})
}

// CreateRoundUpRuleRequest represents the request body for round-up configuration.
type CreateRoundUpRuleRequest struct {
	RoundTo         string           `json:"round_to"`
	CustomMultiple  *decimal.Decimal `json:"custom_multiple"`
	DestinationType string           `json:"destination_type"`
	GoalID          *int64           `json:"goal_id"`
	NGOID           *int64           `json:"ngo_id"`
}

// CreateRoundUpRule handles the round-up rule creation request.
// POST /goals/round-up-rules
func (h *GoalHandler) CreateRoundUpRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req CreateRoundUpRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	rule, err := h.service.CreateRoundUpRule(r.Context(), userID, &domain.RoundUpRule{
		RoundTo:         req.RoundTo,
		CustomMultiple:  req.CustomMultiple,
		DestinationType: req.DestinationType,
		GoalID:          req.GoalID,
		NGOID:           req.NGOID,
	})
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, rule)
}

// ListRoundUpRules handles the round-up rule list request.
// GET /goals/round-up-rules
func (h *GoalHandler) ListRoundUpRules(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	rules, err := h.service.ListRoundUpRules(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": rules})
}

// ListNGOs handles the beneficiary list request.
// GET /ngos
func (h *GoalHandler) ListNGOs(w http.ResponseWriter, r *http.Request) {
	ngos, err := h.service.ListNGOs(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": ngos})
}
