// internal/api/handler/social.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/service"
	"kumbara-api/internal/util"
)

// SocialHandler handles HTTP requests for groups, challenges and debts.
type SocialHandler struct {
	service service.SocialService
	logger  *slog.Logger
}

// NewSocialHandler creates a new SocialHandler.
func NewSocialHandler(svc service.SocialService, logger *slog.Logger) *SocialHandler {
	return &SocialHandler{service: svc, logger: logger}
}

// CreateGroupRequest represents the request body for group creation.
type CreateGroupRequest struct {
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	MemberIDs    []int64          `json:"member_ids"`
}

// CreateGroup handles the group creation request.
// POST /groups
func (h *SocialHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	group, err := h.service.CreateGroup(r.Context(), userID, req.Name, req.Type, req.TargetAmount, req.MemberIDs)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, group)
}

// ListGroups handles the group list request.
// GET /groups
func (h *SocialHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	groups, err := h.service.ListGroups(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": groups})
}

// AddMemberRequest represents the request body for adding a group member.
type AddMemberRequest struct {
	Email string `json:"email"`
}

// AddMember handles the member addition request.
// POST /groups/{groupID}/members
func (h *SocialHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.AddMember(r.Context(), userID, groupID, req.Email); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]string{"message": "Member added"})
}

// ListChallenges handles the challenge list request.
// GET /challenges
func (h *SocialHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	challenges, err := h.service.ListChallenges(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": challenges})
}

// CreateChallengeRequest represents the request body for a challenge.
type CreateChallengeRequest struct {
	ToUserID    int64           `json:"to_user_id"`
	Type        string          `json:"type"`
	TargetValue decimal.Decimal `json:"target_value"`
	EndDate     time.Time       `json:"end_date"`
}

// CreateChallenge handles the challenge creation request.
// POST /challenges
func (h *SocialHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	challenge, err := h.service.CreateChallenge(r.Context(), userID, req.ToUserID, req.Type, req.TargetValue, req.EndDate)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, challenge)
}

// AddExpenseRequest represents the request body for a group expense.
type AddExpenseRequest struct {
	Amount      decimal.Decimal          `json:"amount"`
	Description string                   `json:"description"`
	SplitType   string                   `json:"split_type"`
	Splits      []domain.CustomSplitInput `json:"splits"`
}

// AddExpense handles the group expense request.
// POST /groups/{groupID}/expenses
func (h *SocialHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	expense, splits, err := h.service.AddExpense(r.Context(), userID, groupID, req.Amount, req.Description, req.SplitType, req.Splits)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"expense": expense,
		"splits":  splits,
	})
}

// ListDebts handles the open debt list request.
// GET /groups/{groupID}/debts
func (h *SocialHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	debts, err := h.service.ListDebts(r.Context(), userID, groupID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": debts})
}

// SettleDebt handles the debt settlement request.
// POST /debts/{debtID}/settle
func (h *SocialHandler) SettleDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	debtID, err := strconv.ParseInt(chi.URLParam(r, "debtID"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.SettleDebt(r.Context(), userID, debtID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Debt settled"})
}

// GetSettlementPlan handles the settlement netting request.
// GET /groups/{groupID}/settlement
func (h *SocialHandler) GetSettlementPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	transfers, contributions, err := h.service.GetSettlementPlan(r.Context(), userID, groupID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"transfers":     transfers,
		"contributions": contributions,
	})
}
