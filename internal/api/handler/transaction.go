// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"kumbara-api/internal/service"
	"kumbara-api/internal/util"
)

// TransactionHandler handles HTTP requests for ledger operations.
type TransactionHandler struct {
	service service.TransactionService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{service: svc, logger: logger}
}

// LedgerEventRequest represents the request body for income and expense events.
type LedgerEventRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
}

// AddIncome handles the income recording request.
// POST /transactions/income
func (h *TransactionHandler) AddIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req LedgerEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(h.logger, w, util.ErrInvalidAmount)
		return
	}

	account, plan, err := h.service.AddIncome(r.Context(), userID, req.Amount, req.Category, req.Description)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message":     "Income recorded",
		"new_balance": account.MainBalance,
		"remaining":   plan.Remaining,
		"goal_splits": plan.GoalDeltas,
		"entries":     plan.Entries,
	})
}

// AddExpense handles the expense recording request.
// POST /transactions/expense
func (h *TransactionHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req LedgerEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(h.logger, w, util.ErrInvalidAmount)
		return
	}

	account, plan, err := h.service.AddExpense(r.Context(), userID, req.Amount, req.Category, req.Description)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message":     "Expense recorded",
		"new_balance": account.MainBalance,
		"round_up":    plan.RoundUp,
		"entries":     plan.Entries,
	})
}

// GetHistory handles the ledger history request.
// GET /transactions
func (h *TransactionHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	transactions, err := h.service.GetHistory(r.Context(), userID, limit)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"data":  transactions,
		"limit": limit,
	})
}
