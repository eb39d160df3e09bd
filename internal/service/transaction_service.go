// internal/service/transaction_service.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
	"kumbara-api/pkg/db"
)

// maxHistoryLimit caps a single history page.
const maxHistoryLimit = 100

// TransactionService defines the interface for the ledger: recording
// income with automatic splitting, expenses with round-up, and history.
type TransactionService interface {
	AddIncome(ctx context.Context, userID int64, amount decimal.Decimal, category, description *string) (*domain.Account, *domain.IncomePlan, error)
	AddExpense(ctx context.Context, userID int64, amount decimal.Decimal, category, description *string) (*domain.Account, *domain.ExpensePlan, error)
	GetHistory(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error)
}

// transactionService implements the TransactionService interface.
type transactionService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	accountRepo     repository.AccountRepository
	goalRepo        repository.GoalRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	goalRepo repository.GoalRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) TransactionService {
	return &transactionService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		accountRepo:     accountRepo,
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// AddIncome credits an income event, distributing it across the active
// split rules. The balance read, the planning and every resulting write
// happen under one row lock so concurrent events serialize cleanly.
func (s *transactionService) AddIncome(ctx context.Context, userID int64, amount decimal.Decimal, category, description *string) (*domain.Account, *domain.IncomePlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidAmount
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("add income: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("add income: transaction controller does not implement DBExecutor")
	}

	account, err := s.accountRepo.GetAccountForUpdate(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("add income: failed to lock account %d: %w", userID, err)
	}

	rules, err := s.goalRepo.ListActiveSplitRules(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("add income: failed to list split rules: %w", err)
	}

	plan, err := domain.PlanIncome(account.MainBalance, amount, rules, domain.EntryMeta{
		UserID:      userID,
		Category:    category,
		Description: description,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := s.applyPlan(ctx, txExecutor, userID, plan.NewBalance, plan.GoalDeltas, plan.Entries); err != nil {
		return nil, nil, fmt.Errorf("add income: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("add income: failed to commit transaction: %w", err)
	}

	account.MainBalance = plan.NewBalance
	return account, plan, nil
}

// AddExpense debits an expense, rounding it up per the account's active
// round-up rule when the balance can cover both.
func (s *transactionService) AddExpense(ctx context.Context, userID int64, amount decimal.Decimal, category, description *string) (*domain.Account, *domain.ExpensePlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidAmount
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("add expense: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("add expense: transaction controller does not implement DBExecutor")
	}

	account, err := s.accountRepo.GetAccountForUpdate(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("add expense: failed to lock account %d: %w", userID, err)
	}

	rule, err := s.goalRepo.GetActiveRoundUpRule(ctx, txExecutor, userID)
	if err != nil {
		if !util.IsError(err, util.ErrNotFound) {
			return nil, nil, fmt.Errorf("add expense: failed to get round-up rule: %w", err)
		}
		rule = nil
	}

	plan, err := domain.PlanExpense(account.MainBalance, amount, rule, domain.EntryMeta{
		UserID:      userID,
		Category:    category,
		Description: description,
	})
	if err != nil {
		return nil, nil, err
	}

	var deltas []domain.GoalDelta
	if plan.GoalDelta != nil {
		deltas = append(deltas, *plan.GoalDelta)
	}
	if err := s.applyPlan(ctx, txExecutor, userID, plan.NewBalance, deltas, plan.Entries); err != nil {
		return nil, nil, fmt.Errorf("add expense: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("add expense: failed to commit transaction: %w", err)
	}

	account.MainBalance = plan.NewBalance
	return account, plan, nil
}

// applyPlan persists a planned balance, goal credits and ledger entries.
func (s *transactionService) applyPlan(ctx context.Context, q repository.DBExecutor, userID int64, newBalance decimal.Decimal, deltas []domain.GoalDelta, entries []*domain.Transaction) error {
	if err := s.accountRepo.SetMainBalance(ctx, q, userID, newBalance); err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}
	for _, d := range deltas {
		if err := s.goalRepo.AddToGoalAmount(ctx, q, d.GoalID, d.Amount); err != nil {
			return fmt.Errorf("failed to credit goal %d: %w", d.GoalID, err)
		}
	}
	for _, entry := range entries {
		if err := s.transactionRepo.CreateTransaction(ctx, q, entry); err != nil {
			return fmt.Errorf("failed to create ledger entry: %w", err)
		}
	}
	return nil
}

// GetHistory retrieves the account's most recent ledger entries.
func (s *transactionService) GetHistory(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	transactions, err := s.transactionRepo.ListByUserID(ctx, s.dbExecutor, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get history: failed to list transactions: %w", err)
	}
	return transactions, nil
}
