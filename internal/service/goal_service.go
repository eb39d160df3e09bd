// internal/service/goal_service.go
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

// GoalService defines the interface for savings goals and the rules
// bound to them.
type GoalService interface {
	CreateGoal(ctx context.Context, userID int64, name, goalType string, target *decimal.Decimal, icon *string, color string) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID int64) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID int64, patch repository.GoalPatch) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID int64) error

	SetSplitRule(ctx context.Context, userID, goalID int64, percentage decimal.Decimal, priority int) (*domain.AutomaticSplitRule, error)
	ListSplitRules(ctx context.Context, userID int64) ([]domain.AutomaticSplitRule, error)

	CreateRoundUpRule(ctx context.Context, userID int64, rule *domain.RoundUpRule) (*domain.RoundUpRule, error)
	ListRoundUpRules(ctx context.Context, userID int64) ([]domain.RoundUpRule, error)

	ListNGOs(ctx context.Context) ([]domain.NGO, error)
}

// goalService implements the GoalService interface.
type goalService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	goalRepo   repository.GoalRepository
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewGoalService creates a new instance of GoalService.
func NewGoalService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	goalRepo repository.GoalRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) GoalService {
	return &goalService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		goalRepo:   goalRepo,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// CreateGoal adds a new active goal with a zero accumulated amount.
func (s *goalService) CreateGoal(ctx context.Context, userID int64, name, goalType string, target *decimal.Decimal, icon *string, color string) (*domain.Goal, error) {
	if name == "" || goalType == "" {
		return nil, util.ErrInvalidInput
	}
	if target != nil && target.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}
	if color == "" {
		color = "#6366f1"
	}

	goal := domain.NewGoal(userID, name, goalType, target, icon, color)
	if err := s.goalRepo.CreateGoal(ctx, s.dbExecutor, goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

// ListGoals retrieves the account's active goals with their bound split percentages.
func (s *goalService) ListGoals(ctx context.Context, userID int64) ([]domain.Goal, error) {
	goals, err := s.goalRepo.ListActiveGoals(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// UpdateGoal applies the patch to a goal the account owns.
func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID int64, patch repository.GoalPatch) (*domain.Goal, error) {
	if patch.TargetAmount != nil && patch.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}
	if patch.CurrentAmount != nil && patch.CurrentAmount.IsNegative() {
		return nil, util.ErrInvalidAmount
	}
	goal, err := s.goalRepo.UpdateGoal(ctx, s.dbExecutor, userID, goalID, patch)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("update goal %d: %w", goalID, err)
	}
	return goal, nil
}

// DeleteGoal soft-deletes a goal. Its ledger entries remain untouched.
func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	if err := s.goalRepo.DeactivateGoal(ctx, s.dbExecutor, userID, goalID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrNotFound
		}
		return fmt.Errorf("delete goal %d: %w", goalID, err)
	}
	return nil
}

// SetSplitRule binds a percentage of future income to a goal, creating
// or reactivating the (account, goal) rule.
func (s *goalService) SetSplitRule(ctx context.Context, userID, goalID int64, percentage decimal.Decimal, priority int) (*domain.AutomaticSplitRule, error) {
	hundred := decimal.NewFromInt(100)
	if percentage.LessThanOrEqual(decimal.Zero) || percentage.GreaterThan(hundred) {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("set split rule: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("set split rule: transaction controller does not implement DBExecutor")
	}

	if _, err := s.goalRepo.GetGoalByID(ctx, txExecutor, userID, goalID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("set split rule: failed to get goal %d: %w", goalID, err)
	}

	rule := &domain.AutomaticSplitRule{
		UserID:     userID,
		GoalID:     goalID,
		Percentage: percentage,
		Priority:   priority,
		IsActive:   true,
	}
	if err := s.goalRepo.UpsertSplitRule(ctx, txExecutor, rule); err != nil {
		return nil, fmt.Errorf("set split rule: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("set split rule: failed to commit transaction: %w", err)
	}
	return rule, nil
}

// ListSplitRules retrieves active split rules in application order.
func (s *goalService) ListSplitRules(ctx context.Context, userID int64) ([]domain.AutomaticSplitRule, error) {
	rules, err := s.goalRepo.ListActiveSplitRules(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list split rules: %w", err)
	}
	return rules, nil
}

// CreateRoundUpRule configures round-up-on-expense for the account.
func (s *goalService) CreateRoundUpRule(ctx context.Context, userID int64, rule *domain.RoundUpRule) (*domain.RoundUpRule, error) {
	switch rule.DestinationType {
	case domain.RoundUpDestinationGoal:
		if rule.GoalID == nil {
			return nil, util.ErrInvalidInput
		}
	case domain.RoundUpDestinationNGO:
		if rule.NGOID == nil {
			return nil, util.ErrInvalidInput
		}
	default:
		return nil, util.ErrInvalidInput
	}
	if rule.RoundTo == "custom" && (rule.CustomMultiple == nil || !rule.CustomMultiple.IsPositive()) {
		return nil, util.ErrInvalidInput
	}

	rule.UserID = userID
	rule.IsActive = true
	if rule.GoalID != nil {
		if _, err := s.goalRepo.GetGoalByID(ctx, s.dbExecutor, userID, *rule.GoalID); err != nil {
			if util.IsError(err, util.ErrNotFound) {
				return nil, util.ErrNotFound
			}
			return nil, fmt.Errorf("create round-up rule: failed to get goal %d: %w", *rule.GoalID, err)
		}
	}
	if err := s.goalRepo.CreateRoundUpRule(ctx, s.dbExecutor, rule); err != nil {
		return nil, fmt.Errorf("create round-up rule: %w", err)
	}
	return rule, nil
}

// ListRoundUpRules retrieves the account's active round-up rules.
func (s *goalService) ListRoundUpRules(ctx context.Context, userID int64) ([]domain.RoundUpRule, error) {
	rules, err := s.goalRepo.ListActiveRoundUpRules(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list round-up rules: %w", err)
	}
	return rules, nil
}

// ListNGOs retrieves the beneficiaries selectable as round-up destinations.
func (s *goalService) ListNGOs(ctx context.Context) ([]domain.NGO, error) {
	ngos, err := s.goalRepo.ListActiveNGOs(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list ngos: %w", err)
	}
	return ngos, nil
}
