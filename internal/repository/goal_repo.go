// internal/repository/goal_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"kumbara-api/internal/domain"
)

// GoalPatch holds the updatable goal fields; nil fields are left unchanged.
type GoalPatch struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	IsActive      *bool
}

// GoalRepository defines the interface for goal and rule data operations.
type GoalRepository interface {
	CreateGoal(ctx context.Context, q DBExecutor, goal *domain.Goal) error
	// ListActiveGoals returns the account's active goals, each annotated
	// with the summed split percentage bound to it.
	ListActiveGoals(ctx context.Context, q DBExecutor, userID int64) ([]domain.Goal, error)
	GetGoalByID(ctx context.Context, q DBExecutor, userID, goalID int64) (*domain.Goal, error)
	// UpdateGoal applies the patch; returns the updated goal or ErrNotFound.
	UpdateGoal(ctx context.Context, q DBExecutor, userID, goalID int64, patch GoalPatch) (*domain.Goal, error)
	// DeactivateGoal soft-deletes a goal.
	DeactivateGoal(ctx context.Context, q DBExecutor, userID, goalID int64) error
	// AddToGoalAmount credits a goal's accumulated amount.
	AddToGoalAmount(ctx context.Context, q DBExecutor, goalID int64, delta decimal.Decimal) error

	// ListActiveSplitRules returns rules ordered by priority then id.
	ListActiveSplitRules(ctx context.Context, q DBExecutor, userID int64) ([]domain.AutomaticSplitRule, error)
	// UpsertSplitRule inserts or reactivates the (user, goal) rule.
	UpsertSplitRule(ctx context.Context, q DBExecutor, rule *domain.AutomaticSplitRule) error

	// GetActiveRoundUpRule returns the first active round-up rule, or
	// ErrNotFound when none is configured.
	GetActiveRoundUpRule(ctx context.Context, q DBExecutor, userID int64) (*domain.RoundUpRule, error)
	ListActiveRoundUpRules(ctx context.Context, q DBExecutor, userID int64) ([]domain.RoundUpRule, error)
	CreateRoundUpRule(ctx context.Context, q DBExecutor, rule *domain.RoundUpRule) error

	ListActiveNGOs(ctx context.Context, q DBExecutor) ([]domain.NGO, error)
}
