// internal/repository/postgres/goal_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
)

// GoalRepository implements repository.GoalRepository for PostgreSQL.
type GoalRepository struct{}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(db *sqlx.DB) repository.GoalRepository {
	return &GoalRepository{}
}

// CreateGoal inserts a new goal using the provided DBExecutor.
func (r *GoalRepository) CreateGoal(ctx context.Context, q repository.DBExecutor, goal *domain.Goal) error {
	query := `INSERT INTO goals (user_id, name, type, target_amount, current_amount, icon, color, is_active, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		goal.UserID, goal.Name, goal.Type, goal.TargetAmount, goal.CurrentAmount,
		goal.Icon, goal.Color, goal.IsActive, goal.CreatedAt, goal.UpdatedAt,
	).Scan(&goal.ID)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// ListActiveGoals returns active goals annotated with their bound split percentage.
func (r *GoalRepository) ListActiveGoals(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Goal, error) {
	goals := []domain.Goal{}
	query := `
		SELECT g.id, g.user_id, g.name, g.type, g.target_amount, g.current_amount, g.icon, g.color,
		       g.is_active, g.created_at, g.updated_at,
		       (SELECT COALESCE(SUM(percentage), 0) FROM automatic_splits
		        WHERE user_id = $1 AND goal_id = g.id AND is_active) AS split_percentage
		FROM goals g
		WHERE g.user_id = $1 AND g.is_active = true
		ORDER BY g.created_at DESC`
	if err := q.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list goals for user %d: %w", userID, err)
	}
	return goals, nil
}

// GetGoalByID retrieves one of the account's goals.
func (r *GoalRepository) GetGoalByID(ctx context.Context, q repository.DBExecutor, userID, goalID int64) (*domain.Goal, error) {
	var goal domain.Goal
	query := `SELECT id, user_id, name, type, target_amount, current_amount, icon, color, is_active, created_at, updated_at
	          FROM goals WHERE id = $1 AND user_id = $2`
	if err := q.GetContext(ctx, &goal, query, goalID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get goal %d: %w", goalID, err)
	}
	return &goal, nil
}

// UpdateGoal applies the patch and returns the updated goal.
func (r *GoalRepository) UpdateGoal(ctx context.Context, q repository.DBExecutor, userID, goalID int64, patch repository.GoalPatch) (*domain.Goal, error) {
	sets := []string{}
	args := []interface{}{goalID, userID}
	i := 3
	if patch.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", i))
		args = append(args, *patch.Name)
		i++
	}
	if patch.TargetAmount != nil {
		sets = append(sets, fmt.Sprintf("target_amount = $%d", i))
		args = append(args, *patch.TargetAmount)
		i++
	}
	if patch.CurrentAmount != nil {
		sets = append(sets, fmt.Sprintf("current_amount = $%d", i))
		args = append(args, *patch.CurrentAmount)
		i++
	}
	if patch.IsActive != nil {
		sets = append(sets, fmt.Sprintf("is_active = $%d", i))
		args = append(args, *patch.IsActive)
		i++
	}
	if len(sets) == 0 {
		return nil, util.ErrInvalidInput
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	var goal domain.Goal
	query := fmt.Sprintf(`UPDATE goals SET %s WHERE id = $1 AND user_id = $2
	          RETURNING id, user_id, name, type, target_amount, current_amount, icon, color, is_active, created_at, updated_at`,
		strings.Join(sets, ", "))
	if err := q.GetContext(ctx, &goal, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update goal %d: %w", goalID, err)
	}
	return &goal, nil
}

// DeactivateGoal soft-deletes a goal.
func (r *GoalRepository) DeactivateGoal(ctx context.Context, q repository.DBExecutor, userID, goalID int64) error {
	query := `UPDATE goals SET is_active = false, updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND user_id = $2`
	if _, err := q.ExecContext(ctx, query, goalID, userID); err != nil {
		return fmt.Errorf("failed to deactivate goal %d: %w", goalID, err)
	}
	return nil
}

// AddToGoalAmount credits a goal's accumulated amount.
func (r *GoalRepository) AddToGoalAmount(ctx context.Context, q repository.DBExecutor, goalID int64, delta decimal.Decimal) error {
	query := `UPDATE goals SET current_amount = current_amount + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), goalID)
	if err != nil {
		return fmt.Errorf("failed to credit goal %d: %w", goalID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for goal %d: %w", goalID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ListActiveSplitRules returns rules ordered by priority then id.
func (r *GoalRepository) ListActiveSplitRules(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.AutomaticSplitRule, error) {
	rules := []domain.AutomaticSplitRule{}
	query := `
		SELECT s.id, s.user_id, s.goal_id, s.percentage, s.priority, s.is_active, s.created_at,
		       g.name AS goal_name, g.type AS goal_type
		FROM automatic_splits s
		JOIN goals g ON g.id = s.goal_id
		WHERE s.user_id = $1 AND s.is_active
		ORDER BY s.priority, s.id`
	if err := q.SelectContext(ctx, &rules, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list split rules for user %d: %w", userID, err)
	}
	return rules, nil
}

// UpsertSplitRule inserts or reactivates the (user, goal) rule.
func (r *GoalRepository) UpsertSplitRule(ctx context.Context, q repository.DBExecutor, rule *domain.AutomaticSplitRule) error {
	query := `INSERT INTO automatic_splits (user_id, goal_id, percentage, priority)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (user_id, goal_id) DO UPDATE SET percentage = $3, priority = $4, is_active = true
              RETURNING id, is_active, created_at`
	err := q.QueryRowContext(ctx, query, rule.UserID, rule.GoalID, rule.Percentage, rule.Priority).
		Scan(&rule.ID, &rule.IsActive, &rule.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert split rule: %w", err)
	}
	return nil
}

const roundUpColumns = `r.id, r.user_id, r.round_to, r.custom_multiple, r.destination_type, r.goal_id, r.ngo_id, r.is_active, r.created_at`

// GetActiveRoundUpRule returns the first active round-up rule.
func (r *GoalRepository) GetActiveRoundUpRule(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.RoundUpRule, error) {
	var rule domain.RoundUpRule
	query := `SELECT ` + roundUpColumns + ` FROM round_up_rules r WHERE r.user_id = $1 AND r.is_active ORDER BY r.id LIMIT 1`
	if err := q.GetContext(ctx, &rule, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get round-up rule for user %d: %w", userID, err)
	}
	return &rule, nil
}

// ListActiveRoundUpRules lists active rules with their goal names.
func (r *GoalRepository) ListActiveRoundUpRules(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.RoundUpRule, error) {
	rules := []domain.RoundUpRule{}
	query := `SELECT ` + roundUpColumns + `, g.name AS goal_name
	          FROM round_up_rules r LEFT JOIN goals g ON g.id = r.goal_id
	          WHERE r.user_id = $1 AND r.is_active`
	if err := q.SelectContext(ctx, &rules, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list round-up rules for user %d: %w", userID, err)
	}
	return rules, nil
}

// CreateRoundUpRule inserts a round-up rule.
func (r *GoalRepository) CreateRoundUpRule(ctx context.Context, q repository.DBExecutor, rule *domain.RoundUpRule) error {
	query := `INSERT INTO round_up_rules (user_id, round_to, custom_multiple, destination_type, goal_id, ngo_id)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, is_active, created_at`
	err := q.QueryRowContext(ctx, query,
		rule.UserID, rule.RoundTo, rule.CustomMultiple, rule.DestinationType, rule.GoalID, rule.NGOID,
	).Scan(&rule.ID, &rule.IsActive, &rule.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create round-up rule: %w", err)
	}
	return nil
}

// ListActiveNGOs lists the selectable external beneficiaries.
func (r *GoalRepository) ListActiveNGOs(ctx context.Context, q repository.DBExecutor) ([]domain.NGO, error) {
	ngos := []domain.NGO{}
	query := `SELECT id, name, description, logo_url, is_active, created_at FROM ngos WHERE is_active = true`
	if err := q.SelectContext(ctx, &ngos, query); err != nil {
		return nil, fmt.Errorf("failed to list NGOs: %w", err)
	}
	return ngos, nil
}
