// internal/repository/postgres/social_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
)

// SocialRepository implements repository.SocialRepository for PostgreSQL.
type SocialRepository struct{}

// NewSocialRepository creates a new SocialRepository.
func NewSocialRepository(db *sqlx.DB) repository.SocialRepository {
	return &SocialRepository{}
}

// ListGroupsForUser lists the groups the account belongs to.
func (r *SocialRepository) ListGroupsForUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Group, error) {
	groups := []domain.Group{}
	query := `
		SELECT sg.id, sg.name, sg.type, sg.created_by, sg.target_amount, sg.created_at, sg.updated_at,
		       u.full_name AS created_by_name,
		       (SELECT COUNT(*) FROM group_members WHERE group_id = sg.id) AS member_count
		FROM social_groups sg
		JOIN group_members gm ON gm.group_id = sg.id
		JOIN users u ON u.id = sg.created_by
		WHERE gm.user_id = $1
		ORDER BY sg.updated_at DESC`
	if err := q.SelectContext(ctx, &groups, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list groups for user %d: %w", userID, err)
	}
	return groups, nil
}

// CreateGroup inserts a group.
func (r *SocialRepository) CreateGroup(ctx context.Context, q repository.DBExecutor, group *domain.Group) error {
	query := `INSERT INTO social_groups (name, type, created_by, target_amount)
              VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := q.QueryRowContext(ctx, query, group.Name, group.Type, group.CreatedBy, group.TargetAmount).
		Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// AddGroupMember inserts the membership; adding an existing member is a no-op.
func (r *SocialRepository) AddGroupMember(ctx context.Context, q repository.DBExecutor, groupID, userID int64, role string) error {
	query := `INSERT INTO group_members (group_id, user_id, role)
              VALUES ($1, $2, $3) ON CONFLICT (group_id, user_id) DO NOTHING`
	if _, err := q.ExecContext(ctx, query, groupID, userID, role); err != nil {
		return fmt.Errorf("failed to add member %d to group %d: %w", userID, groupID, err)
	}
	return nil
}

// ListGroupMemberIDs returns all member account IDs of a group.
func (r *SocialRepository) ListGroupMemberIDs(ctx context.Context, q repository.DBExecutor, groupID int64) ([]int64, error) {
	ids := []int64{}
	query := `SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY user_id`
	if err := q.SelectContext(ctx, &ids, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to list members of group %d: %w", groupID, err)
	}
	return ids, nil
}

// IsGroupMember reports whether the account belongs to the group.
func (r *SocialRepository) IsGroupMember(ctx context.Context, q repository.DBExecutor, groupID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`
	if err := q.GetContext(ctx, &exists, query, groupID, userID); err != nil {
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}
	return exists, nil
}

// ListChallenges lists sent and received challenges.
func (r *SocialRepository) ListChallenges(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Challenge, error) {
	challenges := []domain.Challenge{}
	query := `
		SELECT c.id, c.from_user_id, c.to_user_id, c.type, c.target_value, c.current_value, c.status, c.end_date, c.created_at,
		       u1.full_name AS from_name, u2.full_name AS to_name
		FROM challenges c
		JOIN users u1 ON u1.id = c.from_user_id
		JOIN users u2 ON u2.id = c.to_user_id
		WHERE c.from_user_id = $1 OR c.to_user_id = $1
		ORDER BY c.end_date DESC`
	if err := q.SelectContext(ctx, &challenges, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list challenges for user %d: %w", userID, err)
	}
	return challenges, nil
}

// ListActiveChallenges lists running challenges with the counterparty's name.
func (r *SocialRepository) ListActiveChallenges(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.Challenge, error) {
	challenges := []domain.Challenge{}
	query := `
		SELECT c.id, c.from_user_id, c.to_user_id, c.type, c.target_value, c.current_value, c.status, c.end_date, c.created_at,
		       u.full_name AS other_name
		FROM challenges c
		JOIN users u ON u.id = CASE WHEN c.from_user_id = $1 THEN c.to_user_id ELSE c.from_user_id END
		WHERE (c.from_user_id = $1 OR c.to_user_id = $1) AND c.status = 'active'
		ORDER BY c.end_date
		LIMIT $2`
	if err := q.SelectContext(ctx, &challenges, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list active challenges for user %d: %w", userID, err)
	}
	return challenges, nil
}

// CreateChallenge inserts a challenge.
func (r *SocialRepository) CreateChallenge(ctx context.Context, q repository.DBExecutor, challenge *domain.Challenge) error {
	query := `INSERT INTO challenges (from_user_id, to_user_id, type, target_value, end_date)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, current_value, status, created_at`
	err := q.QueryRowContext(ctx, query,
		challenge.FromUserID, challenge.ToUserID, challenge.Type, challenge.TargetValue, challenge.EndDate,
	).Scan(&challenge.ID, &challenge.CurrentValue, &challenge.Status, &challenge.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}
	return nil
}

// CreateGroupExpense inserts a group expense.
func (r *SocialRepository) CreateGroupExpense(ctx context.Context, q repository.DBExecutor, expense *domain.GroupExpense) error {
	query := `INSERT INTO group_expenses (group_id, paid_by_user_id, amount, description, split_type)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := q.QueryRowContext(ctx, query,
		expense.GroupID, expense.PaidByUserID, expense.Amount, expense.Description, expense.SplitType,
	).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create group expense: %w", err)
	}
	return nil
}

// CreateDebtSplits inserts the per-member owed shares of an expense.
func (r *SocialRepository) CreateDebtSplits(ctx context.Context, q repository.DBExecutor, splits []domain.DebtSplit) error {
	query := `INSERT INTO debt_splits (expense_id, user_id, amount) VALUES ($1, $2, $3)`
	for i := range splits {
		if _, err := q.ExecContext(ctx, query, splits[i].ExpenseID, splits[i].UserID, splits[i].Amount); err != nil {
			return fmt.Errorf("failed to create debt split: %w", err)
		}
	}
	return nil
}

// ListUnsettledDebts lists open debts of a group's expenses.
func (r *SocialRepository) ListUnsettledDebts(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.DebtSplit, error) {
	debts := []domain.DebtSplit{}
	query := `
		SELECT ds.id, ds.expense_id, ds.user_id, ds.amount, ds.is_settled, ds.settled_at, u.full_name
		FROM debt_splits ds
		JOIN group_expenses ge ON ge.id = ds.expense_id
		JOIN users u ON u.id = ds.user_id
		WHERE ge.group_id = $1 AND ds.is_settled = false`
	if err := q.SelectContext(ctx, &debts, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to list debts for group %d: %w", groupID, err)
	}
	return debts, nil
}

// SettleDebt flips the settlement flag.
func (r *SocialRepository) SettleDebt(ctx context.Context, q repository.DBExecutor, debtID int64) error {
	query := `UPDATE debt_splits SET is_settled = true, settled_at = CURRENT_TIMESTAMP WHERE id = $1`
	result, err := q.ExecContext(ctx, query, debtID)
	if err != nil {
		return fmt.Errorf("failed to settle debt %d: %w", debtID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for debt %d: %w", debtID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ListContributions sums each member's paid group expenses, including
// members who paid nothing.
func (r *SocialRepository) ListContributions(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.Contribution, error) {
	contributions := []domain.Contribution{}
	query := `
		SELECT gm.user_id, COALESCE(SUM(ge.amount), 0) AS amount_paid
		FROM group_members gm
		LEFT JOIN group_expenses ge ON ge.group_id = gm.group_id AND ge.paid_by_user_id = gm.user_id
		WHERE gm.group_id = $1
		GROUP BY gm.user_id
		ORDER BY gm.user_id`
	if err := q.SelectContext(ctx, &contributions, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to list contributions for group %d: %w", groupID, err)
	}
	return contributions, nil
}
