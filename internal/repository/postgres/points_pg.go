// internal/repository/postgres/points_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
)

// PointsRepository implements repository.PointsRepository for PostgreSQL.
type PointsRepository struct{}

// NewPointsRepository creates a new PointsRepository.
func NewPointsRepository(db *sqlx.DB) repository.PointsRepository {
	return &PointsRepository{}
}

const pointsColumns = `user_id, total_points, spent_points, current_streak_days, last_activity_date, updated_at`

// EnsurePoints creates the zero-valued points row if absent. Concurrent
// calls for the same account are safe: the conflict clause makes the
// loser a no-op.
func (r *PointsRepository) EnsurePoints(ctx context.Context, q repository.DBExecutor, userID int64) error {
	query := `INSERT INTO user_points (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to ensure points row for user %d: %w", userID, err)
	}
	return nil
}

// GetPoints reads the points row.
func (r *PointsRepository) GetPoints(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.PointsAccount, error) {
	var points domain.PointsAccount
	query := `SELECT ` + pointsColumns + ` FROM user_points WHERE user_id = $1`
	if err := q.GetContext(ctx, &points, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get points for user %d: %w", userID, err)
	}
	return &points, nil
}

// GetPointsForUpdate reads the points row with a FOR UPDATE lock.
func (r *PointsRepository) GetPointsForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.PointsAccount, error) {
	var points domain.PointsAccount
	query := `SELECT ` + pointsColumns + ` FROM user_points WHERE user_id = $1 FOR UPDATE`
	if err := q.GetContext(ctx, &points, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock points for user %d: %w", userID, err)
	}
	return &points, nil
}

// UpdatePoints writes totals, streak and activity date.
func (r *PointsRepository) UpdatePoints(ctx context.Context, q repository.DBExecutor, points *domain.PointsAccount) error {
	query := `UPDATE user_points
	          SET total_points = $1, spent_points = $2, current_streak_days = $3, last_activity_date = $4, updated_at = $5
	          WHERE user_id = $6`
	result, err := q.ExecContext(ctx, query,
		points.TotalPoints,
		points.SpentPoints,
		points.CurrentStreakDays,
		points.LastActivityDate,
		time.Now().UTC(),
		points.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update points for user %d: %w", points.UserID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for user %d points: %w", points.UserID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
