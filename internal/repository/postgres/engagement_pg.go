// internal/repository/postgres/engagement_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
)

// EngagementRepository implements repository.EngagementRepository for PostgreSQL.
type EngagementRepository struct{}

// NewEngagementRepository creates a new EngagementRepository.
func NewEngagementRepository(db *sqlx.DB) repository.EngagementRepository {
	return &EngagementRepository{}
}

// ListActiveReels lists active reels, newest first.
func (r *EngagementRepository) ListActiveReels(ctx context.Context, q repository.DBExecutor) ([]domain.Reel, error) {
	reels := []domain.Reel{}
	query := `SELECT id, title, description, video_url, thumbnail_url, duration_seconds, points_reward, category, is_active, created_at
	          FROM reels WHERE is_active = true ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &reels, query); err != nil {
		return nil, fmt.Errorf("failed to list reels: %w", err)
	}
	return reels, nil
}

// GetActiveReel retrieves an active reel by ID.
func (r *EngagementRepository) GetActiveReel(ctx context.Context, q repository.DBExecutor, reelID int64) (*domain.Reel, error) {
	var reel domain.Reel
	query := `SELECT id, title, description, video_url, thumbnail_url, duration_seconds, points_reward, category, is_active, created_at
	          FROM reels WHERE id = $1 AND is_active = true`
	if err := q.GetContext(ctx, &reel, query, reelID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reel %d: %w", reelID, err)
	}
	return &reel, nil
}

// GetReelView returns the view record for a (user, reel) pair.
func (r *EngagementRepository) GetReelView(ctx context.Context, q repository.DBExecutor, userID, reelID int64) (*domain.ReelView, error) {
	var view domain.ReelView
	query := `SELECT id, user_id, reel_id, watched_seconds, points_earned, created_at
	          FROM reel_views WHERE user_id = $1 AND reel_id = $2`
	if err := q.GetContext(ctx, &view, query, userID, reelID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reel view: %w", err)
	}
	return &view, nil
}

// UpsertReelView records a watch; repeat watches keep the earlier points
// figure and only raise the watched-seconds high-water mark.
func (r *EngagementRepository) UpsertReelView(ctx context.Context, q repository.DBExecutor, view *domain.ReelView) error {
	query := `INSERT INTO reel_views (user_id, reel_id, watched_seconds, points_earned)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (user_id, reel_id)
              DO UPDATE SET watched_seconds = GREATEST(reel_views.watched_seconds, $3)
              RETURNING id, points_earned, created_at`
	err := q.QueryRowContext(ctx, query, view.UserID, view.ReelID, view.WatchedSeconds, view.PointsEarned).
		Scan(&view.ID, &view.PointsEarned, &view.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert reel view: %w", err)
	}
	return nil
}

// ListReelViews lists all of the account's reel views.
func (r *EngagementRepository) ListReelViews(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.ReelView, error) {
	views := []domain.ReelView{}
	query := `SELECT id, user_id, reel_id, watched_seconds, points_earned, created_at
	          FROM reel_views WHERE user_id = $1`
	if err := q.SelectContext(ctx, &views, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list reel views for user %d: %w", userID, err)
	}
	return views, nil
}

// ListActiveTasks returns active tasks with the account's completion flag.
func (r *EngagementRepository) ListActiveTasks(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Task, error) {
	tasks := []domain.Task{}
	query := `
		SELECT t.id, t.title, t.description, t.points_reward, t.type, t.is_active, t.created_at,
		       EXISTS (SELECT 1 FROM task_completions tc WHERE tc.task_id = t.id AND tc.user_id = $1) AS completed
		FROM tasks t
		WHERE t.is_active = true
		ORDER BY t.points_reward DESC`
	if err := q.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetActiveTask retrieves an active task by ID.
func (r *EngagementRepository) GetActiveTask(ctx context.Context, q repository.DBExecutor, taskID int64) (*domain.Task, error) {
	var task domain.Task
	query := `SELECT id, title, description, points_reward, type, is_active, created_at
	          FROM tasks WHERE id = $1 AND is_active = true`
	if err := q.GetContext(ctx, &task, query, taskID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task %d: %w", taskID, err)
	}
	return &task, nil
}

// HasCompletedTask reports whether the account already completed the task.
func (r *EngagementRepository) HasCompletedTask(ctx context.Context, q repository.DBExecutor, userID, taskID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM task_completions WHERE user_id = $1 AND task_id = $2)`
	if err := q.GetContext(ctx, &exists, query, userID, taskID); err != nil {
		return false, fmt.Errorf("failed to check task completion: %w", err)
	}
	return exists, nil
}

// CreateTaskCompletion inserts the idempotency record for a task award.
// A concurrent duplicate surfaces as ErrAlreadyCompleted via the unique key.
func (r *EngagementRepository) CreateTaskCompletion(ctx context.Context, q repository.DBExecutor, completion *domain.TaskCompletion) error {
	query := `INSERT INTO task_completions (user_id, task_id, points_earned)
              VALUES ($1, $2, $3) RETURNING id, created_at`
	err := q.QueryRowContext(ctx, query, completion.UserID, completion.TaskID, completion.PointsEarned).
		Scan(&completion.ID, &completion.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return util.ErrAlreadyCompleted
		}
		return fmt.Errorf("failed to create task completion: %w", err)
	}
	return nil
}
