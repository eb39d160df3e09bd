// internal/repository/engagement_repo.go
package repository

import (
	"context"

	"kumbara-api/internal/domain"
)

// EngagementRepository defines the interface for reels and tasks, the
// two point-earning activities, together with their idempotency records.
type EngagementRepository interface {
	ListActiveReels(ctx context.Context, q DBExecutor) ([]domain.Reel, error)
	GetActiveReel(ctx context.Context, q DBExecutor, reelID int64) (*domain.Reel, error)
	// GetReelView returns the view record or ErrNotFound for a first watch.
	GetReelView(ctx context.Context, q DBExecutor, userID, reelID int64) (*domain.ReelView, error)
	// UpsertReelView records a watch; repeated watches only raise the
	// watched-seconds high-water mark.
	UpsertReelView(ctx context.Context, q DBExecutor, view *domain.ReelView) error
	ListReelViews(ctx context.Context, q DBExecutor, userID int64) ([]domain.ReelView, error)

	// ListActiveTasks returns active tasks with the Completed flag set
	// for the given account.
	ListActiveTasks(ctx context.Context, q DBExecutor, userID int64) ([]domain.Task, error)
	GetActiveTask(ctx context.Context, q DBExecutor, taskID int64) (*domain.Task, error)
	HasCompletedTask(ctx context.Context, q DBExecutor, userID, taskID int64) (bool, error)
	CreateTaskCompletion(ctx context.Context, q DBExecutor, completion *domain.TaskCompletion) error
}
