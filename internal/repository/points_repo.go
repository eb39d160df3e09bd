// internal/repository/points_repo.go
package repository

import (
	"context"

	"kumbara-api/internal/domain"
)

// PointsRepository defines the interface for gamification state.
//
// The award path is EnsurePoints (insert-or-ignore) followed by
// GetPointsForUpdate and UpdatePoints inside one transaction: two
// racing first-award calls both reach the lock, and the loser sees the
// winner's committed state, so no points are lost or double-created.
type PointsRepository interface {
	// EnsurePoints creates the zero-valued points row if absent.
	EnsurePoints(ctx context.Context, q DBExecutor, userID int64) error
	// GetPoints reads the points row, or ErrNotFound.
	GetPoints(ctx context.Context, q DBExecutor, userID int64) (*domain.PointsAccount, error)
	// GetPointsForUpdate reads the points row under an exclusive lock.
	GetPointsForUpdate(ctx context.Context, q DBExecutor, userID int64) (*domain.PointsAccount, error)
	// UpdatePoints writes totals, streak and activity date.
	UpdatePoints(ctx context.Context, q DBExecutor, points *domain.PointsAccount) error
}
