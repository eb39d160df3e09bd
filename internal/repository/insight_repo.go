// internal/repository/insight_repo.go
package repository

import (
	"context"

	"kumbara-api/internal/domain"
)

// InsightRepository defines the interface for the cached insight feed.
type InsightRepository interface {
	// ReplaceInsights drops the account's cached insights and stores the
	// given batch (callers cap it at five).
	ReplaceInsights(ctx context.Context, q DBExecutor, userID int64, insights []domain.Insight) error
	ListInsights(ctx context.Context, q DBExecutor, userID int64) ([]domain.Insight, error)
	// GetLatestInsight returns the most recent cached insight, or ErrNotFound.
	GetLatestInsight(ctx context.Context, q DBExecutor, userID int64) (*domain.Insight, error)
}
