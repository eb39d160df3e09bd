// internal/repository/reward_repo.go
package repository

import (
	"context"

	"kumbara-api/internal/domain"
)

// RewardRepository defines the interface for the reward catalog and redemptions.
type RewardRepository interface {
	ListActiveRewards(ctx context.Context, q DBExecutor) ([]domain.Reward, error)
	GetActiveReward(ctx context.Context, q DBExecutor, rewardID int64) (*domain.Reward, error)
	CreateRedemption(ctx context.Context, q DBExecutor, redemption *domain.RewardRedemption) error
	ListRedemptions(ctx context.Context, q DBExecutor, userID int64) ([]domain.RewardRedemption, error)
}
