// internal/repository/postgres/reward_pg.go
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

// RewardRepository implements repository.RewardRepository for PostgreSQL.
type RewardRepository struct{}

// NewRewardRepository creates a new RewardRepository.
func NewRewardRepository(db *sqlx.DB) repository.RewardRepository {
	return &RewardRepository{}
}

// ListActiveRewards lists the catalog, cheapest first.
func (r *RewardRepository) ListActiveRewards(ctx context.Context, q repository.DBExecutor) ([]domain.Reward, error) {
	rewards := []domain.Reward{}
	query := `SELECT id, name, description, points_cost, type, image_url, is_active, created_at
	          FROM rewards WHERE is_active = true ORDER BY points_cost`
	if err := q.SelectContext(ctx, &rewards, query); err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	return rewards, nil
}

// GetActiveReward retrieves an active reward by ID.
func (r *RewardRepository) GetActiveReward(ctx context.Context, q repository.DBExecutor, rewardID int64) (*domain.Reward, error) {
	var reward domain.Reward
	query := `SELECT id, name, description, points_cost, type, image_url, is_active, created_at
	          FROM rewards WHERE id = $1 AND is_active = true`
	if err := q.GetContext(ctx, &reward, query, rewardID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reward %d: %w", rewardID, err)
	}
	return &reward, nil
}

// CreateRedemption inserts a redemption record.
func (r *RewardRepository) CreateRedemption(ctx context.Context, q repository.DBExecutor, redemption *domain.RewardRedemption) error {
	query := `INSERT INTO reward_redemptions (reference, user_id, reward_id, points_spent, redeemed_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		redemption.Reference, redemption.UserID, redemption.RewardID, redemption.PointsSpent, redemption.RedeemedAt,
	).Scan(&redemption.ID)
	if err != nil {
		return fmt.Errorf("failed to create redemption: %w", err)
	}
	return nil
}

// ListRedemptions lists the account's redemptions, newest first.
func (r *RewardRepository) ListRedemptions(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.RewardRedemption, error) {
	redemptions := []domain.RewardRedemption{}
	query := `
		SELECT rr.id, rr.reference, rr.user_id, rr.reward_id, rr.points_spent, rr.redeemed_at,
		       r.name AS reward_name, r.type AS reward_type
		FROM reward_redemptions rr
		JOIN rewards r ON r.id = rr.reward_id
		WHERE rr.user_id = $1
		ORDER BY rr.redeemed_at DESC`
	if err := q.SelectContext(ctx, &redemptions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list redemptions for user %d: %w", userID, err)
	}
	return redemptions, nil
}
