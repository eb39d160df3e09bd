// internal/domain/reward.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reward is a catalog item purchasable with points.
type Reward struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	PointsCost  int       `db:"points_cost" json:"points_cost"`
	Type        string    `db:"type" json:"type"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// RewardRedemption records spending points on a reward.
type RewardRedemption struct {
	ID          int64     `db:"id" json:"id"`
	Reference   string    `db:"reference" json:"reference"`
	UserID      int64     `db:"user_id" json:"user_id"`
	RewardID    int64     `db:"reward_id" json:"reward_id"`
	PointsSpent int       `db:"points_spent" json:"points_spent"`
	RedeemedAt  time.Time `db:"redeemed_at" json:"redeemed_at"`

	RewardName *string `db:"reward_name" json:"reward_name,omitempty"`
	RewardType *string `db:"reward_type" json:"reward_type,omitempty"`
}

// NewRewardRedemption creates a redemption record with a fresh external reference.
func NewRewardRedemption(userID, rewardID int64, pointsSpent int) *RewardRedemption {
	return &RewardRedemption{
		Reference:   uuid.NewString(),
		UserID:      userID,
		RewardID:    rewardID,
		PointsSpent: pointsSpent,
		RedeemedAt:  time.Now().UTC(),
	}
}
