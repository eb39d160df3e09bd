// internal/domain/goal.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a named savings target owned by an account. Goals are
// soft-deleted via IsActive and their CurrentAmount is only moved by
// applied ledger entries (or an explicit user correction).
type Goal struct {
	ID            int64            `db:"id" json:"id"`
	UserID        int64            `db:"user_id" json:"user_id"`
	Name          string           `db:"name" json:"name"`
	Type          string           `db:"type" json:"type"`
	TargetAmount  *decimal.Decimal `db:"target_amount" json:"target_amount"`
	CurrentAmount decimal.Decimal  `db:"current_amount" json:"current_amount"`
	Icon          *string          `db:"icon" json:"icon,omitempty"`
	Color         string           `db:"color" json:"color"`
	IsActive      bool             `db:"is_active" json:"is_active"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`

	// SplitPercentage is the sum of active split-rule percentages bound to
	// this goal; populated by list queries, not stored on the goals table.
	SplitPercentage decimal.Decimal `db:"split_percentage" json:"split_percentage"`
}

// NewGoal creates a new active Goal with a zero accumulated amount.
func NewGoal(userID int64, name, goalType string, target *decimal.Decimal, icon *string, color string) *Goal {
	now := time.Now().UTC()
	return &Goal{
		UserID:        userID,
		Name:          name,
		Type:          goalType,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		Icon:          icon,
		Color:         color,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AutomaticSplitRule allocates a percentage of incoming funds to a goal.
type AutomaticSplitRule struct {
	ID         int64           `db:"id" json:"id"`
	UserID     int64           `db:"user_id" json:"user_id"`
	GoalID     int64           `db:"goal_id" json:"goal_id"`
	Percentage decimal.Decimal `db:"percentage" json:"percentage"`
	Priority   int             `db:"priority" json:"priority"`
	IsActive   bool            `db:"is_active" json:"is_active"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`

	GoalName *string `db:"goal_name" json:"goal_name,omitempty"`
	GoalType *string `db:"goal_type" json:"goal_type,omitempty"`
}

// Round-up destinations.
const (
	RoundUpDestinationGoal = "goal"
	RoundUpDestinationNGO  = "ngo"
)

// RoundUpRule rounds expenses up to a denomination and diverts the
// difference to a goal or an external beneficiary.
type RoundUpRule struct {
	ID              int64            `db:"id" json:"id"`
	UserID          int64            `db:"user_id" json:"user_id"`
	RoundTo         string           `db:"round_to" json:"round_to"` // "nearest", "5", "10" or "custom"
	CustomMultiple  *decimal.Decimal `db:"custom_multiple" json:"custom_multiple"`
	DestinationType string           `db:"destination_type" json:"destination_type"`
	GoalID          *int64           `db:"goal_id" json:"goal_id"`
	NGOID           *int64           `db:"ngo_id" json:"ngo_id"`
	IsActive        bool             `db:"is_active" json:"is_active"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`

	GoalName *string `db:"goal_name" json:"goal_name,omitempty"`
}

// Multiple resolves the rounding unit selected by the rule.
// Unknown selectors fall back to whole currency units.
func (r RoundUpRule) Multiple() decimal.Decimal {
	switch r.RoundTo {
	case "5":
		return decimal.NewFromInt(5)
	case "10":
		return decimal.NewFromInt(10)
	case "custom":
		if r.CustomMultiple != nil && r.CustomMultiple.IsPositive() {
			return *r.CustomMultiple
		}
	}
	return decimal.NewFromInt(1)
}

// NGO is an external beneficiary selectable as a round-up destination.
type NGO struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	LogoURL     *string   `db:"logo_url" json:"logo_url,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
