// internal/domain/group.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Group is a shared piggy-bank or expense-splitting context.
type Group struct {
	ID           int64            `db:"id" json:"id"`
	Name         string           `db:"name" json:"name"`
	Type         string           `db:"type" json:"type"` // "piggy_bank" or "expense"
	CreatedBy    int64            `db:"created_by" json:"created_by"`
	TargetAmount *decimal.Decimal `db:"target_amount" json:"target_amount"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`

	CreatedByName *string `db:"created_by_name" json:"created_by_name,omitempty"`
	MemberCount   int     `db:"member_count" json:"member_count"`
}

// GroupMember ties an account to a group. The creator holds the admin role.
type GroupMember struct {
	ID       int64     `db:"id" json:"id"`
	GroupID  int64     `db:"group_id" json:"group_id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	Role     string    `db:"role" json:"role"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// Challenge is a peer savings challenge between two accounts.
type Challenge struct {
	ID           int64           `db:"id" json:"id"`
	FromUserID   int64           `db:"from_user_id" json:"from_user_id"`
	ToUserID     int64           `db:"to_user_id" json:"to_user_id"`
	Type         string          `db:"type" json:"type"`
	TargetValue  decimal.Decimal `db:"target_value" json:"target_value"`
	CurrentValue decimal.Decimal `db:"current_value" json:"current_value"`
	Status       string          `db:"status" json:"status"`
	EndDate      time.Time       `db:"end_date" json:"end_date"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`

	FromName  *string `db:"from_name" json:"from_name,omitempty"`
	ToName    *string `db:"to_name" json:"to_name,omitempty"`
	OtherName *string `db:"other_name" json:"other_name,omitempty"`
}

// Expense split modes.
const (
	SplitTypeEqual  = "equal"
	SplitTypeCustom = "custom"
)

// GroupExpense is a paid-by-one, owed-by-many expense inside a group.
type GroupExpense struct {
	ID           int64           `db:"id" json:"id"`
	GroupID      int64           `db:"group_id" json:"group_id"`
	PaidByUserID int64           `db:"paid_by_user_id" json:"paid_by_user_id"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	Description  string          `db:"description" json:"description"`
	SplitType    string          `db:"split_type" json:"split_type"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// DebtSplit is one member's owed share of a group expense. Settlement
// is the only permitted mutation.
type DebtSplit struct {
	ID        int64           `db:"id" json:"id"`
	ExpenseID int64           `db:"expense_id" json:"expense_id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	IsSettled bool            `db:"is_settled" json:"is_settled"`
	SettledAt *time.Time      `db:"settled_at" json:"settled_at"`

	FullName *string `db:"full_name" json:"full_name,omitempty"`
}
