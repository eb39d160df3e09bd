// internal/domain/account.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a user account and its monetary state.
// MainBalance only changes through applied ledger entries.
type Account struct {
	ID           int64           `db:"id" json:"id"`
	Email        string          `db:"email" json:"email"`
	PasswordHash string          `db:"password_hash" json:"-"`
	FullName     string          `db:"full_name" json:"full_name"`
	Phone        *string         `db:"phone" json:"phone,omitempty"`
	AvatarURL    *string         `db:"avatar_url" json:"avatar_url,omitempty"`
	MainBalance  decimal.Decimal `db:"main_balance" json:"main_balance"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// NewAccount creates a new Account with a zero balance.
func NewAccount(email, passwordHash, fullName string, phone *string) *Account {
	now := time.Now().UTC()
	return &Account{
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Phone:        phone,
		MainBalance:  decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
