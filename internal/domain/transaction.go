// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType defines the kind of a ledger entry.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeRoundUp TransactionType = "round_up"
)

// TransactionSource tags where a ledger entry originated.
type TransactionSource string

const (
	SourceManual         TransactionSource = "manual"
	SourceAutomaticSplit TransactionSource = "automatic_split"
	SourceRoundUp        TransactionSource = "round_up"
)

// Transaction is an immutable ledger entry recording one monetary
// movement against an account, including the resulting balance snapshot.
type Transaction struct {
	ID            int64             `db:"id" json:"id"`
	Reference     string            `db:"reference" json:"reference"`
	UserID        int64             `db:"user_id" json:"user_id"`
	Type          TransactionType   `db:"type" json:"type"`
	Amount        decimal.Decimal   `db:"amount" json:"amount"` // signed
	BalanceAfter  decimal.Decimal   `db:"balance_after" json:"balance_after"`
	Category      *string           `db:"category" json:"category"`
	Description   *string           `db:"description" json:"description"`
	GoalID        *int64            `db:"goal_id" json:"goal_id"`
	RoundUpAmount *decimal.Decimal  `db:"round_up_amount" json:"round_up_amount"`
	Source        TransactionSource `db:"source" json:"source"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}

// NewTransaction creates a ledger entry with a fresh external reference.
func NewTransaction(userID int64, txType TransactionType, amount, balanceAfter decimal.Decimal, source TransactionSource) *Transaction {
	return &Transaction{
		Reference:    uuid.NewString(),
		UserID:       userID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Source:       source,
		CreatedAt:    time.Now().UTC(),
	}
}
