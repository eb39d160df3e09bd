// internal/repository/transaction_repo.go
package repository

import (
	"context"
	"time"

	"kumbara-api/internal/domain"
)

// TransactionRepository defines the interface for ledger entry operations.
// Ledger entries are append-only; there is deliberately no update or delete.
type TransactionRepository interface {
	// CreateTransaction appends one ledger entry.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// ListByUserID returns the account's most recent entries.
	ListByUserID(ctx context.Context, q DBExecutor, userID int64, limit int) ([]domain.Transaction, error)
	// ListSince returns entries created at or after the given time.
	ListSince(ctx context.Context, q DBExecutor, userID int64, since time.Time) ([]domain.Transaction, error)
}
