// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

const transactionColumns = `id, reference, user_id, type, amount, balance_after, category, description, goal_id, round_up_amount, source, created_at`

// CreateTransaction appends one ledger entry using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (reference, user_id, type, amount, balance_after, category, description, goal_id, round_up_amount, source, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		transaction.Reference,
		transaction.UserID,
		transaction.Type,
		transaction.Amount,
		transaction.BalanceAfter,
		transaction.Category,
		transaction.Description,
		transaction.GoalID,
		transaction.RoundUpAmount,
		transaction.Source,
		transaction.CreatedAt,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListByUserID returns the account's most recent entries.
func (r *TransactionRepository) ListByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions
	          WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	if err := q.SelectContext(ctx, &transactions, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %d: %w", userID, err)
	}
	return transactions, nil
}

// ListSince returns entries created at or after the given time.
func (r *TransactionRepository) ListSince(ctx context.Context, q repository.DBExecutor, userID int64, since time.Time) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions
	          WHERE user_id = $1 AND created_at >= $2 ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &transactions, query, userID, since); err != nil {
		return nil, fmt.Errorf("failed to list transactions since %s for user %d: %w", since, userID, err)
	}
	return transactions, nil
}
