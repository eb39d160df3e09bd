// internal/repository/account_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"kumbara-api/internal/domain"
)

// AccountRepository defines the interface for account data operations.
type AccountRepository interface {
	// CreateAccount adds a new account using the provided DBExecutor.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// GetAccountByID retrieves an account by its ID.
	GetAccountByID(ctx context.Context, q DBExecutor, id int64) (*domain.Account, error)
	// GetAccountByEmail retrieves an account by email.
	GetAccountByEmail(ctx context.Context, q DBExecutor, email string) (*domain.Account, error)
	// GetAccountForUpdate reads the account row under an exclusive lock.
	// Must be called inside a transaction; the lock is held until the
	// transaction completes, serializing concurrent balance mutations.
	GetAccountForUpdate(ctx context.Context, q DBExecutor, id int64) (*domain.Account, error)
	// SetMainBalance writes the account's committed balance.
	SetMainBalance(ctx context.Context, q DBExecutor, id int64, balance decimal.Decimal) error
}
