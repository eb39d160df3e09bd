// internal/repository/social_repo.go
package repository

import (
	"context"

	"kumbara-api/internal/domain"
)

// SocialRepository defines the interface for groups, challenges, group
// expenses and debt splits.
type SocialRepository interface {
	ListGroupsForUser(ctx context.Context, q DBExecutor, userID int64) ([]domain.Group, error)
	CreateGroup(ctx context.Context, q DBExecutor, group *domain.Group) error
	// AddGroupMember inserts the membership; adding an existing member is a no-op.
	AddGroupMember(ctx context.Context, q DBExecutor, groupID, userID int64, role string) error
	ListGroupMemberIDs(ctx context.Context, q DBExecutor, groupID int64) ([]int64, error)
	IsGroupMember(ctx context.Context, q DBExecutor, groupID, userID int64) (bool, error)

	ListChallenges(ctx context.Context, q DBExecutor, userID int64) ([]domain.Challenge, error)
	ListActiveChallenges(ctx context.Context, q DBExecutor, userID int64, limit int) ([]domain.Challenge, error)
	CreateChallenge(ctx context.Context, q DBExecutor, challenge *domain.Challenge) error

	CreateGroupExpense(ctx context.Context, q DBExecutor, expense *domain.GroupExpense) error
	CreateDebtSplits(ctx context.Context, q DBExecutor, splits []domain.DebtSplit) error
	ListUnsettledDebts(ctx context.Context, q DBExecutor, groupID int64) ([]domain.DebtSplit, error)
	// SettleDebt flips the settlement flag; the only permitted DebtSplit mutation.
	SettleDebt(ctx context.Context, q DBExecutor, debtID int64) error
	// ListContributions sums each member's paid group expenses, including
	// members who paid nothing.
	ListContributions(ctx context.Context, q DBExecutor, groupID int64) ([]domain.Contribution, error)
}
