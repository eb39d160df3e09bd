// internal/service/social_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
	"kumbara-api/pkg/db"
)

// SocialService defines the interface for groups, peer challenges,
// shared expenses and debt settlement.
type SocialService interface {
	CreateGroup(ctx context.Context, userID int64, name, groupType string, target *decimal.Decimal, memberIDs []int64) (*domain.Group, error)
	ListGroups(ctx context.Context, userID int64) ([]domain.Group, error)
	AddMember(ctx context.Context, userID, groupID int64, memberEmail string) error

	ListChallenges(ctx context.Context, userID int64) ([]domain.Challenge, error)
	CreateChallenge(ctx context.Context, userID, toUserID int64, challengeType string, target decimal.Decimal, endDate time.Time) (*domain.Challenge, error)

	// AddExpense records a paid-by-one expense and its per-member debts.
	// Equal splits exclude the payer; custom splits must sum to the total.
	AddExpense(ctx context.Context, userID, groupID int64, amount decimal.Decimal, description, splitType string, customSplits []domain.CustomSplitInput) (*domain.GroupExpense, []domain.DebtSplit, error)
	ListDebts(ctx context.Context, userID, groupID int64) ([]domain.DebtSplit, error)
	SettleDebt(ctx context.Context, userID, debtID int64) error
	// GetSettlementPlan nets the group's contributions into a minimal
	// set of pairwise transfers.
	GetSettlementPlan(ctx context.Context, userID, groupID int64) ([]domain.Transfer, []domain.Contribution, error)
}

// socialService implements the SocialService interface.
type socialService struct {
	dbBeginner  db.DBTxBeginner
	dbExecutor  repository.DBExecutor
	socialRepo  repository.SocialRepository
	accountRepo repository.AccountRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewSocialService creates a new instance of SocialService.
func NewSocialService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	socialRepo repository.SocialRepository,
	accountRepo repository.AccountRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) SocialService {
	return &socialService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		socialRepo:  socialRepo,
		accountRepo: accountRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// CreateGroup creates a group with the creator as admin plus any
// initial members.
func (s *socialService) CreateGroup(ctx context.Context, userID int64, name, groupType string, target *decimal.Decimal, memberIDs []int64) (*domain.Group, error) {
	if name == "" || groupType == "" {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create group: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create group: transaction controller does not implement DBExecutor")
	}

	group := &domain.Group{Name: name, Type: groupType, CreatedBy: userID, TargetAmount: target}
	if err := s.socialRepo.CreateGroup(ctx, txExecutor, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	if err := s.socialRepo.AddGroupMember(ctx, txExecutor, group.ID, userID, "admin"); err != nil {
		return nil, fmt.Errorf("create group: failed to add creator: %w", err)
	}
	for _, memberID := range memberIDs {
		if memberID == userID {
			continue
		}
		if err := s.socialRepo.AddGroupMember(ctx, txExecutor, group.ID, memberID, "member"); err != nil {
			return nil, fmt.Errorf("create group: failed to add member %d: %w", memberID, err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create group: failed to commit transaction: %w", err)
	}
	return group, nil
}

// ListGroups retrieves the groups the account belongs to.
func (s *socialService) ListGroups(ctx context.Context, userID int64) ([]domain.Group, error) {
	groups, err := s.socialRepo.ListGroupsForUser(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// AddMember adds an account, looked up by email, to a group the caller
// belongs to.
func (s *socialService) AddMember(ctx context.Context, userID, groupID int64, memberEmail string) error {
	if err := s.requireMembership(ctx, s.dbExecutor, groupID, userID); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	account, err := s.accountRepo.GetAccountByEmail(ctx, s.dbExecutor, memberEmail)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrNotFound
		}
		return fmt.Errorf("add member: failed to look up account: %w", err)
	}
	if err := s.socialRepo.AddGroupMember(ctx, s.dbExecutor, groupID, account.ID, "member"); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// ListChallenges retrieves the account's sent and received challenges.
func (s *socialService) ListChallenges(ctx context.Context, userID int64) ([]domain.Challenge, error) {
	challenges, err := s.socialRepo.ListChallenges(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return challenges, nil
}

// CreateChallenge issues a savings challenge to another account.
func (s *socialService) CreateChallenge(ctx context.Context, userID, toUserID int64, challengeType string, target decimal.Decimal, endDate time.Time) (*domain.Challenge, error) {
	if challengeType == "" || toUserID == userID || target.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}
	if !endDate.After(time.Now()) {
		return nil, util.ErrInvalidInput
	}
	if _, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, toUserID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("create challenge: failed to get account %d: %w", toUserID, err)
	}

	challenge := &domain.Challenge{
		FromUserID:  userID,
		ToUserID:    toUserID,
		Type:        challengeType,
		TargetValue: target,
		EndDate:     endDate,
	}
	if err := s.socialRepo.CreateChallenge(ctx, s.dbExecutor, challenge); err != nil {
		return nil, fmt.Errorf("create challenge: %w", err)
	}
	return challenge, nil
}

// AddExpense records a group expense and splits it into per-member debts.
func (s *socialService) AddExpense(ctx context.Context, userID, groupID int64, amount decimal.Decimal, description, splitType string, customSplits []domain.CustomSplitInput) (*domain.GroupExpense, []domain.DebtSplit, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidAmount
	}
	if splitType != domain.SplitTypeEqual && splitType != domain.SplitTypeCustom {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("add expense: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("add expense: transaction controller does not implement DBExecutor")
	}

	if err := s.requireMembership(ctx, txExecutor, groupID, userID); err != nil {
		return nil, nil, fmt.Errorf("add expense: %w", err)
	}

	expense := &domain.GroupExpense{
		GroupID:      groupID,
		PaidByUserID: userID,
		Amount:       amount,
		Description:  description,
		SplitType:    splitType,
	}
	if err := s.socialRepo.CreateGroupExpense(ctx, txExecutor, expense); err != nil {
		return nil, nil, fmt.Errorf("add expense: %w", err)
	}

	var splits []domain.DebtSplit
	switch splitType {
	case domain.SplitTypeEqual:
		memberIDs, err := s.socialRepo.ListGroupMemberIDs(ctx, txExecutor, groupID)
		if err != nil {
			return nil, nil, fmt.Errorf("add expense: failed to list members: %w", err)
		}
		splits = domain.SplitEqual(expense.ID, amount, userID, memberIDs)
	case domain.SplitTypeCustom:
		splits, err = domain.SplitCustom(expense.ID, amount, customSplits)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := s.socialRepo.CreateDebtSplits(ctx, txExecutor, splits); err != nil {
		return nil, nil, fmt.Errorf("add expense: failed to create debt splits: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("add expense: failed to commit transaction: %w", err)
	}
	return expense, splits, nil
}

// ListDebts retrieves a group's open debts for a member.
func (s *socialService) ListDebts(ctx context.Context, userID, groupID int64) ([]domain.DebtSplit, error) {
	if err := s.requireMembership(ctx, s.dbExecutor, groupID, userID); err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	debts, err := s.socialRepo.ListUnsettledDebts(ctx, s.dbExecutor, groupID)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return debts, nil
}

// SettleDebt marks a debt as paid.
func (s *socialService) SettleDebt(ctx context.Context, userID, debtID int64) error {
	if err := s.socialRepo.SettleDebt(ctx, s.dbExecutor, debtID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrNotFound
		}
		return fmt.Errorf("settle debt %d: %w", debtID, err)
	}
	return nil
}

// GetSettlementPlan nets each member's paid contributions against the
// group average and returns the resulting pairwise transfers.
func (s *socialService) GetSettlementPlan(ctx context.Context, userID, groupID int64) ([]domain.Transfer, []domain.Contribution, error) {
	if err := s.requireMembership(ctx, s.dbExecutor, groupID, userID); err != nil {
		return nil, nil, fmt.Errorf("settlement plan: %w", err)
	}
	contributions, err := s.socialRepo.ListContributions(ctx, s.dbExecutor, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("settlement plan: failed to list contributions: %w", err)
	}
	return domain.NetDebts(contributions), contributions, nil
}

func (s *socialService) requireMembership(ctx context.Context, q repository.DBExecutor, groupID, userID int64) error {
	member, err := s.socialRepo.IsGroupMember(ctx, q, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return util.ErrUnauthorized
	}
	return nil
}
