// internal/service/reward_service.go
package service

import (
	"context"
	"fmt"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
	"kumbara-api/pkg/db"
)

// RewardService defines the interface for the reward catalog and
// point redemptions.
type RewardService interface {
	ListRewards(ctx context.Context) ([]domain.Reward, error)
	// Redeem spends points on a reward. Fails with ErrInsufficientPoints
	// when the cost exceeds the available balance.
	Redeem(ctx context.Context, userID, rewardID int64) (*domain.RewardRedemption, *domain.PointsAccount, error)
	ListRedemptions(ctx context.Context, userID int64) ([]domain.RewardRedemption, error)
}

// rewardService implements the RewardService interface.
type rewardService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	rewardRepo repository.RewardRepository
	pointsRepo repository.PointsRepository
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewRewardService creates a new instance of RewardService.
func NewRewardService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	rewardRepo repository.RewardRepository,
	pointsRepo repository.PointsRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) RewardService {
	return &rewardService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		rewardRepo: rewardRepo,
		pointsRepo: pointsRepo,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// ListRewards retrieves the active catalog, cheapest first.
func (s *rewardService) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	rewards, err := s.rewardRepo.ListActiveRewards(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	return rewards, nil
}

// Redeem spends points on a reward under the points row's exclusive
// lock, so concurrent redemptions cannot overspend.
func (s *rewardService) Redeem(ctx context.Context, userID, rewardID int64) (*domain.RewardRedemption, *domain.PointsAccount, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("redeem: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("redeem: transaction controller does not implement DBExecutor")
	}

	reward, err := s.rewardRepo.GetActiveReward(ctx, txExecutor, rewardID)
	if err != nil {
		return nil, nil, fmt.Errorf("redeem: failed to get reward %d: %w", rewardID, err)
	}

	points, err := s.pointsRepo.GetPointsForUpdate(ctx, txExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil, util.ErrInsufficientPoints
		}
		return nil, nil, fmt.Errorf("redeem: failed to lock points row: %w", err)
	}

	if err := points.Redeem(reward.PointsCost); err != nil {
		return nil, nil, err
	}
	if err := s.pointsRepo.UpdatePoints(ctx, txExecutor, points); err != nil {
		return nil, nil, fmt.Errorf("redeem: failed to update points: %w", err)
	}

	redemption := domain.NewRewardRedemption(userID, rewardID, reward.PointsCost)
	if err := s.rewardRepo.CreateRedemption(ctx, txExecutor, redemption); err != nil {
		return nil, nil, fmt.Errorf("redeem: failed to create redemption: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("redeem: failed to commit transaction: %w", err)
	}
	return redemption, points, nil
}

// ListRedemptions retrieves the account's redemption history.
func (s *rewardService) ListRedemptions(ctx context.Context, userID int64) ([]domain.RewardRedemption, error) {
	redemptions, err := s.rewardRepo.ListRedemptions(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	return redemptions, nil
}
