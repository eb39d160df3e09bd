// internal/service/engagement_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
	"kumbara-api/pkg/db"
)

// EngagementService defines the interface for the point-earning
// activities (tasks and reels) and the points summary.
type EngagementService interface {
	GetPoints(ctx context.Context, userID int64) (*domain.PointsAccount, error)
	ListTasks(ctx context.Context, userID int64) ([]domain.Task, error)
	// CompleteTask awards a task's points exactly once; a repeat attempt
	// fails with ErrAlreadyCompleted.
	CompleteTask(ctx context.Context, userID, taskID int64) (*domain.TaskCompletion, *domain.PointsAccount, error)
	ListReels(ctx context.Context) ([]domain.Reel, error)
	// WatchReel records a watch. The first watch earns the reel's points;
	// repeats succeed with a zero award and only raise the watched-seconds
	// high-water mark.
	WatchReel(ctx context.Context, userID, reelID int64, watchedSeconds int) (*domain.ReelView, *domain.PointsAccount, error)
	ListReelViews(ctx context.Context, userID int64) ([]domain.ReelView, error)
}

// engagementService implements the EngagementService interface.
type engagementService struct {
	dbBeginner     db.DBTxBeginner
	dbExecutor     repository.DBExecutor
	engagementRepo repository.EngagementRepository
	pointsRepo     repository.PointsRepository
	beginTx        db.BeginTxFunc
	commitTx       db.CommitTxFunc
	rollbackTx     db.RollbackTxFunc
}

// NewEngagementService creates a new instance of EngagementService.
func NewEngagementService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	engagementRepo repository.EngagementRepository,
	pointsRepo repository.PointsRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) EngagementService {
	return &engagementService{
		dbBeginner:     dbBeginner,
		dbExecutor:     dbExecutor,
		engagementRepo: engagementRepo,
		pointsRepo:     pointsRepo,
		beginTx:        beginTx,
		commitTx:       commitTx,
		rollbackTx:     rollbackTx,
	}
}

// GetPoints retrieves the account's gamification state, creating the
// zero row for accounts that never earned.
func (s *engagementService) GetPoints(ctx context.Context, userID int64) (*domain.PointsAccount, error) {
	points, err := s.pointsRepo.GetPoints(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return &domain.PointsAccount{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get points: %w", err)
	}
	return points, nil
}

// ListTasks retrieves active tasks flagged with the account's completion state.
func (s *engagementService) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	tasks, err := s.engagementRepo.ListActiveTasks(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CompleteTask records the completion and awards the task's points.
func (s *engagementService) CompleteTask(ctx context.Context, userID, taskID int64) (*domain.TaskCompletion, *domain.PointsAccount, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("complete task: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("complete task: transaction controller does not implement DBExecutor")
	}

	task, err := s.engagementRepo.GetActiveTask(ctx, txExecutor, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("complete task: failed to get task %d: %w", taskID, err)
	}

	completion := &domain.TaskCompletion{
		UserID:       userID,
		TaskID:       taskID,
		PointsEarned: task.PointsReward,
	}
	if err := s.engagementRepo.CreateTaskCompletion(ctx, txExecutor, completion); err != nil {
		if util.IsError(err, util.ErrAlreadyCompleted) {
			return nil, nil, util.ErrAlreadyCompleted
		}
		return nil, nil, fmt.Errorf("complete task: failed to record completion: %w", err)
	}

	points, err := s.award(ctx, txExecutor, userID, task.PointsReward)
	if err != nil {
		return nil, nil, fmt.Errorf("complete task: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("complete task: failed to commit transaction: %w", err)
	}
	return completion, points, nil
}

// ListReels retrieves the active reel catalog.
func (s *engagementService) ListReels(ctx context.Context) ([]domain.Reel, error) {
	reels, err := s.engagementRepo.ListActiveReels(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list reels: %w", err)
	}
	return reels, nil
}

// ListReelViews retrieves the account's watch history.
func (s *engagementService) ListReelViews(ctx context.Context, userID int64) ([]domain.ReelView, error) {
	views, err := s.engagementRepo.ListReelViews(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list reel views: %w", err)
	}
	return views, nil
}

// WatchReel records a watch and awards the reel's points on the first view.
func (s *engagementService) WatchReel(ctx context.Context, userID, reelID int64, watchedSeconds int) (*domain.ReelView, *domain.PointsAccount, error) {
	if watchedSeconds < 0 {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("watch reel: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("watch reel: transaction controller does not implement DBExecutor")
	}

	reel, err := s.engagementRepo.GetActiveReel(ctx, txExecutor, reelID)
	if err != nil {
		return nil, nil, fmt.Errorf("watch reel: failed to get reel %d: %w", reelID, err)
	}

	firstWatch := false
	if _, err := s.engagementRepo.GetReelView(ctx, txExecutor, userID, reelID); err != nil {
		if !util.IsError(err, util.ErrNotFound) {
			return nil, nil, fmt.Errorf("watch reel: failed to get view record: %w", err)
		}
		firstWatch = true
	}

	earned := 0
	if firstWatch {
		earned = reel.PointsReward
	}
	view := &domain.ReelView{
		UserID:         userID,
		ReelID:         reelID,
		WatchedSeconds: watchedSeconds,
		PointsEarned:   earned,
	}
	if err := s.engagementRepo.UpsertReelView(ctx, txExecutor, view); err != nil {
		return nil, nil, fmt.Errorf("watch reel: failed to record view: %w", err)
	}

	var points *domain.PointsAccount
	if firstWatch {
		points, err = s.award(ctx, txExecutor, userID, reel.PointsReward)
		if err != nil {
			return nil, nil, fmt.Errorf("watch reel: %w", err)
		}
	} else {
		points, err = s.pointsRepo.GetPoints(ctx, txExecutor, userID)
		if err != nil && !util.IsError(err, util.ErrNotFound) {
			return nil, nil, fmt.Errorf("watch reel: failed to get points: %w", err)
		}
		if points == nil {
			points = &domain.PointsAccount{UserID: userID}
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("watch reel: failed to commit transaction: %w", err)
	}
	return view, points, nil
}

// award grants points under the points row's exclusive lock. Must run
// inside the caller's transaction, after the activity's idempotency
// record has been written.
func (s *engagementService) award(ctx context.Context, q repository.DBExecutor, userID int64, amount int) (*domain.PointsAccount, error) {
	if err := s.pointsRepo.EnsurePoints(ctx, q, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure points row: %w", err)
	}
	points, err := s.pointsRepo.GetPointsForUpdate(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock points row: %w", err)
	}
	points.Award(amount, time.Now().UTC())
	if err := s.pointsRepo.UpdatePoints(ctx, q, points); err != nil {
		return nil, fmt.Errorf("failed to update points: %w", err)
	}
	return points, nil
}
