// internal/service/insight_service.go
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

// maxCachedInsights caps the insight cache per account.
const maxCachedInsights = 5

// InsightService defines the interface for the rule-derived insight feed.
type InsightService interface {
	// GetInsights returns the cached feed, generating it first when empty.
	GetInsights(ctx context.Context, userID int64) ([]domain.Insight, error)
	// RefreshInsights regenerates the feed from recent ledger activity
	// and replaces the cache.
	RefreshInsights(ctx context.Context, userID int64) ([]domain.Insight, error)
	GetLatestInsight(ctx context.Context, userID int64) (*domain.Insight, error)
}

// insightService implements the InsightService interface.
type insightService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	insightRepo     repository.InsightRepository
	transactionRepo repository.TransactionRepository
	goalRepo        repository.GoalRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewInsightService creates a new instance of InsightService.
func NewInsightService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	insightRepo repository.InsightRepository,
	transactionRepo repository.TransactionRepository,
	goalRepo repository.GoalRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) InsightService {
	return &insightService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		insightRepo:     insightRepo,
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// GetInsights returns the cached feed, generating it first when empty.
func (s *insightService) GetInsights(ctx context.Context, userID int64) ([]domain.Insight, error) {
	insights, err := s.insightRepo.ListInsights(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get insights: %w", err)
	}
	if len(insights) > 0 {
		return insights, nil
	}
	return s.RefreshInsights(ctx, userID)
}

// RefreshInsights regenerates the feed and replaces the cache atomically.
func (s *insightService) RefreshInsights(ctx context.Context, userID int64) ([]domain.Insight, error) {
	now := time.Now()
	// Window covering this calendar month and the whole previous one.
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)

	transactions, err := s.transactionRepo.ListSince(ctx, s.dbExecutor, userID, since)
	if err != nil {
		return nil, fmt.Errorf("refresh insights: failed to list transactions: %w", err)
	}
	goals, err := s.goalRepo.ListActiveGoals(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("refresh insights: failed to list goals: %w", err)
	}

	insights := domain.GenerateInsights(transactions, goals, now)
	if len(insights) > maxCachedInsights {
		insights = insights[:maxCachedInsights]
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("refresh insights: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("refresh insights: transaction controller does not implement DBExecutor")
	}

	if err := s.insightRepo.ReplaceInsights(ctx, txExecutor, userID, insights); err != nil {
		return nil, fmt.Errorf("refresh insights: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("refresh insights: failed to commit transaction: %w", err)
	}
	return insights, nil
}

// GetLatestInsight returns the most recent cached insight, or ErrNotFound.
func (s *insightService) GetLatestInsight(ctx context.Context, userID int64) (*domain.Insight, error) {
	insight, err := s.insightRepo.GetLatestInsight(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("get latest insight: %w", err)
	}
	return insight, nil
}
