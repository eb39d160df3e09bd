// internal/service/dashboard_service.go
package service

import (
	"context"
	"fmt"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
)

// recentTransactionCount is how many ledger entries the dashboard shows.
const recentTransactionCount = 5

// Dashboard aggregates the home-screen view of an account.
type Dashboard struct {
	Account            *domain.Account      `json:"account"`
	Goals              []domain.Goal        `json:"goals"`
	Points             *domain.PointsAccount `json:"points"`
	RecentTransactions []domain.Transaction `json:"recent_transactions"`
	ActiveChallenges   []domain.Challenge   `json:"active_challenges"`
	LatestInsight      *domain.Insight      `json:"latest_insight,omitempty"`
}

// DashboardService defines the interface for the aggregated home view.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID int64) (*Dashboard, error)
}

// dashboardService implements the DashboardService interface.
type dashboardService struct {
	dbExecutor      repository.DBExecutor
	accountRepo     repository.AccountRepository
	goalRepo        repository.GoalRepository
	pointsRepo      repository.PointsRepository
	transactionRepo repository.TransactionRepository
	socialRepo      repository.SocialRepository
	insightRepo     repository.InsightRepository
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	goalRepo repository.GoalRepository,
	pointsRepo repository.PointsRepository,
	transactionRepo repository.TransactionRepository,
	socialRepo repository.SocialRepository,
	insightRepo repository.InsightRepository,
) DashboardService {
	return &dashboardService{
		dbExecutor:      dbExecutor,
		accountRepo:     accountRepo,
		goalRepo:        goalRepo,
		pointsRepo:      pointsRepo,
		transactionRepo: transactionRepo,
		socialRepo:      socialRepo,
		insightRepo:     insightRepo,
	}
}

// GetDashboard assembles the account's home view with plain reads.
func (s *dashboardService) GetDashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to get account %d: %w", userID, err)
	}

	goals, err := s.goalRepo.ListActiveGoals(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to list goals: %w", err)
	}

	points, err := s.pointsRepo.GetPoints(ctx, s.dbExecutor, userID)
	if err != nil {
		if !util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("dashboard: failed to get points: %w", err)
		}
		points = &domain.PointsAccount{UserID: userID}
	}

	recent, err := s.transactionRepo.ListByUserID(ctx, s.dbExecutor, userID, recentTransactionCount)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to list transactions: %w", err)
	}

	challenges, err := s.socialRepo.ListActiveChallenges(ctx, s.dbExecutor, userID, 3)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to list challenges: %w", err)
	}

	latest, err := s.insightRepo.GetLatestInsight(ctx, s.dbExecutor, userID)
	if err != nil && !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("dashboard: failed to get latest insight: %w", err)
	}

	return &Dashboard{
		Account:            account,
		Goals:              goals,
		Points:             points,
		RecentTransactions: recent,
		ActiveChallenges:   challenges,
		LatestInsight:      latest,
	}, nil
}
