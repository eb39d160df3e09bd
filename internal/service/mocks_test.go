// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController. It embeds
// MockDBExecutor so it also satisfies repository.DBExecutor inside services.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	args := m.Called(ctx, q, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Account, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.Account, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Account, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SetMainBalance(ctx context.Context, q repository.DBExecutor, id int64, balance decimal.Decimal) error {
	args := m.Called(ctx, q, id, balance)
	return args.Error(0)
}

// MockGoalRepository is a mock implementation of repository.GoalRepository.
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) CreateGoal(ctx context.Context, q repository.DBExecutor, goal *domain.Goal) error {
	args := m.Called(ctx, q, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) ListActiveGoals(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Goal, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) GetGoalByID(ctx context.Context, q repository.DBExecutor, userID, goalID int64) (*domain.Goal, error) {
	args := m.Called(ctx, q, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) UpdateGoal(ctx context.Context, q repository.DBExecutor, userID, goalID int64, patch repository.GoalPatch) (*domain.Goal, error) {
	args := m.Called(ctx, q, userID, goalID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) DeactivateGoal(ctx context.Context, q repository.DBExecutor, userID, goalID int64) error {
	args := m.Called(ctx, q, userID, goalID)
	return args.Error(0)
}

func (m *MockGoalRepository) AddToGoalAmount(ctx context.Context, q repository.DBExecutor, goalID int64, delta decimal.Decimal) error {
	args := m.Called(ctx, q, goalID, delta)
	return args.Error(0)
}

func (m *MockGoalRepository) ListActiveSplitRules(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.AutomaticSplitRule, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.AutomaticSplitRule), args.Error(1)
}

func (m *MockGoalRepository) UpsertSplitRule(ctx context.Context, q repository.DBExecutor, rule *domain.AutomaticSplitRule) error {
	args := m.Called(ctx, q, rule)
	return args.Error(0)
}

func (m *MockGoalRepository) GetActiveRoundUpRule(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.RoundUpRule, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoundUpRule), args.Error(1)
}

func (m *MockGoalRepository) ListActiveRoundUpRules(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.RoundUpRule, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.RoundUpRule), args.Error(1)
}

func (m *MockGoalRepository) CreateRoundUpRule(ctx context.Context, q repository.DBExecutor, rule *domain.RoundUpRule) error {
	args := m.Called(ctx, q, rule)
	return args.Error(0)
}

func (m *MockGoalRepository) ListActiveNGOs(ctx context.Context, q repository.DBExecutor) ([]domain.NGO, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.NGO), args.Error(1)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, userID, limit)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListSince(ctx context.Context, q repository.DBExecutor, userID int64, since time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, userID, since)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockPointsRepository is a mock implementation of repository.PointsRepository.
type MockPointsRepository struct {
	mock.Mock
}

func (m *MockPointsRepository) EnsurePoints(ctx context.Context, q repository.DBExecutor, userID int64) error {
	args := m.Called(ctx, q, userID)
	return args.Error(0)
}

func (m *MockPointsRepository) GetPoints(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.PointsAccount, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointsAccount), args.Error(1)
}

func (m *MockPointsRepository) GetPointsForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.PointsAccount, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointsAccount), args.Error(1)
}

func (m *MockPointsRepository) UpdatePoints(ctx context.Context, q repository.DBExecutor, points *domain.PointsAccount) error {
	args := m.Called(ctx, q, points)
	return args.Error(0)
}

// MockEngagementRepository is a mock implementation of repository.EngagementRepository.
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) ListActiveReels(ctx context.Context, q repository.DBExecutor) ([]domain.Reel, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Reel), args.Error(1)
}

func (m *MockEngagementRepository) GetActiveReel(ctx context.Context, q repository.DBExecutor, reelID int64) (*domain.Reel, error) {
	args := m.Called(ctx, q, reelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reel), args.Error(1)
}

func (m *MockEngagementRepository) GetReelView(ctx context.Context, q repository.DBExecutor, userID, reelID int64) (*domain.ReelView, error) {
	args := m.Called(ctx, q, userID, reelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReelView), args.Error(1)
}

func (m *MockEngagementRepository) UpsertReelView(ctx context.Context, q repository.DBExecutor, view *domain.ReelView) error {
	args := m.Called(ctx, q, view)
	return args.Error(0)
}

func (m *MockEngagementRepository) ListReelViews(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.ReelView, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.ReelView), args.Error(1)
}

func (m *MockEngagementRepository) ListActiveTasks(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Task, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockEngagementRepository) GetActiveTask(ctx context.Context, q repository.DBExecutor, taskID int64) (*domain.Task, error) {
	args := m.Called(ctx, q, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockEngagementRepository) HasCompletedTask(ctx context.Context, q repository.DBExecutor, userID, taskID int64) (bool, error) {
	args := m.Called(ctx, q, userID, taskID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) CreateTaskCompletion(ctx context.Context, q repository.DBExecutor, completion *domain.TaskCompletion) error {
	args := m.Called(ctx, q, completion)
	return args.Error(0)
}

// MockRewardRepository is a mock implementation of repository.RewardRepository.
type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) ListActiveRewards(ctx context.Context, q repository.DBExecutor) ([]domain.Reward, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Reward), args.Error(1)
}

func (m *MockRewardRepository) GetActiveReward(ctx context.Context, q repository.DBExecutor, rewardID int64) (*domain.Reward, error) {
	args := m.Called(ctx, q, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}

func (m *MockRewardRepository) CreateRedemption(ctx context.Context, q repository.DBExecutor, redemption *domain.RewardRedemption) error {
	args := m.Called(ctx, q, redemption)
	return args.Error(0)
}

func (m *MockRewardRepository) ListRedemptions(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.RewardRedemption, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.RewardRedemption), args.Error(1)
}

// MockSocialRepository is a mock implementation of repository.SocialRepository.
type MockSocialRepository struct {
	mock.Mock
}

func (m *MockSocialRepository) ListGroupsForUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Group, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockSocialRepository) CreateGroup(ctx context.Context, q repository.DBExecutor, group *domain.Group) error {
	args := m.Called(ctx, q, group)
	return args.Error(0)
}

func (m *MockSocialRepository) AddGroupMember(ctx context.Context, q repository.DBExecutor, groupID, userID int64, role string) error {
	args := m.Called(ctx, q, groupID, userID, role)
	return args.Error(0)
}

func (m *MockSocialRepository) ListGroupMemberIDs(ctx context.Context, q repository.DBExecutor, groupID int64) ([]int64, error) {
	args := m.Called(ctx, q, groupID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockSocialRepository) IsGroupMember(ctx context.Context, q repository.DBExecutor, groupID, userID int64) (bool, error) {
	args := m.Called(ctx, q, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepository) ListChallenges(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Challenge, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.Challenge), args.Error(1)
}

func (m *MockSocialRepository) ListActiveChallenges(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.Challenge, error) {
	args := m.Called(ctx, q, userID, limit)
	return args.Get(0).([]domain.Challenge), args.Error(1)
}

func (m *MockSocialRepository) CreateChallenge(ctx context.Context, q repository.DBExecutor, challenge *domain.Challenge) error {
	args := m.Called(ctx, q, challenge)
	return args.Error(0)
}

func (m *MockSocialRepository) CreateGroupExpense(ctx context.Context, q repository.DBExecutor, expense *domain.GroupExpense) error {
	args := m.Called(ctx, q, expense)
	return args.Error(0)
}

func (m *MockSocialRepository) CreateDebtSplits(ctx context.Context, q repository.DBExecutor, splits []domain.DebtSplit) error {
	args := m.Called(ctx, q, splits)
	return args.Error(0)
}

func (m *MockSocialRepository) ListUnsettledDebts(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.DebtSplit, error) {
	args := m.Called(ctx, q, groupID)
	return args.Get(0).([]domain.DebtSplit), args.Error(1)
}

func (m *MockSocialRepository) SettleDebt(ctx context.Context, q repository.DBExecutor, debtID int64) error {
	args := m.Called(ctx, q, debtID)
	return args.Error(0)
}

func (m *MockSocialRepository) ListContributions(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.Contribution, error) {
	args := m.Called(ctx, q, groupID)
	return args.Get(0).([]domain.Contribution), args.Error(1)
}

// MockInsightRepository is a mock implementation of repository.InsightRepository.
type MockInsightRepository struct {
	mock.Mock
}

func (m *MockInsightRepository) ReplaceInsights(ctx context.Context, q repository.DBExecutor, userID int64, insights []domain.Insight) error {
	args := m.Called(ctx, q, userID, insights)
	return args.Error(0)
}

func (m *MockInsightRepository) ListInsights(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Insight, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.Insight), args.Error(1)
}

func (m *MockInsightRepository) GetLatestInsight(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Insight, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Insight), args.Error(1)
}
