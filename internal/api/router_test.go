// internal/api/router_test.go
package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kumbara-api/internal/api"
	"kumbara-api/internal/api/handler"
	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/service"
	"kumbara-api/internal/util"
)

// --- Service mocks ---

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, email, password, fullName string, phone *string) (*domain.Account, string, error) {
	args := m.Called(ctx, email, password, fullName, phone)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	args := m.Called(ctx, email, password)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.String(1), args.Error(2)
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID int64) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAuthService) VerifyToken(tokenString string) (int64, error) {
	args := m.Called(tokenString)
	return args.Get(0).(int64), args.Error(1)
}

type MockTransactionService struct{ mock.Mock }

func (m *MockTransactionService) AddIncome(ctx context.Context, userID int64, amount decimal.Decimal, category, description *string) (*domain.Account, *domain.IncomePlan, error) {
	args := m.Called(ctx, userID, amount, category, description)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	var plan *domain.IncomePlan
	if args.Get(1) != nil {
		plan = args.Get(1).(*domain.IncomePlan)
	}
	return account, plan, args.Error(2)
}

func (m *MockTransactionService) AddExpense(ctx context.Context, userID int64, amount decimal.Decimal, category, description *string) (*domain.Account, *domain.ExpensePlan, error) {
	args := m.Called(ctx, userID, amount, category, description)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	var plan *domain.ExpensePlan
	if args.Get(1) != nil {
		plan = args.Get(1).(*domain.ExpensePlan)
	}
	return account, plan, args.Error(2)
}

func (m *MockTransactionService) GetHistory(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	var history []domain.Transaction
	if args.Get(0) != nil {
		history = args.Get(0).([]domain.Transaction)
	}
	return history, args.Error(1)
}

type MockGoalService struct{ mock.Mock }

func (m *MockGoalService) CreateGoal(ctx context.Context, userID int64, name, goalType string, target *decimal.Decimal, icon *string, color string) (*domain.Goal, error) {
	args := m.Called(ctx, userID, name, goalType, target, icon, color)
	var goal *domain.Goal
	if args.Get(0) != nil {
		goal = args.Get(0).(*domain.Goal)
	}
	return goal, args.Error(1)
}

func (m *MockGoalService) ListGoals(ctx context.Context, userID int64) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	var goals []domain.Goal
	if args.Get(0) != nil {
		goals = args.Get(0).([]domain.Goal)
	}
	return goals, args.Error(1)
}

func (m *MockGoalService) UpdateGoal(ctx context.Context, userID, goalID int64, patch repository.GoalPatch) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID, patch)
	var goal *domain.Goal
	if args.Get(0) != nil {
		goal = args.Get(0).(*domain.Goal)
	}
	return goal, args.Error(1)
}

func (m *MockGoalService) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	args := m.Called(ctx, userID, goalID)
	return args.Error(0)
}

func (m *MockGoalService) SetSplitRule(ctx context.Context, userID, goalID int64, percentage decimal.Decimal, priority int) (*domain.AutomaticSplitRule, error) {
	args := m.Called(ctx, userID, goalID, percentage, priority)
	var rule *domain.AutomaticSplitRule
	if args.Get(0) != nil {
		rule = args.Get(0).(*domain.AutomaticSplitRule)
	}
	return rule, args.Error(1)
}

func (m *MockGoalService) ListSplitRules(ctx context.Context, userID int64) ([]domain.AutomaticSplitRule, error) {
	args := m.Called(ctx, userID)
	var rules []domain.AutomaticSplitRule
	if args.Get(0) != nil {
		rules = args.Get(0).([]domain.AutomaticSplitRule)
	}
	return rules, args.Error(1)
}

func (m *MockGoalService) CreateRoundUpRule(ctx context.Context, userID int64, rule *domain.RoundUpRule) (*domain.RoundUpRule, error) {
	args := m.Called(ctx, userID, rule)
	var created *domain.RoundUpRule
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.RoundUpRule)
	}
	return created, args.Error(1)
}

func (m *MockGoalService) ListRoundUpRules(ctx context.Context, userID int64) ([]domain.RoundUpRule, error) {
	args := m.Called(ctx, userID)
	var rules []domain.RoundUpRule
	if args.Get(0) != nil {
		rules = args.Get(0).([]domain.RoundUpRule)
	}
	return rules, args.Error(1)
}

func (m *MockGoalService) ListNGOs(ctx context.Context) ([]domain.NGO, error) {
	args := m.Called(ctx)
	var ngos []domain.NGO
	if args.Get(0) != nil {
		ngos = args.Get(0).([]domain.NGO)
	}
	return ngos, args.Error(1)
}

type MockEngagementService struct{ mock.Mock }

func (m *MockEngagementService) GetPoints(ctx context.Context, userID int64) (*domain.PointsAccount, error) {
	args := m.Called(ctx, userID)
	var points *domain.PointsAccount
	if args.Get(0) != nil {
		points = args.Get(0).(*domain.PointsAccount)
	}
	return points, args.Error(1)
}

func (m *MockEngagementService) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	var tasks []domain.Task
	if args.Get(0) != nil {
		tasks = args.Get(0).([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *MockEngagementService) CompleteTask(ctx context.Context, userID, taskID int64) (*domain.TaskCompletion, *domain.PointsAccount, error) {
	args := m.Called(ctx, userID, taskID)
	var completion *domain.TaskCompletion
	if args.Get(0) != nil {
		completion = args.Get(0).(*domain.TaskCompletion)
	}
	var points *domain.PointsAccount
	if args.Get(1) != nil {
		points = args.Get(1).(*domain.PointsAccount)
	}
	return completion, points, args.Error(2)
}

func (m *MockEngagementService) ListReels(ctx context.Context) ([]domain.Reel, error) {
	args := m.Called(ctx)
	var reels []domain.Reel
	if args.Get(0) != nil {
		reels = args.Get(0).([]domain.Reel)
	}
	return reels, args.Error(1)
}

func (m *MockEngagementService) ListReelViews(ctx context.Context, userID int64) ([]domain.ReelView, error) {
	args := m.Called(ctx, userID)
	var views []domain.ReelView
	if args.Get(0) != nil {
		views = args.Get(0).([]domain.ReelView)
	}
	return views, args.Error(1)
}

func (m *MockEngagementService) WatchReel(ctx context.Context, userID, reelID int64, watchedSeconds int) (*domain.ReelView, *domain.PointsAccount, error) {
	args := m.Called(ctx, userID, reelID, watchedSeconds)
	var view *domain.ReelView
	if args.Get(0) != nil {
		view = args.Get(0).(*domain.ReelView)
	}
	var points *domain.PointsAccount
	if args.Get(1) != nil {
		points = args.Get(1).(*domain.PointsAccount)
	}
	return view, points, args.Error(2)
}

type MockRewardService struct{ mock.Mock }

func (m *MockRewardService) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	args := m.Called(ctx)
	var rewards []domain.Reward
	if args.Get(0) != nil {
		rewards = args.Get(0).([]domain.Reward)
	}
	return rewards, args.Error(1)
}

func (m *MockRewardService) Redeem(ctx context.Context, userID, rewardID int64) (*domain.RewardRedemption, *domain.PointsAccount, error) {
	args := m.Called(ctx, userID, rewardID)
	var redemption *domain.RewardRedemption
	if args.Get(0) != nil {
		redemption = args.Get(0).(*domain.RewardRedemption)
	}
	var points *domain.PointsAccount
	if args.Get(1) != nil {
		points = args.Get(1).(*domain.PointsAccount)
	}
	return redemption, points, args.Error(2)
}

func (m *MockRewardService) ListRedemptions(ctx context.Context, userID int64) ([]domain.RewardRedemption, error) {
	args := m.Called(ctx, userID)
	var redemptions []domain.RewardRedemption
	if args.Get(0) != nil {
		redemptions = args.Get(0).([]domain.RewardRedemption)
	}
	return redemptions, args.Error(1)
}

type MockSocialService struct{ mock.Mock }

func (m *MockSocialService) CreateGroup(ctx context.Context, userID int64, name, groupType string, target *decimal.Decimal, memberIDs []int64) (*domain.Group, error) {
	args := m.Called(ctx, userID, name, groupType, target, memberIDs)
	var group *domain.Group
	if args.Get(0) != nil {
		group = args.Get(0).(*domain.Group)
	}
	return group, args.Error(1)
}

func (m *MockSocialService) ListGroups(ctx context.Context, userID int64) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	var groups []domain.Group
	if args.Get(0) != nil {
		groups = args.Get(0).([]domain.Group)
	}
	return groups, args.Error(1)
}

func (m *MockSocialService) AddMember(ctx context.Context, userID, groupID int64, memberEmail string) error {
	args := m.Called(ctx, userID, groupID, memberEmail)
	return args.Error(0)
}

func (m *MockSocialService) ListChallenges(ctx context.Context, userID int64) ([]domain.Challenge, error) {
	args := m.Called(ctx, userID)
	var challenges []domain.Challenge
	if args.Get(0) != nil {
		challenges = args.Get(0).([]domain.Challenge)
	}
	return challenges, args.Error(1)
}

func (m *MockSocialService) CreateChallenge(ctx context.Context, userID, toUserID int64, challengeType string, target decimal.Decimal, endDate time.Time) (*domain.Challenge, error) {
	args := m.Called(ctx, userID, toUserID, challengeType, target, endDate)
	var challenge *domain.Challenge
	if args.Get(0) != nil {
		challenge = args.Get(0).(*domain.Challenge)
	}
	return challenge, args.Error(1)
}

func (m *MockSocialService) AddExpense(ctx context.Context, userID, groupID int64, amount decimal.Decimal, description, splitType string, customSplits []domain.CustomSplitInput) (*domain.GroupExpense, []domain.DebtSplit, error) {
	args := m.Called(ctx, userID, groupID, amount, description, splitType, customSplits)
	var expense *domain.GroupExpense
	if args.Get(0) != nil {
		expense = args.Get(0).(*domain.GroupExpense)
	}
	var splits []domain.DebtSplit
	if args.Get(1) != nil {
		splits = args.Get(1).([]domain.DebtSplit)
	}
	return expense, splits, args.Error(2)
}

func (m *MockSocialService) ListDebts(ctx context.Context, userID, groupID int64) ([]domain.DebtSplit, error) {
	args := m.Called(ctx, userID, groupID)
	var debts []domain.DebtSplit
	if args.Get(0) != nil {
		debts = args.Get(0).([]domain.DebtSplit)
	}
	return debts, args.Error(1)
}

func (m *MockSocialService) SettleDebt(ctx context.Context, userID, debtID int64) error {
	args := m.Called(ctx, userID, debtID)
	return args.Error(0)
}

func (m *MockSocialService) GetSettlementPlan(ctx context.Context, userID, groupID int64) ([]domain.Transfer, []domain.Contribution, error) {
	args := m.Called(ctx, userID, groupID)
	var transfers []domain.Transfer
	if args.Get(0) != nil {
		transfers = args.Get(0).([]domain.Transfer)
	}
	var contributions []domain.Contribution
	if args.Get(1) != nil {
		contributions = args.Get(1).([]domain.Contribution)
	}
	return transfers, contributions, args.Error(2)
}

type MockInsightService struct{ mock.Mock }

func (m *MockInsightService) GetInsights(ctx context.Context, userID int64) ([]domain.Insight, error) {
	args := m.Called(ctx, userID)
	var insights []domain.Insight
	if args.Get(0) != nil {
		insights = args.Get(0).([]domain.Insight)
	}
	return insights, args.Error(1)
}

func (m *MockInsightService) RefreshInsights(ctx context.Context, userID int64) ([]domain.Insight, error) {
	args := m.Called(ctx, userID)
	var insights []domain.Insight
	if args.Get(0) != nil {
		insights = args.Get(0).([]domain.Insight)
	}
	return insights, args.Error(1)
}

func (m *MockInsightService) GetLatestInsight(ctx context.Context, userID int64) (*domain.Insight, error) {
	args := m.Called(ctx, userID)
	var insight *domain.Insight
	if args.Get(0) != nil {
		insight = args.Get(0).(*domain.Insight)
	}
	return insight, args.Error(1)
}

type MockDashboardService struct{ mock.Mock }

func (m *MockDashboardService) GetDashboard(ctx context.Context, userID int64) (*service.Dashboard, error) {
	args := m.Called(ctx, userID)
	var dashboard *service.Dashboard
	if args.Get(0) != nil {
		dashboard = args.Get(0).(*service.Dashboard)
	}
	return dashboard, args.Error(1)
}

// --- Test harness ---

type testServices struct {
	auth        *MockAuthService
	transaction *MockTransactionService
	goal        *MockGoalService
	engagement  *MockEngagementService
	reward      *MockRewardService
	social      *MockSocialService
	insight     *MockInsightService
	dashboard   *MockDashboardService
}

func newTestServer(t *testing.T) (*httptest.Server, *testServices) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svcs := &testServices{
		auth:        new(MockAuthService),
		transaction: new(MockTransactionService),
		goal:        new(MockGoalService),
		engagement:  new(MockEngagementService),
		reward:      new(MockRewardService),
		social:      new(MockSocialService),
		insight:     new(MockInsightService),
		dashboard:   new(MockDashboardService),
	}

	handlers := api.Handlers{
		Auth:        handler.NewAuthHandler(svcs.auth, logger),
		Transaction: handler.NewTransactionHandler(svcs.transaction, logger),
		Goal:        handler.NewGoalHandler(svcs.goal, logger),
		Engagement:  handler.NewEngagementHandler(svcs.engagement, logger),
		Reward:      handler.NewRewardHandler(svcs.reward, logger),
		Social:      handler.NewSocialHandler(svcs.social, logger),
		Insight:     handler.NewInsightHandler(svcs.insight, svcs.dashboard, logger),
	}

	server := httptest.NewServer(api.NewRouter(handlers, svcs.auth, logger))
	t.Cleanup(server.Close)
	return server, svcs
}

func doRequest(t *testing.T, server *httptest.Server, method, path, token, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(respBody)
}

// --- Tests ---

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, body := doRequest(t, server, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
}

func TestAuthentication(t *testing.T) {
	t.Run("MissingTokenRejected", func(t *testing.T) {
		server, svcs := newTestServer(t)

		resp, body := doRequest(t, server, http.MethodGet, "/api/v1/points", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "unauthorized")
		svcs.auth.AssertNotCalled(t, "VerifyToken", mock.Anything)
	})

	t.Run("InvalidTokenRejected", func(t *testing.T) {
		server, svcs := newTestServer(t)
		svcs.auth.On("VerifyToken", "bad-token").Return(int64(0), util.ErrUnauthorized).Once()

		resp, _ := doRequest(t, server, http.MethodGet, "/api/v1/points", "bad-token", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		svcs.engagement.AssertNotCalled(t, "GetPoints", mock.Anything, mock.Anything)
	})

	t.Run("ValidTokenReachesHandler", func(t *testing.T) {
		server, svcs := newTestServer(t)
		svcs.auth.On("VerifyToken", "good-token").Return(int64(7), nil).Once()
		svcs.engagement.On("GetPoints", mock.Anything, int64(7)).
			Return(&domain.PointsAccount{UserID: 7, TotalPoints: 120, SpentPoints: 20}, nil).Once()

		resp, body := doRequest(t, server, http.MethodGet, "/api/v1/points", "good-token", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"total_points":120`)
		assert.Contains(t, body, `"available_points":100`)
		mock.AssertExpectationsForObjects(t, svcs.auth, svcs.engagement)
	})
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("SuccessfulRegistration", func(t *testing.T) {
		server, svcs := newTestServer(t)
		account := &domain.Account{ID: 3, Email: "ayse@example.com", FullName: "Ayşe Yılmaz"}
		svcs.auth.On("Register", mock.Anything, "ayse@example.com", "secret123", "Ayşe Yılmaz", (*string)(nil)).
			Return(account, "signed-token", nil).Once()

		resp, body := doRequest(t, server, http.MethodPost, "/api/v1/auth/register", "",
			`{"email": "ayse@example.com", "password": "secret123", "full_name": "Ayşe Yılmaz"}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Contains(t, body, `"token":"signed-token"`)
		assert.Contains(t, body, `"email":"ayse@example.com"`)
		mock.AssertExpectationsForObjects(t, svcs.auth)
	})

	t.Run("DuplicateEmailConflicts", func(t *testing.T) {
		server, svcs := newTestServer(t)
		svcs.auth.On("Register", mock.Anything, "taken@example.com", "secret123", "Ayşe Yılmaz", (*string)(nil)).
			Return(nil, "", util.ErrDuplicateEmail).Once()

		resp, _ := doRequest(t, server, http.MethodPost, "/api/v1/auth/register", "",
			`{"email": "taken@example.com", "password": "secret123", "full_name": "Ayşe Yılmaz"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestIncomeEndpoint(t *testing.T) {
	t.Run("RecordsIncome", func(t *testing.T) {
		server, svcs := newTestServer(t)
		svcs.auth.On("VerifyToken", "good-token").Return(int64(7), nil).Once()

		account := &domain.Account{ID: 7, MainBalance: decimal.NewFromInt(1350)}
		plan := &domain.IncomePlan{
			NewBalance: decimal.NewFromInt(1350),
			Remaining:  decimal.NewFromInt(350),
		}
		svcs.transaction.On("AddIncome", mock.Anything, int64(7),
			mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(500)) }),
			(*string)(nil), (*string)(nil)).
			Return(account, plan, nil).Once()

		resp, body := doRequest(t, server, http.MethodPost, "/api/v1/transactions/income", "good-token",
			`{"amount": "500"}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Contains(t, body, `"new_balance":"1350"`)
		mock.AssertExpectationsForObjects(t, svcs.transaction)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		server, svcs := newTestServer(t)
		svcs.auth.On("VerifyToken", "good-token").Return(int64(7), nil).Once()

		resp, _ := doRequest(t, server, http.MethodPost, "/api/v1/transactions/income", "good-token",
			`{"amount": "0"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svcs.transaction.AssertNotCalled(t, "AddIncome", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExpenseEndpoint(t *testing.T) {
	t.Run("InsufficientFunds", func(t *testing.T) {
		server, svcs := newTestServer(t)
		svcs.auth.On("VerifyToken", "good-token").Return(int64(7), nil).Once()
		svcs.transaction.On("AddExpense", mock.Anything, int64(7),
			mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(900)) }),
			(*string)(nil), (*string)(nil)).
			Return(nil, nil, util.ErrInsufficientFunds).Once()

		resp, body := doRequest(t, server, http.MethodPost, "/api/v1/transactions/expense", "good-token",
			`{"amount": "900"}`)
		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
		assert.Contains(t, body, "Insufficient funds")
	})
}

func TestRedeemEndpoint(t *testing.T) {
	t.Run("SuccessfulRedemption", func(t *testing.T) {
		server, svcs := newTestServer(t)
		svcs.auth.On("VerifyToken", "good-token").Return(int64(7), nil).Once()

		redemption := domain.NewRewardRedemption(7, 2, 150)
		points := &domain.PointsAccount{UserID: 7, TotalPoints: 300, SpentPoints: 150}
		svcs.reward.On("Redeem", mock.Anything, int64(7), int64(2)).
			Return(redemption, points, nil).Once()

		resp, body := doRequest(t, server, http.MethodPost, "/api/v1/rewards/2/redeem", "good-token", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"points_spent":150`)
		mock.AssertExpectationsForObjects(t, svcs.reward)
	})

	t.Run("InsufficientPoints", func(t *testing.T) {
		server, svcs := newTestServer(t)
		svcs.auth.On("VerifyToken", "good-token").Return(int64(7), nil).Once()
		svcs.reward.On("Redeem", mock.Anything, int64(7), int64(2)).
			Return(nil, nil, util.ErrInsufficientPoints).Once()

		resp, _ := doRequest(t, server, http.MethodPost, "/api/v1/rewards/2/redeem", "good-token", "")
		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	})
}

func TestSettlementEndpoint(t *testing.T) {
	server, svcs := newTestServer(t)
	svcs.auth.On("VerifyToken", "good-token").Return(int64(7), nil).Once()

	transfers := []domain.Transfer{
		{FromUserID: 9, ToUserID: 7, Amount: decimal.NewFromInt(150)},
	}
	contributions := []domain.Contribution{
		{UserID: 7, AmountPaid: decimal.NewFromInt(300)},
		{UserID: 9, AmountPaid: decimal.Zero},
	}
	svcs.social.On("GetSettlementPlan", mock.Anything, int64(7), int64(4)).
		Return(transfers, contributions, nil).Once()

	resp, body := doRequest(t, server, http.MethodGet, "/api/v1/groups/4/settlement", "good-token", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"from_user_id":9`)
	assert.Contains(t, body, `"to_user_id":7`)
	mock.AssertExpectationsForObjects(t, svcs.social)
}

func TestUnknownTaskReturnsNotFound(t *testing.T) {
	server, svcs := newTestServer(t)
	svcs.auth.On("VerifyToken", "good-token").Return(int64(7), nil).Once()
	svcs.engagement.On("CompleteTask", mock.Anything, int64(7), int64(99)).
		Return(nil, nil, util.ErrNotFound).Once()

	resp, body := doRequest(t, server, http.MethodPost, "/api/v1/tasks/99/complete", "good-token", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "not found")
}
