// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/util"
	"kumbara-api/pkg/db"
)

func newAuthServiceForTest(
	accountRepo *MockAccountRepository,
	pointsRepo *MockPointsRepository,
	dbBeginner *MockDBBeginner,
	dbExecutor *MockDBExecutor,
	txController *MockTxController,
) AuthService {
	return NewAuthService(
		dbBeginner,
		dbExecutor,
		accountRepo,
		pointsRepo,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return txController, nil
		},
		func(tx db.TxController) error {
			return txController.Commit()
		},
		func(tx db.TxController) {
			_ = txController.Rollback()
		},
		"test-secret",
		time.Hour,
		bcrypt.MinCost,
	)
}

func TestRegister(t *testing.T) {
	t.Run("SuccessfulRegistration", func(t *testing.T) {
		ctx := context.Background()
		mockAccountRepo := new(MockAccountRepository)
		mockPointsRepo := new(MockPointsRepository)
		mockDBBeginner := new(MockDBBeginner)
		mockDBExecutor := new(MockDBExecutor)
		mockTxController := new(MockTxController)

		service := newAuthServiceForTest(mockAccountRepo, mockPointsRepo, mockDBBeginner, mockDBExecutor, mockTxController)

		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Maybe()
		mockAccountRepo.On("CreateAccount", ctx, mock.Anything, mock.AnythingOfType("*domain.Account")).
			Run(func(args mock.Arguments) {
				args.Get(2).(*domain.Account).ID = 42
			}).Return(nil).Once()
		mockPointsRepo.On("EnsurePoints", ctx, mock.Anything, int64(42)).Return(nil).Once()

		account, token, err := service.Register(ctx, "ada@example.com", "s3cret-pass", "Ada Lovelace", nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), account.ID)
		assert.True(t, account.MainBalance.IsZero())
		assert.NotEmpty(t, token)
		assert.NotEqual(t, "s3cret-pass", account.PasswordHash)

		userID, err := service.VerifyToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), userID)

		mock.AssertExpectationsForObjects(t, mockTxController, mockAccountRepo, mockPointsRepo)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		ctx := context.Background()
		mockAccountRepo := new(MockAccountRepository)
		mockPointsRepo := new(MockPointsRepository)
		mockDBBeginner := new(MockDBBeginner)
		mockDBExecutor := new(MockDBExecutor)
		mockTxController := new(MockTxController)

		service := newAuthServiceForTest(mockAccountRepo, mockPointsRepo, mockDBBeginner, mockDBExecutor, mockTxController)

		mockAccountRepo.On("CreateAccount", ctx, mock.Anything, mock.AnythingOfType("*domain.Account")).
			Return(util.ErrDuplicateEmail).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		_, _, err := service.Register(ctx, "ada@example.com", "s3cret-pass", "Ada Lovelace", nil)

		assert.ErrorIs(t, err, util.ErrDuplicateEmail)
		mockTxController.AssertNotCalled(t, "Commit")

		mock.AssertExpectationsForObjects(t, mockTxController, mockAccountRepo)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		ctx := context.Background()
		mockAccountRepo := new(MockAccountRepository)
		mockPointsRepo := new(MockPointsRepository)
		mockDBBeginner := new(MockDBBeginner)
		mockDBExecutor := new(MockDBExecutor)
		mockTxController := new(MockTxController)

		service := newAuthServiceForTest(mockAccountRepo, mockPointsRepo, mockDBBeginner, mockDBExecutor, mockTxController)

		_, _, err := service.Register(ctx, "ada@example.com", "abc", "Ada Lovelace", nil)

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		mockAccountRepo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	t.Run("SuccessfulLogin", func(t *testing.T) {
		ctx := context.Background()
		mockAccountRepo := new(MockAccountRepository)
		mockPointsRepo := new(MockPointsRepository)
		mockDBBeginner := new(MockDBBeginner)
		mockDBExecutor := new(MockDBExecutor)
		mockTxController := new(MockTxController)

		service := newAuthServiceForTest(mockAccountRepo, mockPointsRepo, mockDBBeginner, mockDBExecutor, mockTxController)

		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
		assert.NoError(t, err)
		account := &domain.Account{ID: 42, Email: "ada@example.com", PasswordHash: string(hash)}

		mockAccountRepo.On("GetAccountByEmail", ctx, mock.Anything, "ada@example.com").Return(account, nil).Once()

		resAccount, token, err := service.Login(ctx, "ada@example.com", "s3cret-pass")

		assert.NoError(t, err)
		assert.Equal(t, int64(42), resAccount.ID)
		assert.NotEmpty(t, token)

		mock.AssertExpectationsForObjects(t, mockAccountRepo)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		ctx := context.Background()
		mockAccountRepo := new(MockAccountRepository)
		mockPointsRepo := new(MockPointsRepository)
		mockDBBeginner := new(MockDBBeginner)
		mockDBExecutor := new(MockDBExecutor)
		mockTxController := new(MockTxController)

		service := newAuthServiceForTest(mockAccountRepo, mockPointsRepo, mockDBBeginner, mockDBExecutor, mockTxController)

		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
		assert.NoError(t, err)
		account := &domain.Account{ID: 42, PasswordHash: string(hash)}

		mockAccountRepo.On("GetAccountByEmail", ctx, mock.Anything, "ada@example.com").Return(account, nil).Once()

		_, _, err = service.Login(ctx, "ada@example.com", "wrong")

		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
		mock.AssertExpectationsForObjects(t, mockAccountRepo)
	})

	t.Run("UnknownEmailReportsInvalidCredentials", func(t *testing.T) {
		ctx := context.Background()
		mockAccountRepo := new(MockAccountRepository)
		mockPointsRepo := new(MockPointsRepository)
		mockDBBeginner := new(MockDBBeginner)
		mockDBExecutor := new(MockDBExecutor)
		mockTxController := new(MockTxController)

		service := newAuthServiceForTest(mockAccountRepo, mockPointsRepo, mockDBBeginner, mockDBExecutor, mockTxController)

		mockAccountRepo.On("GetAccountByEmail", ctx, mock.Anything, "ghost@example.com").Return(nil, util.ErrNotFound).Once()

		_, _, err := service.Login(ctx, "ghost@example.com", "whatever")

		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
		mock.AssertExpectationsForObjects(t, mockAccountRepo)
	})
}

func TestVerifyToken(t *testing.T) {
	t.Run("GarbageTokenRejected", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockPointsRepo := new(MockPointsRepository)
		mockDBBeginner := new(MockDBBeginner)
		mockDBExecutor := new(MockDBExecutor)
		mockTxController := new(MockTxController)

		service := newAuthServiceForTest(mockAccountRepo, mockPointsRepo, mockDBBeginner, mockDBExecutor, mockTxController)

		_, err := service.VerifyToken("not-a-token")
		assert.ErrorIs(t, err, util.ErrUnauthorized)
	})
}
