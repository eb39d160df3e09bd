// internal/service/auth_service.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"kumbara-api/internal/domain"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/util"
	"kumbara-api/pkg/db"
)

// AuthService defines the interface for registration, login and token handling.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string, phone *string) (*domain.Account, string, error)
	Login(ctx context.Context, email, password string) (*domain.Account, string, error)
	GetProfile(ctx context.Context, userID int64) (*domain.Account, error)
	// VerifyToken parses and validates a bearer token and returns the account ID.
	VerifyToken(tokenString string) (int64, error)
}

// authService implements the AuthService interface.
type authService struct {
	dbBeginner  db.DBTxBeginner
	dbExecutor  repository.DBExecutor
	accountRepo repository.AccountRepository
	pointsRepo  repository.PointsRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
	jwtSecret   []byte
	tokenTTL    time.Duration
	bcryptCost  int
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	pointsRepo repository.PointsRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	jwtSecret string,
	tokenTTL time.Duration,
	bcryptCost int,
) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		accountRepo: accountRepo,
		pointsRepo:  pointsRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		bcryptCost:  bcryptCost,
	}
}

// Register creates an account with a zero balance and its points row,
// and returns a signed token for the new account.
func (s *authService) Register(ctx context.Context, email, password, fullName string, phone *string) (*domain.Account, string, error) {
	if email == "" || fullName == "" || len(password) < 6 {
		return nil, "", util.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("register: failed to hash password: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, "", fmt.Errorf("register: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, "", fmt.Errorf("register: transaction controller does not implement DBExecutor")
	}

	account := domain.NewAccount(email, string(hash), fullName, phone)
	if err := s.accountRepo.CreateAccount(ctx, txExecutor, account); err != nil {
		if util.IsError(err, util.ErrDuplicateEmail) {
			return nil, "", util.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("register: failed to create account: %w", err)
	}

	if err := s.pointsRepo.EnsurePoints(ctx, txExecutor, account.ID); err != nil {
		return nil, "", fmt.Errorf("register: failed to create points row: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, "", fmt.Errorf("register: failed to commit transaction: %w", err)
	}

	token, err := s.signToken(account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Login verifies the credentials and returns a signed token.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	account, err := s.accountRepo.GetAccountByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: failed to get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := s.signToken(account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// GetProfile retrieves the account for the authenticated user.
func (s *authService) GetProfile(ctx context.Context, userID int64) (*domain.Account, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: failed to get account %d: %w", userID, err)
	}
	return account, nil
}

func (s *authService) signToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer token and returns the account ID.
func (s *authService) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, util.ErrUnauthorized
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, util.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, util.ErrUnauthorized
	}
	return userID, nil
}
