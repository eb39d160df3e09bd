// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "kumbara-api/internal/api"
	"kumbara-api/internal/api/handler"
	"kumbara-api/internal/config"
	"kumbara-api/internal/repository"
	"kumbara-api/internal/repository/postgres"
	"kumbara-api/internal/service"
	"kumbara-api/internal/util"
	"kumbara-api/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	AccountRepository     repository.AccountRepository
	GoalRepository        repository.GoalRepository
	TransactionRepository repository.TransactionRepository
	PointsRepository      repository.PointsRepository
	EngagementRepository  repository.EngagementRepository
	RewardRepository      repository.RewardRepository
	SocialRepository      repository.SocialRepository
	InsightRepository     repository.InsightRepository

	// Services
	AuthService        service.AuthService
	TransactionService service.TransactionService
	GoalService        service.GoalService
	EngagementService  service.EngagementService
	RewardService      service.RewardService
	SocialService      service.SocialService
	InsightService     service.InsightService
	DashboardService   service.DashboardService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.AccountRepository = postgres.NewAccountRepository(app.DB)
	app.GoalRepository = postgres.NewGoalRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.PointsRepository = postgres.NewPointsRepository(app.DB)
	app.EngagementRepository = postgres.NewEngagementRepository(app.DB)
	app.RewardRepository = postgres.NewRewardRepository(app.DB)
	app.SocialRepository = postgres.NewSocialRepository(app.DB)
	app.InsightRepository = postgres.NewInsightRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	app.AuthService = service.NewAuthService(
		app.DB, app.DB,
		app.AccountRepository, app.PointsRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
		app.Config.JWTSecret, app.Config.TokenTTL, app.Config.BcryptCost,
	)
	app.TransactionService = service.NewTransactionService(
		app.DB, app.DB,
		app.AccountRepository, app.GoalRepository, app.TransactionRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.GoalService = service.NewGoalService(
		app.DB, app.DB,
		app.GoalRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.EngagementService = service.NewEngagementService(
		app.DB, app.DB,
		app.EngagementRepository, app.PointsRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.RewardService = service.NewRewardService(
		app.DB, app.DB,
		app.RewardRepository, app.PointsRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.SocialService = service.NewSocialService(
		app.DB, app.DB,
		app.SocialRepository, app.AccountRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.InsightService = service.NewInsightService(
		app.DB, app.DB,
		app.InsightRepository, app.TransactionRepository, app.GoalRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.DashboardService = service.NewDashboardService(
		app.DB,
		app.AccountRepository, app.GoalRepository, app.PointsRepository,
		app.TransactionRepository, app.SocialRepository, app.InsightRepository,
	)
	app.Logger.Info("Services initialized.")

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(app.AuthService, app.Logger),
		Transaction: handler.NewTransactionHandler(app.TransactionService, app.Logger),
		Goal:        handler.NewGoalHandler(app.GoalService, app.Logger),
		Engagement:  handler.NewEngagementHandler(app.EngagementService, app.Logger),
		Reward:      handler.NewRewardHandler(app.RewardService, app.Logger),
		Social:      handler.NewSocialHandler(app.SocialService, app.Logger),
		Insight:     handler.NewInsightHandler(app.InsightService, app.DashboardService, app.Logger),
	}
	app.HTTPHandler = router.NewRouter(handlers, app.AuthService, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
