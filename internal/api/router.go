// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kumbara-api/internal/api/handler"
	"kumbara-api/internal/service"
)

// Handlers groups the HTTP handlers wired into the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Transaction *handler.TransactionHandler
	Goal        *handler.GoalHandler
	Engagement  *handler.EngagementHandler
	Reward      *handler.RewardHandler
	Social      *handler.SocialHandler
	Insight     *handler.InsightHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, authService service.AuthService, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))
	r.Use(Metrics)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		// Everything below requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(handler.Authenticate(authService, logger))

			r.Get("/auth/me", h.Auth.GetProfile)
			r.Get("/dashboard", h.Insight.GetDashboard)

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/income", h.Transaction.AddIncome)
				r.Post("/expense", h.Transaction.AddExpense)
				r.Get("/", h.Transaction.GetHistory)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Post("/", h.Goal.CreateGoal)
				r.Get("/", h.Goal.ListGoals)
				r.Post("/split-rules", h.Goal.SetSplitRule)
				r.Get("/split-rules", h.Goal.ListSplitRules)
				r.Post("/round-up-rules", h.Goal.CreateRoundUpRule)
				r.Get("/round-up-rules", h.Goal.ListRoundUpRules)
				r.Patch("/{goalID}", h.Goal.UpdateGoal)
				r.Delete("/{goalID}", h.Goal.DeleteGoal)
			})
			r.Get("/ngos", h.Goal.ListNGOs)

			r.Get("/points", h.Engagement.GetPoints)
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Engagement.ListTasks)
				r.Post("/{taskID}/complete", h.Engagement.CompleteTask)
			})
			r.Route("/reels", func(r chi.Router) {
				r.Get("/", h.Engagement.ListReels)
				r.Get("/views", h.Engagement.ListReelViews)
				r.Post("/{reelID}/watch", h.Engagement.WatchReel)
			})

			r.Route("/rewards", func(r chi.Router) {
				r.Get("/", h.Reward.ListRewards)
				r.Get("/redemptions", h.Reward.ListRedemptions)
				r.Post("/{rewardID}/redeem", h.Reward.Redeem)
			})

			r.Route("/groups", func(r chi.Router) {
				r.Post("/", h.Social.CreateGroup)
				r.Get("/", h.Social.ListGroups)
				r.Post("/{groupID}/members", h.Social.AddMember)
				r.Post("/{groupID}/expenses", h.Social.AddExpense)
				r.Get("/{groupID}/debts", h.Social.ListDebts)
				r.Get("/{groupID}/settlement", h.Social.GetSettlementPlan)
			})
			r.Post("/debts/{debtID}/settle", h.Social.SettleDebt)
			r.Route("/challenges", func(r chi.Router) {
				r.Get("/", h.Social.ListChallenges)
				r.Post("/", h.Social.CreateChallenge)
			})

			r.Get("/insights", h.Insight.GetInsights)
			r.Post("/insights/refresh", h.Insight.RefreshInsights)
		})
	})

	return r
}
