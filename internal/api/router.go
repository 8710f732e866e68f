package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eytgaming/eytgaming/internal/api/handler"
	"github.com/eytgaming/eytgaming/internal/api/middleware"
	"github.com/eytgaming/eytgaming/internal/services/account"
	"github.com/eytgaming/eytgaming/internal/services/bundle"
	"github.com/eytgaming/eytgaming/internal/services/gameprofile"
	"github.com/eytgaming/eytgaming/internal/services/payment"
	"github.com/eytgaming/eytgaming/internal/services/team"
	"github.com/eytgaming/eytgaming/internal/services/visibility"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AccountService     *account.Service
	GameProfileService *gameprofile.Service
	PaymentService     *payment.Service
	TeamService        *team.Service
	BundleService      *bundle.Service
	VisibilityGate     *visibility.Gate
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.AccountService)
	profileHandler := handler.NewGameProfileHandler(cfg.GameProfileService)
	paymentHandler := handler.NewPaymentHandler(cfg.PaymentService)
	teamHandler := handler.NewTeamHandler(cfg.TeamService)
	userHandler := handler.NewUserHandler(cfg.AccountService, cfg.BundleService, cfg.VisibilityGate)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AccountService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AccountService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Account routes (no auth required for registering/logging in)
	api.HandleFunc("/accounts/register", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/accounts/login", accountHandler.Login).Methods(http.MethodPost)

	// Protected account routes
	accounts := api.PathPrefix("/accounts").Subrouter()
	accounts.Use(authMiddleware)
	accounts.HandleFunc("/logout", accountHandler.Logout).Methods(http.MethodPost)
	accounts.HandleFunc("/me", accountHandler.GetMe).Methods(http.MethodGet)
	accounts.HandleFunc("/me/privacy", accountHandler.UpdatePrivacy).Methods(http.MethodPut)
	accounts.HandleFunc("/me/matches", accountHandler.RecordMatch).Methods(http.MethodPost)

	// Game profile routes (all require auth, all owner-scoped)
	profiles := api.PathPrefix("/profiles").Subrouter()
	profiles.Use(authMiddleware)
	profiles.HandleFunc("", profileHandler.Create).Methods(http.MethodPost)
	profiles.HandleFunc("", profileHandler.List).Methods(http.MethodGet)
	profiles.HandleFunc("/main", profileHandler.GetMain).Methods(http.MethodGet)
	profiles.HandleFunc("/{id}", profileHandler.Get).Methods(http.MethodGet)
	profiles.HandleFunc("/{id}/main", profileHandler.SetMain).Methods(http.MethodPut)
	profiles.HandleFunc("/{id}", profileHandler.Delete).Methods(http.MethodDelete)

	// Payment method routes (all require auth, all owner-scoped)
	payments := api.PathPrefix("/payment-methods").Subrouter()
	payments.Use(authMiddleware)
	payments.HandleFunc("", paymentHandler.Add).Methods(http.MethodPost)
	payments.HandleFunc("", paymentHandler.List).Methods(http.MethodGet)
	payments.HandleFunc("/default", paymentHandler.GetDefault).Methods(http.MethodGet)
	payments.HandleFunc("/{id}", paymentHandler.Get).Methods(http.MethodGet)
	payments.HandleFunc("/{id}/default", paymentHandler.SetDefault).Methods(http.MethodPut)
	payments.HandleFunc("/{id}/deactivate", paymentHandler.Deactivate).Methods(http.MethodPost)
	payments.HandleFunc("/{id}/reactivate", paymentHandler.Reactivate).Methods(http.MethodPost)
	payments.HandleFunc("/{id}", paymentHandler.Delete).Methods(http.MethodDelete)

	// Team routes (all require auth)
	teams := api.PathPrefix("/teams").Subrouter()
	teams.Use(authMiddleware)
	teams.HandleFunc("", teamHandler.Create).Methods(http.MethodPost)
	teams.HandleFunc("", teamHandler.ListMine).Methods(http.MethodGet)
	teams.HandleFunc("/join", teamHandler.Join).Methods(http.MethodPost)
	teams.HandleFunc("/mutual/{user_id}", teamHandler.Mutual).Methods(http.MethodGet)
	teams.HandleFunc("/{id}", teamHandler.Get).Methods(http.MethodGet)
	teams.HandleFunc("/{id}/leave", teamHandler.Leave).Methods(http.MethodPost)

	// Public user routes (anonymous allowed, viewer identity used if present)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(optionalAuthMiddleware)
	users.HandleFunc("/{id}", userHandler.Get).Methods(http.MethodGet)
	users.HandleFunc("/{id}/profile", userHandler.GetProfile).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
