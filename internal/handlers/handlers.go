package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/steake/docs"
	adminhandlers "github.com/GlebRadaev/steake/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/steake/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/steake/internal/handlers/balance"
	gameshandlers "github.com/GlebRadaev/steake/internal/handlers/games"
	"github.com/GlebRadaev/steake/internal/service"
	"github.com/GlebRadaev/steake/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Session(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type GamesHandler interface {
	Blackjack(w http.ResponseWriter, r *http.Request)
	Dice(w http.ResponseWriter, r *http.Request)
	Mines(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	AddBalance(w http.ResponseWriter, r *http.Request)
	GetUserData(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	BalanceHandler BalanceHandler
	GamesHandler   GamesHandler
	AdminHandler   AdminHandler
	Auth           *auth.Middleware
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		BalanceHandler: balancehandlers.New(s.BalanceService),
		GamesHandler:   gameshandlers.New(s.GameService),
		AdminHandler:   adminhandlers.New(s.AdminService),
		Auth:           auth.NewMiddleware(s.JWT),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)
			r.Post("/logout", h.AuthHandler.Logout)
			r.With(h.Auth.AuthMiddleware).Get("/session", h.AuthHandler.Session)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.AuthMiddleware)
			r.Route("/user", func(r chi.Router) {
				r.Route("/balance", func(r chi.Router) {
					r.Get("/", h.BalanceHandler.GetBalance)
					r.Post("/withdraw", h.BalanceHandler.Withdraw)
				})
				r.Get("/withdrawals", h.BalanceHandler.GetWithdrawals)
				r.Get("/transactions", h.BalanceHandler.GetHistory)
			})
			r.Route("/games", func(r chi.Router) {
				r.Post("/blackjack", h.GamesHandler.Blackjack)
				r.Post("/dice", h.GamesHandler.Dice)
				r.Post("/mines", h.GamesHandler.Mines)
			})
			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.AdminOnly)
				r.Get("/users", h.AdminHandler.ListUsers)
				r.Post("/add-balance", h.AdminHandler.AddBalance)
				r.Get("/user-data", h.AdminHandler.GetUserData)
			})
		})
	})

	return r
}
