package service

import (
	"context"
	"time"

	"github.com/GlebRadaev/steake/internal/game"
	"github.com/GlebRadaev/steake/internal/handlers/admin"
	"github.com/GlebRadaev/steake/internal/handlers/auth"
	"github.com/GlebRadaev/steake/internal/handlers/balance"
	"github.com/GlebRadaev/steake/internal/handlers/games"
	"github.com/GlebRadaev/steake/internal/repo"
	"github.com/GlebRadaev/steake/internal/service/adminservice"
	"github.com/GlebRadaev/steake/internal/service/authservice"
	"github.com/GlebRadaev/steake/internal/service/balanceservice"
	"github.com/GlebRadaev/steake/internal/service/gameservice"
	"github.com/GlebRadaev/steake/internal/service/ledgerservice"
	pkgauth "github.com/GlebRadaev/steake/pkg/auth"
)

// Deps are the collaborators services need beyond the repositories.
type Deps struct {
	JWT        pkgauth.JWTServiceInterface
	TokenTTL   time.Duration
	BcryptCost int
	Rounds     game.RoundStore
	RNG        game.RNG
}

type Services struct {
	AuthService    auth.Service
	BalanceService balance.Service
	AdminService   admin.Service
	GameService    games.Service
	Ledger         game.Ledger
	JWT            pkgauth.JWTServiceInterface

	authService *authservice.Service
}

func New(repo *repo.Repositories, deps Deps) *Services {
	balanceService := balanceservice.New(repo.BalanceRepo, repo.Withdrawal, repo.Transactions, repo.Games, repo.TxManager)
	authService := authservice.New(repo.UserRepo, balanceService, pkgauth.NewHashService(deps.BcryptCost), deps.JWT, repo.TxManager, deps.TokenTTL)
	adminService := adminservice.New(repo.UserRepo, repo.Games, balanceService)
	ledger := ledgerservice.New(repo.BalanceRepo, repo.Transactions, repo.Games, repo.TxManager)

	return &Services{
		AuthService:    authService,
		BalanceService: balanceService,
		AdminService:   adminService,
		GameService:    gameservice.New(ledger, deps.Rounds, deps.RNG),
		Ledger:         ledger,
		JWT:            deps.JWT,
		authService:    authService,
	}
}

// EnsureAdmin seeds the configured administrator account.
func (s *Services) EnsureAdmin(ctx context.Context, seed authservice.AdminSeed) error {
	return s.authService.EnsureAdmin(ctx, seed)
}
