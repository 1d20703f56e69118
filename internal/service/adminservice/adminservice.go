package adminservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/handlers/balance"
)

//go:generate mockgen -source=adminservice.go -destination=mock_adminservice.go -package=adminservice

type UserRepo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	ListPlayers(ctx context.Context) ([]domain.Player, error)
}

type GameRepo interface {
	GetUserPnL(ctx context.Context, userID int) (*domain.PnL, error)
}

var ErrUserNotFound = errors.New("user not found")

type Service struct {
	userRepo       UserRepo
	gameRepo       GameRepo
	balanceService balance.Service
}

func New(userRepo UserRepo, gameRepo GameRepo, balanceService balance.Service) *Service {
	return &Service{
		userRepo:       userRepo,
		gameRepo:       gameRepo,
		balanceService: balanceService,
	}
}

func (s *Service) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	players, err := s.userRepo.ListPlayers(ctx)
	if err != nil {
		zap.L().Error("failed to list players", zap.Error(err))
		return nil, err
	}
	return players, nil
}

func (s *Service) findUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return user, nil
}

// AddBalance credits a user's balance on behalf of an admin.
func (s *Service) AddBalance(ctx context.Context, adminLogin, username string, amount decimal.Decimal) (*domain.Balance, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	updated, err := s.balanceService.Deposit(ctx, user.ID, amount, "Admin deposit by "+adminLogin)
	if err != nil {
		return nil, err
	}
	zap.L().Info("admin deposit",
		zap.String("admin", adminLogin),
		zap.String("user", username),
		zap.String("amount", amount.StringFixed(2)),
	)
	return updated, nil
}

// GetPlayerReport loads a user's balance, history and P&L concurrently.
func (s *Service) GetPlayerReport(ctx context.Context, username string) (*domain.PlayerReport, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	report := &domain.PlayerReport{User: user}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.Balance, err = s.balanceService.GetBalance(gCtx, user.ID)
		return err
	})
	g.Go(func() error {
		history, err := s.balanceService.GetHistory(gCtx, user.ID)
		if err != nil {
			return err
		}
		report.History = *history
		return nil
	})
	g.Go(func() error {
		var err error
		report.PnL, err = s.gameRepo.GetUserPnL(gCtx, user.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("failed to build player report", zap.String("user", username), zap.Error(err))
		return nil, err
	}
	return report, nil
}
