package balanceservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/pg"
	"github.com/GlebRadaev/steake/pkg/validate"
)

//go:generate mockgen -source=balanceservice.go -destination=mock_balanceservice.go -package=balanceservice

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	LockUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	CreateUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	UpdateUserBalance(ctx context.Context, userID int, balance *domain.Balance) (*domain.Balance, error)
}
type WithdrawalRepo interface {
	Create(ctx context.Context, w *domain.Withdrawal) error
	FindByUserID(ctx context.Context, userID, limit int) ([]domain.Withdrawal, error)
}
type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	FindByUserID(ctx context.Context, userID, limit int) ([]domain.Transaction, error)
}
type GameRepo interface {
	FindByUserID(ctx context.Context, userID, limit int) ([]domain.GameRecord, error)
}

type Service struct {
	balanceRepo     BalanceRepo
	withdrawalRepo  WithdrawalRepo
	transactionRepo TransactionRepo
	gameRepo        GameRepo
	txManager       pg.TXManager
	now             func() time.Time
}

func New(balanceRepo BalanceRepo, withdrawalRepo WithdrawalRepo, transactionRepo TransactionRepo, gameRepo GameRepo, txManager pg.TXManager) *Service {
	return &Service{
		balanceRepo:     balanceRepo,
		withdrawalRepo:  withdrawalRepo,
		transactionRepo: transactionRepo,
		gameRepo:        gameRepo,
		txManager:       txManager,
		now:             time.Now,
	}
}

// HistoryLimit caps each list returned by GetHistory.
const HistoryLimit = 50

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be positive with at most two decimal places")
	ErrBalanceNotFound     = errors.New("balance not found")
)

func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}

func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	if balance == nil {
		return nil, ErrBalanceNotFound
	}
	return balance, nil
}

func (s *Service) CreateBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.CreateUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

// Withdraw pays sum out to a card. The balance row stays locked until the
// withdrawal and its ledger entry are written.
func (s *Service) Withdraw(ctx context.Context, userID int, cardNumber string, sum decimal.Decimal) error {
	if err := checkAmount(sum); err != nil {
		return err
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		balance, err := s.balanceRepo.LockUserBalance(ctx, userID)
		if err != nil {
			zap.L().Error("failed to lock balance", zap.Error(err))
			return err
		}
		if balance.CurrentBalance.LessThan(sum) {
			return ErrInsufficientBalance
		}

		now := s.now()
		err = s.withdrawalRepo.Create(ctx, &domain.Withdrawal{
			UserID:      userID,
			CardNumber:  cardNumber,
			Sum:         sum,
			ProcessedAt: now,
		})
		if err != nil {
			zap.L().Error("failed to create withdrawal record", zap.Error(err))
			return err
		}

		balance.CurrentBalance = balance.CurrentBalance.Sub(sum)
		balance.WithdrawnTotal = balance.WithdrawnTotal.Add(sum)
		if _, err := s.balanceRepo.UpdateUserBalance(ctx, userID, balance); err != nil {
			zap.L().Error("failed to update user balance", zap.Error(err))
			return err
		}

		err = s.transactionRepo.Create(ctx, &domain.Transaction{
			UserID:      userID,
			Type:        domain.TransactionWithdrawal,
			Amount:      sum.Neg(),
			Description: "Withdrawal to card " + validate.MaskCard(cardNumber),
			CreatedAt:   now,
		})
		if err != nil {
			zap.L().Error("failed to record withdrawal transaction", zap.Error(err))
			return err
		}
		zap.L().Info("withdrawal processed", zap.Int("user_id", userID), zap.String("sum", sum.StringFixed(2)))
		return nil
	})
}

// Deposit credits amount and writes a deposit transaction.
func (s *Service) Deposit(ctx context.Context, userID int, amount decimal.Decimal, description string) (*domain.Balance, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}

	var updated *domain.Balance
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		balance, err := s.balanceRepo.LockUserBalance(ctx, userID)
		if err != nil {
			zap.L().Error("failed to lock balance", zap.Error(err))
			return err
		}
		balance.CurrentBalance = balance.CurrentBalance.Add(amount)
		if updated, err = s.balanceRepo.UpdateUserBalance(ctx, userID, balance); err != nil {
			zap.L().Error("failed to update user balance", zap.Error(err))
			return err
		}
		err = s.transactionRepo.Create(ctx, &domain.Transaction{
			UserID:      userID,
			Type:        domain.TransactionDeposit,
			Amount:      amount,
			Description: description,
			CreatedAt:   s.now(),
		})
		if err != nil {
			zap.L().Error("failed to record deposit transaction", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.FindByUserID(ctx, userID, 0)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

// GetHistory loads recent transactions and game records concurrently.
func (s *Service) GetHistory(ctx context.Context, userID int) (*domain.History, error) {
	var history domain.History
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history.Transactions, err = s.transactionRepo.FindByUserID(gCtx, userID, HistoryLimit)
		return err
	})
	g.Go(func() error {
		var err error
		history.Games, err = s.gameRepo.FindByUserID(gCtx, userID, HistoryLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("failed to fetch history", zap.Error(err))
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return &history, nil
}
