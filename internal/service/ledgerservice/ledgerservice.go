package ledgerservice

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/pg"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

type BalanceRepo interface {
	LockUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	SetCurrentBalance(ctx context.Context, userID int, amount decimal.Decimal) error
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) error
}

type GameRepo interface {
	Create(ctx context.Context, record *domain.GameRecord) error
}

// Service backs the game engines with the PostgreSQL ledger.
type Service struct {
	balanceRepo     BalanceRepo
	transactionRepo TransactionRepo
	gameRepo        GameRepo
	txManager       pg.TXManager
}

func New(balanceRepo BalanceRepo, transactionRepo TransactionRepo, gameRepo GameRepo, txManager pg.TXManager) *Service {
	return &Service{
		balanceRepo:     balanceRepo,
		transactionRepo: transactionRepo,
		gameRepo:        gameRepo,
		txManager:       txManager,
	}
}

func (s *Service) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.txManager.Begin(ctx, fn)
}

func (s *Service) GetBalance(ctx context.Context, userID int) (decimal.Decimal, error) {
	balance, err := s.balanceRepo.LockUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to lock balance", zap.Int("user_id", userID), zap.Error(err))
		return decimal.Zero, err
	}
	return balance.CurrentBalance, nil
}

func (s *Service) SetBalance(ctx context.Context, userID int, balance decimal.Decimal) error {
	if err := s.balanceRepo.SetCurrentBalance(ctx, userID, balance); err != nil {
		zap.L().Error("failed to set balance", zap.Int("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) AppendTransaction(ctx context.Context, tx *domain.Transaction) error {
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		zap.L().Error("failed to append transaction", zap.Int("user_id", tx.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) AppendGameRecord(ctx context.Context, record *domain.GameRecord) error {
	if err := s.gameRepo.Create(ctx, record); err != nil {
		zap.L().Error("failed to append game record", zap.Int("user_id", record.UserID), zap.Error(err))
		return err
	}
	return nil
}
