package balancerepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/pg"
)

var ErrBalanceNotFound = errors.New("balance not found")

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) scanOne(row pgx.Row, op string) (*domain.Balance, error) {
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.CurrentBalance, &balance.WithdrawnTotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to "+op, zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        SELECT id, user_id, current_balance, withdrawn_total
        FROM balances
        WHERE user_id = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, query, userID), "get user balance")
}

// LockUserBalance reads the balance row with FOR UPDATE. It must run inside
// a transaction for the lock to outlive the statement.
func (r *Repository) LockUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        SELECT id, user_id, current_balance, withdrawn_total
        FROM balances
        WHERE user_id = $1
        FOR UPDATE
    `
	balance, err := r.scanOne(r.db.QueryRow(ctx, query, userID), "lock user balance")
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, fmt.Errorf("%w: user %d", ErrBalanceNotFound, userID)
	}
	return balance, nil
}

func (r *Repository) CreateUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        INSERT INTO balances (user_id, current_balance, withdrawn_total)
        VALUES ($1, 0, 0)
        RETURNING id, user_id, current_balance, withdrawn_total
    `
	balance, err := r.scanOne(r.db.QueryRow(ctx, query, userID), "create user balance")
	if err == nil && balance == nil {
		return nil, pgx.ErrNoRows
	}
	return balance, err
}

func (r *Repository) UpdateUserBalance(ctx context.Context, userID int, balance *domain.Balance) (*domain.Balance, error) {
	var updated *domain.Balance
	query := `
		UPDATE balances
		SET current_balance = $1, withdrawn_total = $2
		WHERE user_id = $3
		RETURNING id, user_id, current_balance, withdrawn_total
	`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		updated, err = r.scanOne(r.db.QueryRow(ctx, query, balance.CurrentBalance, balance.WithdrawnTotal, userID), "update user balance")
		if err != nil {
			return err
		}
		if updated == nil {
			return fmt.Errorf("%w: user %d", ErrBalanceNotFound, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetCurrentBalance replaces the spendable balance and leaves the withdrawn
// total alone.
func (r *Repository) SetCurrentBalance(ctx context.Context, userID int, amount decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `UPDATE balances SET current_balance = $1 WHERE user_id = $2`, amount, userID)
	if err != nil {
		zap.L().Error("failed to set current balance", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %d", ErrBalanceNotFound, userID)
	}
	return nil
}
