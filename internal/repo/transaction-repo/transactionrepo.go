package transactionrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, type, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, tx.UserID, string(tx.Type), tx.Amount, tx.Description, tx.CreatedAt).Scan(&tx.ID)
	if err != nil {
		zap.L().Error("can't save transaction", zap.String("type", string(tx.Type)), zap.Error(err))
		return err
	}
	return nil
}

// FindByUserID returns up to limit transactions, newest first. A limit of
// zero or less returns all of them.
func (r *Repository) FindByUserID(ctx context.Context, userID, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF($2, 0)
	`
	if limit < 0 {
		limit = 0
	}
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		var (
			tx     domain.Transaction
			txType string
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &txType, &tx.Amount, &tx.Description, &tx.CreatedAt); err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		tx.Type = domain.TransactionType(txType)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to read transaction rows", zap.Error(err))
		return nil, err
	}
	return txs, nil
}
