package withdrawalrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/pg"
)

const columns = `id, user_id, card_number, sum, processed_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanWithdrawal(row pgx.Row) (domain.Withdrawal, error) {
	var wd domain.Withdrawal
	err := row.Scan(&wd.ID, &wd.UserID, &wd.CardNumber, &wd.Sum, &wd.ProcessedAt)
	return wd, err
}

// Create stores w and refreshes it from the inserted row.
func (r *Repository) Create(ctx context.Context, w *domain.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (user_id, card_number, sum, processed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + columns
	saved, err := scanWithdrawal(r.db.QueryRow(ctx, query, w.UserID, w.CardNumber, w.Sum, w.ProcessedAt))
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Int("user_id", w.UserID), zap.Error(err))
		return err
	}
	*w = saved
	return nil
}

// FindByUserID returns up to limit withdrawals, newest first. A limit of
// zero or less returns all of them.
func (r *Repository) FindByUserID(ctx context.Context, userID, limit int) ([]domain.Withdrawal, error) {
	query := `
		SELECT ` + columns + `
		FROM withdrawals
		WHERE user_id = $1
		ORDER BY processed_at DESC, id DESC
		LIMIT NULLIF($2, 0)
	`
	if limit < 0 {
		limit = 0
	}
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	withdrawals := []domain.Withdrawal{}
	for rows.Next() {
		wd, err := scanWithdrawal(rows)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, wd)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to read withdrawal rows", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}
