package gamerepo

import (
	"context"
	"encoding/json"
	"fmt"

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

func (r *Repository) Create(ctx context.Context, record *domain.GameRecord) error {
	if record.Outcome == nil || record.Outcome.Game() != record.GameType {
		return fmt.Errorf("game record for %s carries a mismatched outcome", record.GameType)
	}
	result, err := json.Marshal(record.Outcome)
	if err != nil {
		return fmt.Errorf("encode %s outcome: %w", record.GameType, err)
	}

	query := `
		INSERT INTO games (user_id, game_type, bet_amount, win_amount, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = r.db.QueryRow(ctx, query,
		record.UserID, string(record.GameType), record.BetAmount, record.WinAmount, result, record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		zap.L().Error("can't save game record", zap.String("game", string(record.GameType)), zap.Error(err))
		return err
	}
	return nil
}

// FindByUserID returns up to limit game records, newest first. A limit of
// zero or less returns all of them.
func (r *Repository) FindByUserID(ctx context.Context, userID, limit int) ([]domain.GameRecord, error) {
	query := `
		SELECT id, user_id, game_type, bet_amount, win_amount, result, created_at
		FROM games
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF($2, 0)
	`
	if limit < 0 {
		limit = 0
	}
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch game records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	records := []domain.GameRecord{}
	for rows.Next() {
		var (
			rec      domain.GameRecord
			gameType string
			result   []byte
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &gameType, &rec.BetAmount, &rec.WinAmount, &result, &rec.CreatedAt); err != nil {
			zap.L().Error("failed to scan game row", zap.Error(err))
			return nil, err
		}
		rec.GameType = domain.GameType(gameType)
		if rec.Outcome, err = domain.DecodeOutcome(rec.GameType, result); err != nil {
			zap.L().Error("failed to decode game outcome", zap.Int("id", rec.ID), zap.Error(err))
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to read game rows", zap.Error(err))
		return nil, err
	}
	return records, nil
}

// GetUserPnL sums a user's settled rounds.
func (r *Repository) GetUserPnL(ctx context.Context, userID int) (*domain.PnL, error) {
	query := `
		SELECT
			COALESCE(SUM(win_amount - bet_amount), 0),
			COUNT(*),
			COALESCE(SUM(bet_amount), 0),
			COALESCE(SUM(win_amount), 0)
		FROM games
		WHERE user_id = $1
	`
	var pnl domain.PnL
	err := r.db.QueryRow(ctx, query, userID).Scan(&pnl.TotalPnL, &pnl.TotalGames, &pnl.TotalWagered, &pnl.TotalWinnings)
	if err != nil {
		zap.L().Error("failed to aggregate game records", zap.Error(err))
		return nil, err
	}
	return &pnl, nil
}
