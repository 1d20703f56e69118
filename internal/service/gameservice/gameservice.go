package gameservice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/game"
	"github.com/GlebRadaev/steake/internal/game/blackjack"
	"github.com/GlebRadaev/steake/internal/game/dice"
	"github.com/GlebRadaev/steake/internal/game/mines"
	"github.com/GlebRadaev/steake/internal/metrics"
)

// Service fronts the three engines, which share one table.
type Service struct {
	blackjack *blackjack.Engine
	dice      *dice.Engine
	mines     *mines.Engine
}

func New(ledger game.Ledger, store game.RoundStore, rng game.RNG) *Service {
	table := game.NewTable(ledger, store)
	return &Service{
		blackjack: blackjack.New(table, rng),
		dice:      dice.New(table, rng),
		mines:     mines.New(table, rng),
	}
}

func observe(gameType domain.GameType, action string, userID int, started time.Time, err error) {
	result := "success"
	if err != nil {
		result = "fail"
		zap.L().Debug("game action rejected",
			zap.String("game", string(gameType)),
			zap.String("action", action),
			zap.Int("userID", userID),
			zap.Error(err),
		)
	}
	metrics.RecordAction(string(gameType), action, result, started)
}

func (s *Service) Blackjack(ctx context.Context, userID int, action string, bet decimal.Decimal) (*blackjack.View, error) {
	started := time.Now()
	view, err := s.blackjack.Act(ctx, userID, action, bet)
	observe(domain.GameBlackjack, action, userID, started, err)
	return view, err
}

func (s *Service) Dice(ctx context.Context, userID int, bet decimal.Decimal, prediction string, target int) (*dice.View, error) {
	started := time.Now()
	view, err := s.dice.Roll(ctx, userID, bet, prediction, target)
	observe(domain.GameDice, "roll", userID, started, err)
	return view, err
}

func (s *Service) Mines(ctx context.Context, userID int, action string, bet decimal.Decimal, minesCount, cell int) (*mines.View, error) {
	started := time.Now()
	view, err := s.mines.Act(ctx, userID, action, bet, minesCount, cell)
	observe(domain.GameMines, action, userID, started, err)
	return view, err
}
