// Package dice resolves a higher/lower roll in a single call.
package dice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/game"
)

const (
	Higher = "higher"
	Lower  = "lower"
)

const PhaseSettled = "settled"

var (
	returnToPlayer = decimal.RequireFromString("0.98")
	minMultiplier  = decimal.RequireFromString("1.1")
	hundred        = decimal.NewFromInt(100)
)

type View struct {
	Phase        string          `json:"phase"`
	DiceValue    int             `json:"diceValue"`
	Prediction   string          `json:"prediction"`
	TargetNumber int             `json:"targetNumber"`
	Multiplier   decimal.Decimal `json:"multiplier"`
	Won          bool            `json:"won"`
	game.Summary
}

type Engine struct {
	table *game.Table
	rng   game.RNG
}

func New(table *game.Table, rng game.RNG) *Engine {
	return &Engine{table: table, rng: rng}
}

// Multiplier is 0.98 divided by the chance to win, never below 1.1,
// rounded to cents.
func Multiplier(prediction string, target int) (decimal.Decimal, error) {
	if err := checkParams(prediction, target); err != nil {
		return decimal.Zero, err
	}
	var chance decimal.Decimal
	if prediction == Higher {
		chance = decimal.NewFromInt(int64(100 - target)).Div(hundred)
	} else {
		chance = decimal.NewFromInt(int64(target)).Div(hundred)
	}
	return decimal.Max(minMultiplier, returnToPlayer.Div(chance)).Round(2), nil
}

func checkParams(prediction string, target int) error {
	if prediction != Higher && prediction != Lower {
		return fmt.Errorf("%w: prediction must be %q or %q", game.ErrInvalidParams, Higher, Lower)
	}
	if target < 1 || target > 99 {
		return fmt.Errorf("%w: target number must be between 1 and 99", game.ErrInvalidParams)
	}
	return nil
}

func wins(prediction string, roll, target int) bool {
	if prediction == Higher {
		return roll > target
	}
	return roll < target
}

// Roll debits the bet, rolls 1..100 and settles in one ledger transaction.
func (e *Engine) Roll(ctx context.Context, userID int, bet decimal.Decimal, prediction string, target int) (*View, error) {
	if err := game.CheckBet(bet); err != nil {
		return nil, err
	}
	multiplier, err := Multiplier(prediction, target)
	if err != nil {
		return nil, err
	}

	unlock := e.table.Lock(domain.GameDice, userID)
	defer unlock()

	roll := e.rng.Intn(100) + 1
	won := wins(prediction, roll, target)
	win := decimal.Zero
	if won {
		win = bet.Mul(multiplier).Round(2)
	}

	outcome := domain.DiceOutcome{
		DiceValue:    roll,
		Prediction:   prediction,
		TargetNumber: target,
		Won:          won,
		Multiplier:   multiplier,
	}
	balance, err := e.table.Apply(ctx, game.Step{
		Game:      domain.GameDice,
		UserID:    userID,
		Stake:     bet,
		StakeNote: fmt.Sprintf("Dice game bet - %s than %d", prediction, target),
		Shortfall: game.ErrInvalidBet,
		Settle: &game.Settlement{
			Bet:     bet,
			Win:     win,
			WinNote: fmt.Sprintf("Dice game win - rolled %d", roll),
			Outcome: outcome,
		},
	})
	if err != nil {
		return nil, err
	}

	return &View{
		Phase:        PhaseSettled,
		DiceValue:    roll,
		Prediction:   prediction,
		TargetNumber: target,
		Multiplier:   multiplier,
		Won:          won,
		Summary:      game.Settled(outcome.Tag(), win, balance),
	}, nil
}
