package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type GameType string

const (
	GameBlackjack GameType = "blackjack"
	GameDice      GameType = "dice"
	GameMines     GameType = "mines"
)

// Outcome is the structured result stored with a game record.
// Every game has exactly one implementation.
type Outcome interface {
	Game() GameType
	// Tag is the terminal result label, e.g. "blackjack", "win", "mine_hit".
	Tag() string
}

type Card struct {
	Suit  string `json:"suit"`
	Value string `json:"value"`
}

func (c Card) String() string {
	return c.Value + c.Suit
}

type BlackjackOutcome struct {
	PlayerCards []Card `json:"playerCards"`
	DealerCards []Card `json:"dealerCards"`
	PlayerTotal int    `json:"playerTotal"`
	DealerTotal int    `json:"dealerTotal"`
	Result      string `json:"result"`
}

func (BlackjackOutcome) Game() GameType { return GameBlackjack }
func (o BlackjackOutcome) Tag() string  { return o.Result }

type DiceOutcome struct {
	DiceValue    int             `json:"diceValue"`
	Prediction   string          `json:"prediction"`
	TargetNumber int             `json:"targetNumber"`
	Won          bool            `json:"won"`
	Multiplier   decimal.Decimal `json:"multiplier"`
}

func (DiceOutcome) Game() GameType { return GameDice }

func (o DiceOutcome) Tag() string {
	if o.Won {
		return "win"
	}
	return "lose"
}

type MinesOutcome struct {
	GemsFound  int             `json:"gemsFound"`
	MinesCount int             `json:"minesCount"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Result     string          `json:"result"`
}

func (MinesOutcome) Game() GameType { return GameMines }
func (o MinesOutcome) Tag() string  { return o.Result }

// DecodeOutcome restores the outcome payload persisted for a game record.
func DecodeOutcome(game GameType, raw []byte) (Outcome, error) {
	switch game {
	case GameBlackjack:
		var o BlackjackOutcome
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("decode blackjack outcome: %w", err)
		}
		return o, nil
	case GameDice:
		var o DiceOutcome
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("decode dice outcome: %w", err)
		}
		return o, nil
	case GameMines:
		var o MinesOutcome
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("decode mines outcome: %w", err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unknown game type %q", game)
	}
}
