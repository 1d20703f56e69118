package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOutcome(t *testing.T) {
	tests := []struct {
		name      string
		game      GameType
		raw       string
		expected  Outcome
		expectErr bool
	}{
		{
			name: "Blackjack outcome",
			game: GameBlackjack,
			raw:  `{"playerCards":[{"suit":"♠","value":"A"},{"suit":"♥","value":"K"}],"dealerCards":[{"suit":"♦","value":"9"},{"suit":"♣","value":"7"}],"playerTotal":21,"dealerTotal":16,"result":"blackjack"}`,
			expected: BlackjackOutcome{
				PlayerCards: []Card{{Suit: "♠", Value: "A"}, {Suit: "♥", Value: "K"}},
				DealerCards: []Card{{Suit: "♦", Value: "9"}, {Suit: "♣", Value: "7"}},
				PlayerTotal: 21,
				DealerTotal: 16,
				Result:      "blackjack",
			},
		},
		{
			name: "Mines outcome",
			game: GameMines,
			raw:  `{"gemsFound":3,"minesCount":5,"multiplier":"1.66","result":"cashout"}`,
			expected: MinesOutcome{
				GemsFound:  3,
				MinesCount: 5,
				Multiplier: decimal.RequireFromString("1.66"),
				Result:     "cashout",
			},
		},
		{
			name:      "Unknown game",
			game:      GameType("roulette"),
			raw:       `{}`,
			expectErr: true,
		},
		{
			name:      "Broken payload",
			game:      GameDice,
			raw:       `{"diceValue":`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := DecodeOutcome(tt.game, []byte(tt.raw))
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.game, outcome.Game())
			assert.Equal(t, tt.expected.Tag(), outcome.Tag())
			if m, ok := tt.expected.(MinesOutcome); ok {
				got := outcome.(MinesOutcome)
				assert.True(t, m.Multiplier.Equal(got.Multiplier))
				assert.Equal(t, m.GemsFound, got.GemsFound)
				return
			}
			assert.Equal(t, tt.expected, outcome)
		})
	}
}

func TestDiceOutcomeTag(t *testing.T) {
	assert.Equal(t, "win", DiceOutcome{Won: true}.Tag())
	assert.Equal(t, "lose", DiceOutcome{Won: false}.Tag())
}
