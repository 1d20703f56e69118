package blackjack

import (
	"strconv"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/game"
)

var (
	suits  = []string{"♠", "♥", "♦", "♣"}
	values = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

// HandValue totals a hand. Aces count 11 and drop to 1 one at a time while
// the hand is over 21.
func HandValue(cards []domain.Card) int {
	total, aces := 0, 0
	for _, c := range cards {
		switch c.Value {
		case "A":
			total += 11
			aces++
		case "J", "Q", "K":
			total += 10
		default:
			v, _ := strconv.Atoi(c.Value)
			total += v
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// NewDeck returns a full 52-card deck shuffled with Fisher-Yates.
func NewDeck(rng game.RNG) []domain.Card {
	deck := make([]domain.Card, 0, len(suits)*len(values))
	for _, s := range suits {
		for _, v := range values {
			deck = append(deck, domain.Card{Suit: s, Value: v})
		}
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}
