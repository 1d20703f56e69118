package blackjack

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/game"
	"github.com/GlebRadaev/steake/internal/game/gametest"
	"github.com/GlebRadaev/steake/internal/roundstore"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func hand(values ...string) []domain.Card {
	cards := make([]domain.Card, len(values))
	for i, v := range values {
		cards[i] = domain.Card{Suit: "♠", Value: v}
	}
	return cards
}

// newEngine deals player[0], player[1], dealer[0], dealer[1] and then the
// rest of values in order.
func newEngine(t *testing.T, funds string, values ...string) (*Engine, *gametest.Ledger) {
	t.Helper()
	ledger := gametest.NewLedger()
	ledger.Fund(1, funds)
	e := New(game.NewTable(ledger, roundstore.NewMemory()), gametest.NewScriptedRNG())
	e.newDeck = func() []domain.Card { return hand(values...) }
	return e, ledger
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards []domain.Card
		want  int
	}{
		{name: "two aces and nine", cards: hand("A", "A", "9"), want: 21},
		{name: "three aces and eight", cards: hand("A", "A", "A", "8"), want: 21},
		{name: "faces", cards: hand("K", "Q"), want: 20},
		{name: "natural", cards: hand("A", "K"), want: 21},
		{name: "soft seventeen", cards: hand("A", "6"), want: 17},
		{name: "soft hand goes hard", cards: hand("A", "6", "9"), want: 16},
		{name: "bust", cards: hand("K", "Q", "2"), want: 22},
		{name: "empty", cards: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandValue(tt.cards))
			assert.Equal(t, tt.want, HandValue(tt.cards))
		})
	}
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck(game.NewRNG())
	require.Len(t, deck, 52)

	seen := make(map[string]bool)
	for _, c := range deck {
		seen[c.String()] = true
	}
	assert.Len(t, seen, 52)
}

func TestNewDeck_FisherYates(t *testing.T) {
	deck := NewDeck(gametest.NewScriptedRNG())

	// j is always 0, so every swap pulls the front card to the back.
	assert.Equal(t, domain.Card{Suit: "♠", Value: "2"}, deck[0])
	assert.Equal(t, domain.Card{Suit: "♠", Value: "A"}, deck[51])
}

func TestDeal(t *testing.T) {
	tests := []struct {
		name        string
		deck        []string
		wantPhase   Phase
		wantResult  string
		wantWin     string
		wantBalance string
		wantActive  bool
	}{
		{
			name:        "natural pays two and a half",
			deck:        []string{"A", "K", "9", "7"},
			wantPhase:   PhaseSettled,
			wantResult:  ResultBlackjack,
			wantWin:     "25.00",
			wantBalance: "115.00",
		},
		{
			name:        "both natural push",
			deck:        []string{"A", "K", "A", "Q"},
			wantPhase:   PhaseSettled,
			wantResult:  ResultPush,
			wantWin:     "10.00",
			wantBalance: "100.00",
		},
		{
			name:        "player turn",
			deck:        []string{"10", "7", "9", "8"},
			wantPhase:   PhasePlayerTurn,
			wantWin:     "0.00",
			wantBalance: "90.00",
			wantActive:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ledger := newEngine(t, "100", tt.deck...)

			view, err := e.Deal(context.Background(), 1, dec("10"))
			require.NoError(t, err)

			assert.Equal(t, tt.wantPhase, view.Phase)
			assert.Equal(t, tt.wantResult, view.Result)
			assert.Equal(t, tt.wantWin, view.WinAmount.StringFixed(2))
			assert.Equal(t, tt.wantBalance, view.NewBalance.Decimal.StringFixed(2))
			assert.Equal(t, !tt.wantActive, view.GameOver)
			assert.Equal(t, tt.wantBalance, ledger.Balance(1).StringFixed(2))
			assert.Equal(t, ledger.Balance(1).Sub(dec("100")).String(), ledger.Net(1).String())

			active, err := e.table.Active(context.Background(), domain.GameBlackjack, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantActive, active)
		})
	}
}

func TestDeal_HidesHoleCard(t *testing.T) {
	e, _ := newEngine(t, "100", "10", "7", "9", "8")

	view, err := e.Deal(context.Background(), 1, dec("10"))
	require.NoError(t, err)

	assert.NotEmpty(t, view.RoundID)
	assert.True(t, view.HoleHidden)
	assert.Equal(t, hand("9"), view.DealerCards)
	assert.Equal(t, 9, view.DealerTotal)
	assert.Equal(t, 17, view.PlayerTotal)
	assert.True(t, view.CanDouble)
}

func TestDeal_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		bet     string
		wantErr error
	}{
		{name: "zero", bet: "0", wantErr: game.ErrInvalidBet},
		{name: "negative", bet: "-1", wantErr: game.ErrInvalidBet},
		{name: "over balance", bet: "100.01", wantErr: game.ErrInvalidBet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ledger := newEngine(t, "100", "10", "7", "9", "8")

			_, err := e.Deal(context.Background(), 1, dec(tt.bet))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "100", ledger.Balance(1).String())
			assert.Empty(t, ledger.Transactions())
		})
	}
}

func TestDeal_WhileActive(t *testing.T) {
	e, ledger := newEngine(t, "100", "10", "7", "9", "8")

	_, err := e.Deal(context.Background(), 1, dec("10"))
	require.NoError(t, err)

	_, err = e.Deal(context.Background(), 1, dec("10"))
	assert.ErrorIs(t, err, game.ErrInvalidAction)
	assert.Equal(t, "90.00", ledger.Balance(1).StringFixed(2))
}

func TestHit(t *testing.T) {
	ctx := context.Background()
	e, ledger := newEngine(t, "100", "2", "3", "10", "7", "4", "K", "Q")

	_, err := e.Deal(ctx, 1, dec("10"))
	require.NoError(t, err)

	view, err := e.Hit(ctx, 1)
	require.NoError(t, err)
	assert.False(t, view.GameOver)
	assert.Equal(t, 9, view.PlayerTotal)
	assert.False(t, view.CanDouble)
	assert.False(t, view.NewBalance.Valid)

	view, err = e.Hit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 19, view.PlayerTotal)

	view, err = e.Hit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, view.GameOver)
	assert.Equal(t, ResultBust, view.Result)
	assert.True(t, view.WinAmount.IsZero())
	assert.Equal(t, "90.00", view.NewBalance.Decimal.StringFixed(2))
	assert.False(t, view.HoleHidden)

	records := ledger.Records()
	require.Len(t, records, 1)
	outcome, ok := records[0].Outcome.(domain.BlackjackOutcome)
	require.True(t, ok)
	assert.Equal(t, 29, outcome.PlayerTotal)
	assert.Equal(t, ResultBust, outcome.Result)
	assert.Len(t, ledger.Transactions(), 1)

	_, err = e.Hit(ctx, 1)
	assert.ErrorIs(t, err, game.ErrNoActiveRound)
}

func TestStand(t *testing.T) {
	tests := []struct {
		name        string
		deck        []string
		wantResult  string
		wantDealer  int
		wantBalance string
	}{
		{name: "dealer draws to twenty one", deck: []string{"10", "9", "9", "7", "5"}, wantResult: ResultLose, wantDealer: 21, wantBalance: "90.00"},
		{name: "dealer busts", deck: []string{"10", "2", "9", "7", "K"}, wantResult: ResultWin, wantDealer: 26, wantBalance: "110.00"},
		{name: "dealer stands on seventeen", deck: []string{"10", "8", "10", "7"}, wantResult: ResultWin, wantDealer: 17, wantBalance: "110.00"},
		{name: "dealer stands on soft seventeen", deck: []string{"10", "7", "A", "6"}, wantResult: ResultPush, wantDealer: 17, wantBalance: "100.00"},
		{name: "dealer higher", deck: []string{"10", "6", "10", "8"}, wantResult: ResultLose, wantDealer: 18, wantBalance: "90.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			e, ledger := newEngine(t, "100", tt.deck...)

			_, err := e.Deal(ctx, 1, dec("10"))
			require.NoError(t, err)

			view, err := e.Stand(ctx, 1)
			require.NoError(t, err)
			assert.True(t, view.GameOver)
			assert.Equal(t, PhaseSettled, view.Phase)
			assert.Equal(t, tt.wantResult, view.Result)
			assert.Equal(t, tt.wantDealer, view.DealerTotal)
			assert.Equal(t, tt.wantBalance, ledger.Balance(1).StringFixed(2))
			assert.Equal(t, ledger.Balance(1).Sub(dec("100")).String(), ledger.Net(1).String())

			_, err = e.Stand(ctx, 1)
			assert.ErrorIs(t, err, game.ErrNoActiveRound)
		})
	}
}

func TestDouble(t *testing.T) {
	ctx := context.Background()
	e, ledger := newEngine(t, "100", "5", "6", "10", "7", "10")

	_, err := e.Deal(ctx, 1, dec("10"))
	require.NoError(t, err)

	view, err := e.Double(ctx, 1)
	require.NoError(t, err)
	assert.True(t, view.GameOver)
	assert.Equal(t, ResultWin, view.Result)
	assert.Equal(t, "20.00", view.Bet.StringFixed(2))
	assert.Equal(t, "40.00", view.WinAmount.StringFixed(2))
	assert.Equal(t, "120.00", view.NewBalance.Decimal.StringFixed(2))
	assert.Len(t, view.PlayerCards, 3)

	txs := ledger.Transactions()
	require.Len(t, txs, 3)
	assert.Equal(t, "-10.00", txs[0].Amount.StringFixed(2))
	assert.Equal(t, "-10.00", txs[1].Amount.StringFixed(2))
	assert.Equal(t, "40.00", txs[2].Amount.StringFixed(2))
	assert.Equal(t, "20", ledger.Net(1).String())

	records := ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "20.00", records[0].BetAmount.StringFixed(2))
}

func TestDouble_Bust(t *testing.T) {
	ctx := context.Background()
	e, ledger := newEngine(t, "100", "10", "6", "10", "7", "K")

	_, err := e.Deal(ctx, 1, dec("10"))
	require.NoError(t, err)

	view, err := e.Double(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ResultBust, view.Result)
	assert.Len(t, view.DealerCards, 2)
	assert.Equal(t, "80.00", ledger.Balance(1).StringFixed(2))
}

func TestDouble_AfterHit(t *testing.T) {
	ctx := context.Background()
	e, ledger := newEngine(t, "100", "2", "3", "10", "7", "4")

	_, err := e.Deal(ctx, 1, dec("10"))
	require.NoError(t, err)
	_, err = e.Hit(ctx, 1)
	require.NoError(t, err)

	_, err = e.Double(ctx, 1)
	assert.ErrorIs(t, err, game.ErrInvalidAction)
	assert.Equal(t, "90.00", ledger.Balance(1).StringFixed(2))
}

func TestDouble_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	e, ledger := newEngine(t, "15", "10", "8", "10", "7", "2")

	_, err := e.Deal(ctx, 1, dec("10"))
	require.NoError(t, err)

	_, err = e.Double(ctx, 1)
	assert.ErrorIs(t, err, game.ErrInsufficientBalance)
	assert.Equal(t, "5.00", ledger.Balance(1).StringFixed(2))
	assert.Len(t, ledger.Transactions(), 1)

	view, err := e.Stand(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ResultWin, view.Result)
	assert.Len(t, view.PlayerCards, 2)
	assert.Equal(t, "25.00", ledger.Balance(1).StringFixed(2))
}

func TestAct(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, "100", "10", "8", "10", "7")

	_, err := e.Act(ctx, 1, "split", decimal.Zero)
	assert.ErrorIs(t, err, game.ErrInvalidAction)

	_, err = e.Act(ctx, 1, ActionStand, decimal.Zero)
	assert.ErrorIs(t, err, game.ErrNoActiveRound)

	view, err := e.Act(ctx, 1, ActionDeal, dec("5"))
	require.NoError(t, err)
	assert.Equal(t, PhasePlayerTurn, view.Phase)

	view, err = e.Act(ctx, 1, ActionStand, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, ResultWin, view.Result)
}

func TestRoundsConserveMoney(t *testing.T) {
	ctx := context.Background()
	ledger := gametest.NewLedger()
	ledger.Fund(1, "1000")
	e := New(game.NewTable(ledger, roundstore.NewMemory()), game.NewRNG())
	rng := game.NewRNG()

	for i := 0; i < 200; i++ {
		view, err := e.Deal(ctx, 1, dec("5"))
		require.NoError(t, err)
		for !view.GameOver {
			switch rng.Intn(3) {
			case 0:
				view, err = e.Hit(ctx, 1)
			case 1:
				view, err = e.Stand(ctx, 1)
			default:
				view, err = e.Double(ctx, 1)
				if err != nil {
					require.ErrorIs(t, err, game.ErrInvalidAction)
					view, err = e.Stand(ctx, 1)
				}
			}
			require.NoError(t, err)
		}
		assert.False(t, ledger.Balance(1).IsNegative())
	}

	assert.Equal(t, ledger.Balance(1).Sub(dec("1000")).String(), ledger.Net(1).String())
	assert.Len(t, ledger.Records(), 200)
}

func TestConcurrentDealDebitsOnce(t *testing.T) {
	ctx := context.Background()
	e, ledger := newEngine(t, "10", "10", "7", "9", "8")

	var (
		wg    sync.WaitGroup
		dealt atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Deal(ctx, 1, dec("10"))
			if err == nil {
				dealt.Add(1)
				return
			}
			assert.True(t, errors.Is(err, game.ErrInvalidAction) || errors.Is(err, game.ErrInvalidBet), err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, dealt.Load())
	require.Len(t, ledger.Transactions(), 1)
	assert.Equal(t, domain.TransactionBet, ledger.Transactions()[0].Type)
	assert.True(t, ledger.Balance(1).IsZero())
}

func TestConcurrentStandSettlesOnce(t *testing.T) {
	ctx := context.Background()
	e, ledger := newEngine(t, "100", "10", "9", "10", "7")

	_, err := e.Deal(ctx, 1, dec("10"))
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		settled atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Stand(ctx, 1); err == nil {
				settled.Add(1)
			} else {
				assert.ErrorIs(t, err, game.ErrNoActiveRound)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, settled.Load())
	assert.Len(t, ledger.Records(), 1)
	assert.Len(t, ledger.Transactions(), 2)
	assert.Equal(t, "110.00", ledger.Balance(1).StringFixed(2))
	assert.Equal(t, ledger.Balance(1).Sub(dec("100")).String(), ledger.Net(1).String())
}
