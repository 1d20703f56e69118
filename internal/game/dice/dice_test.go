package dice

import (
	"context"
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

// newEngine makes the rng roll exactly rolls, in order.
func newEngine(funds string, rolls ...int) (*Engine, *gametest.Ledger) {
	ledger := gametest.NewLedger()
	ledger.Fund(1, funds)
	scripted := make([]int, len(rolls))
	for i, r := range rolls {
		scripted[i] = r - 1
	}
	return New(game.NewTable(ledger, roundstore.NewMemory()), gametest.NewScriptedRNG(scripted...)), ledger
}

func TestMultiplier(t *testing.T) {
	tests := []struct {
		prediction string
		target     int
		want       string
	}{
		{prediction: Higher, target: 50, want: "1.96"},
		{prediction: Lower, target: 50, want: "1.96"},
		{prediction: Lower, target: 30, want: "3.27"},
		{prediction: Higher, target: 98, want: "49.00"},
		{prediction: Lower, target: 1, want: "98.00"},
		{prediction: Lower, target: 99, want: "1.10"},
		{prediction: Higher, target: 1, want: "1.10"},
		{prediction: Higher, target: 10, want: "1.10"},
		{prediction: Higher, target: 20, want: "1.23"},
	}

	for _, tt := range tests {
		t.Run(tt.prediction, func(t *testing.T) {
			got, err := Multiplier(tt.prediction, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestRoll_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		prediction string
		target     int
		roll       int
		wantWon    bool
	}{
		{name: "higher above target", prediction: Higher, target: 50, roll: 51, wantWon: true},
		{name: "higher on target", prediction: Higher, target: 50, roll: 50, wantWon: false},
		{name: "lower below target", prediction: Lower, target: 50, roll: 49, wantWon: true},
		{name: "lower on target", prediction: Lower, target: 50, roll: 50, wantWon: false},
		{name: "highest roll", prediction: Higher, target: 99, roll: 100, wantWon: true},
		{name: "lowest roll", prediction: Lower, target: 1, roll: 1, wantWon: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ledger := newEngine("100", tt.roll)

			view, err := e.Roll(context.Background(), 1, dec("10"), tt.prediction, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.roll, view.DiceValue)
			assert.Equal(t, tt.wantWon, view.Won)
			assert.True(t, view.GameOver)
			assert.Equal(t, ledger.Balance(1).Sub(dec("100")).String(), ledger.Net(1).String())
			if !tt.wantWon {
				assert.Equal(t, "lose", view.Result)
				assert.Equal(t, "90.00", view.NewBalance.Decimal.StringFixed(2))
			}
		})
	}
}

func TestRoll_EndToEnd(t *testing.T) {
	e, ledger := newEngine("100.00", 15)

	view, err := e.Roll(context.Background(), 1, dec("10.00"), Lower, 30)
	require.NoError(t, err)

	assert.True(t, view.Won)
	assert.Equal(t, "win", view.Result)
	assert.Equal(t, "3.27", view.Multiplier.StringFixed(2))
	assert.Equal(t, "32.70", view.WinAmount.StringFixed(2))
	assert.Equal(t, "122.70", view.NewBalance.Decimal.StringFixed(2))

	txs := ledger.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, domain.TransactionBet, txs[0].Type)
	assert.Equal(t, "-10.00", txs[0].Amount.StringFixed(2))
	assert.Equal(t, domain.TransactionWin, txs[1].Type)
	assert.Equal(t, "32.70", txs[1].Amount.StringFixed(2))

	records := ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, domain.DiceOutcome{
		DiceValue: 15, Prediction: Lower, TargetNumber: 30, Won: true, Multiplier: dec("3.27"),
	}.Tag(), records[0].Outcome.Tag())
	assert.Equal(t, "32.70", records[0].WinAmount.StringFixed(2))
}

func TestRoll_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		bet        string
		prediction string
		target     int
		wantErr    error
	}{
		{name: "zero bet", bet: "0", prediction: Higher, target: 50, wantErr: game.ErrInvalidBet},
		{name: "bet over balance", bet: "100.01", prediction: Higher, target: 50, wantErr: game.ErrInvalidBet},
		{name: "target zero", bet: "1", prediction: Higher, target: 0, wantErr: game.ErrInvalidParams},
		{name: "target hundred", bet: "1", prediction: Lower, target: 100, wantErr: game.ErrInvalidParams},
		{name: "bad prediction", bet: "1", prediction: "equal", target: 50, wantErr: game.ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ledger := newEngine("100", 42)

			_, err := e.Roll(context.Background(), 1, dec(tt.bet), tt.prediction, tt.target)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "100", ledger.Balance(1).String())
			assert.Empty(t, ledger.Transactions())
			assert.Empty(t, ledger.Records())
		})
	}
}

func TestRoll_LedgerFailure(t *testing.T) {
	e, ledger := newEngine("100", 15)
	ledger.FailOn = "AppendGameRecord"

	_, err := e.Roll(context.Background(), 1, dec("10"), Lower, 30)
	assert.ErrorIs(t, err, gametest.ErrInjected)
	assert.Equal(t, "100", ledger.Balance(1).String())
	assert.Empty(t, ledger.Transactions())
}

func TestRoll_Uniform(t *testing.T) {
	ledger := gametest.NewLedger()
	ledger.Fund(1, "10000")
	e := New(game.NewTable(ledger, roundstore.NewMemory()), game.NewRNG())

	for i := 0; i < 300; i++ {
		view, err := e.Roll(context.Background(), 1, dec("1"), Higher, 50)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, view.DiceValue, 1)
		assert.LessOrEqual(t, view.DiceValue, 100)
	}
	assert.Equal(t, ledger.Balance(1).Sub(dec("10000")).String(), ledger.Net(1).String())
}

func TestConcurrentRollsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	rolls := make([]int, 10)
	for i := range rolls {
		rolls[i] = 100
	}
	e, ledger := newEngine("50", rolls...)

	var (
		wg     sync.WaitGroup
		played atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Roll(ctx, 1, dec("10"), Lower, 50); err == nil {
				played.Add(1)
			} else {
				assert.ErrorIs(t, err, game.ErrInvalidBet)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 5, played.Load())
	assert.Len(t, ledger.Records(), 5)
	assert.True(t, ledger.Balance(1).IsZero())
	assert.Equal(t, "-50", ledger.Net(1).String())
}
