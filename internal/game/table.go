package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/metrics"
)

// Round is an in-progress round as persisted in a RoundStore.
type Round interface {
	Owner() int
}

// Summary is the money part of a round view.
type Summary struct {
	GameOver   bool                `json:"gameOver"`
	Result     string              `json:"result,omitempty"`
	WinAmount  decimal.Decimal     `json:"winAmount"`
	NewBalance decimal.NullDecimal `json:"newBalance"`
}

// Settlement closes a round.
type Settlement struct {
	// Bet is the total wagered over the whole round.
	Bet     decimal.Decimal
	Win     decimal.Decimal
	WinNote string
	Outcome domain.Outcome
}

// Step is one all-or-nothing change to a user's balance and active round.
type Step struct {
	Game   domain.GameType
	UserID int

	// Stake is debited first when positive. Shortfall is returned when the
	// balance can't cover it.
	Stake     decimal.Decimal
	StakeNote string
	Shortfall error

	// Round becomes the active round unless Settle is set, in which case the
	// active round is removed.
	Round  Round
	Settle *Settlement
}

// Table owns active rounds and the money moving through them.
//
// Lock only serializes callers of this Table. Other processes sharing the
// store are fenced by writing through RoundStore.Swap against the bytes the
// caller last read with Load or Active.
type Table struct {
	ledger Ledger
	store  RoundStore
	locks  *KeyedMutex
	now    func() time.Time

	seenMu sync.Mutex
	seen   map[string][]byte
}

func NewTable(ledger Ledger, store RoundStore) *Table {
	return &Table{
		ledger: ledger,
		store:  store,
		locks:  NewKeyedMutex(),
		now:    time.Now,
		seen:   make(map[string][]byte),
	}
}

func RoundKey(game domain.GameType, userID int) string {
	return fmt.Sprintf("%s:%d", game, userID)
}

// Lock serializes calls for one (user, game) pair.
func (t *Table) Lock(game domain.GameType, userID int) func() {
	key := RoundKey(game, userID)
	unlock := t.locks.Lock(key)
	return func() {
		t.forget(key)
		unlock()
	}
}

func (t *Table) remember(key string, data []byte) {
	t.seenMu.Lock()
	defer t.seenMu.Unlock()
	t.seen[key] = data
}

func (t *Table) forget(key string) {
	t.seenMu.Lock()
	defer t.seenMu.Unlock()
	delete(t.seen, key)
}

// expected returns the round bytes this Table last read or wrote for key.
func (t *Table) expected(ctx context.Context, key string) ([]byte, error) {
	t.seenMu.Lock()
	data, ok := t.seen[key]
	t.seenMu.Unlock()
	if ok {
		return data, nil
	}
	return t.snapshot(ctx, key)
}

// swap writes data over the expected round, mapping a lost race to the
// error the caller would have seen had it read the store afterwards.
func (t *Table) swap(ctx context.Context, key string, old, data []byte) error {
	err := t.store.Swap(ctx, key, old, data)
	if errors.Is(err, ErrRoundConflict) {
		zap.L().Warn("round changed by another writer", zap.String("key", key))
		if old == nil {
			return fmt.Errorf("%w: round already in progress: %w", ErrInvalidAction, err)
		}
		return fmt.Errorf("%w: %w", ErrNoActiveRound, err)
	}
	return err
}

// Load decodes the user's active round into dst.
func (t *Table) Load(ctx context.Context, game domain.GameType, userID int, dst Round) error {
	key := RoundKey(game, userID)
	raw, err := t.store.Get(ctx, key)
	if errors.Is(err, ErrRoundNotFound) {
		t.remember(key, nil)
		return ErrNoActiveRound
	}
	if err != nil {
		zap.L().Error("failed to read round", zap.String("game", string(game)), zap.Error(err))
		return err
	}
	t.remember(key, raw)
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s round: %w", game, err)
	}
	if dst.Owner() != userID {
		return ErrNotOwner
	}
	return nil
}

// Active reports whether the user has a round in progress.
func (t *Table) Active(ctx context.Context, game domain.GameType, userID int) (bool, error) {
	key := RoundKey(game, userID)
	raw, err := t.store.Get(ctx, key)
	if errors.Is(err, ErrRoundNotFound) {
		t.remember(key, nil)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	t.remember(key, raw)
	return true, nil
}

// Save persists a round change that moves no money.
func (t *Table) Save(ctx context.Context, game domain.GameType, userID int, round Round) error {
	data, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("encode %s round: %w", game, err)
	}
	key := RoundKey(game, userID)
	prev, err := t.expected(ctx, key)
	if err != nil {
		return err
	}
	if err := t.swap(ctx, key, prev, data); err != nil {
		zap.L().Error("failed to save round", zap.String("game", string(game)), zap.Error(err))
		return err
	}
	t.remember(key, data)
	return nil
}

// Apply runs a step inside one ledger transaction and returns the resulting
// balance. On failure neither the ledger nor the active round change. The
// round store is written last inside the transaction, so losing a race with
// another writer rolls the ledger back.
func (t *Table) Apply(ctx context.Context, s Step) (decimal.Decimal, error) {
	key := RoundKey(s.Game, s.UserID)

	var data []byte
	if s.Settle == nil && s.Round != nil {
		var err error
		if data, err = json.Marshal(s.Round); err != nil {
			return decimal.Zero, fmt.Errorf("encode %s round: %w", s.Game, err)
		}
	}

	prev, err := t.expected(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}

	var (
		balance      decimal.Decimal
		storeTouched bool
	)
	err = t.ledger.InTx(ctx, func(ctx context.Context) error {
		bal, err := t.ledger.GetBalance(ctx, s.UserID)
		if err != nil {
			return err
		}
		now := t.now()

		if stake := s.Stake.Round(2); stake.IsPositive() {
			if bal.LessThan(stake) {
				shortfall := s.Shortfall
				if shortfall == nil {
					shortfall = ErrInsufficientBalance
				}
				return fmt.Errorf("%w: balance %s, stake %s", shortfall, bal.StringFixed(2), stake.StringFixed(2))
			}
			bal = bal.Sub(stake)
			err = t.ledger.AppendTransaction(ctx, &domain.Transaction{
				UserID:      s.UserID,
				Type:        domain.TransactionBet,
				Amount:      stake.Neg(),
				Description: s.StakeNote,
				CreatedAt:   now,
			})
			if err != nil {
				return err
			}
		}

		if st := s.Settle; st != nil {
			win := st.Win.Round(2)
			bal = bal.Add(win)
			if win.IsPositive() {
				err = t.ledger.AppendTransaction(ctx, &domain.Transaction{
					UserID:      s.UserID,
					Type:        domain.TransactionWin,
					Amount:      win,
					Description: st.WinNote,
					CreatedAt:   now,
				})
				if err != nil {
					return err
				}
			}
			err = t.ledger.AppendGameRecord(ctx, &domain.GameRecord{
				UserID:    s.UserID,
				GameType:  s.Game,
				BetAmount: st.Bet.Round(2),
				WinAmount: win,
				Outcome:   st.Outcome,
				CreatedAt: now,
			})
			if err != nil {
				return err
			}
		}

		if err := t.ledger.SetBalance(ctx, s.UserID, bal); err != nil {
			return err
		}

		if s.Settle != nil || data != nil {
			err = t.swap(ctx, key, prev, data)
			storeTouched = !errors.Is(err, ErrRoundConflict)
			if err != nil {
				return err
			}
		}
		balance = bal
		return nil
	})
	if err != nil {
		if storeTouched {
			t.restore(ctx, key, data, prev)
		}
		return decimal.Zero, err
	}
	if s.Settle != nil || data != nil {
		t.remember(key, data)
	}

	if s.Settle != nil {
		metrics.RecordSettlement(string(s.Game), s.Settle.Outcome.Tag(), s.Settle.Bet, s.Settle.Win)
		zap.L().Info("round settled",
			zap.String("game", string(s.Game)),
			zap.Int("userID", s.UserID),
			zap.String("result", s.Settle.Outcome.Tag()),
			zap.String("bet", s.Settle.Bet.StringFixed(2)),
			zap.String("win", s.Settle.Win.StringFixed(2)),
		)
	}
	return balance, nil
}

func (t *Table) snapshot(ctx context.Context, key string) ([]byte, error) {
	raw, err := t.store.Get(ctx, key)
	if errors.Is(err, ErrRoundNotFound) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to snapshot round", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return raw, nil
}

// restore puts prev back if the store still holds what this step wrote.
func (t *Table) restore(ctx context.Context, key string, written, prev []byte) {
	if err := t.store.Swap(ctx, key, written, prev); err != nil {
		zap.L().Error("failed to restore round after ledger failure", zap.String("key", key), zap.Error(err))
	}
}

// Settled builds the summary of a terminal step.
func Settled(result string, win, balance decimal.Decimal) Summary {
	return Summary{
		GameOver:   true,
		Result:     result,
		WinAmount:  win.Round(2),
		NewBalance: decimal.NewNullDecimal(balance),
	}
}

// Open builds the summary of a step that leaves the round in progress.
func Open(balance decimal.NullDecimal) Summary {
	return Summary{WinAmount: decimal.Zero, NewBalance: balance}
}
