// Package gametest provides in-memory collaborators for round engine tests.
package gametest

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/steake/internal/domain"
)

var ErrInjected = errors.New("injected ledger failure")

// Ledger is an in-memory game.Ledger. InTx is serialized and rolls back
// every change made by a failing fn.
type Ledger struct {
	txMu sync.Mutex
	mu   sync.Mutex

	balances     map[int]decimal.Decimal
	transactions []domain.Transaction
	records      []domain.GameRecord

	// FailOn names a method ("SetBalance", "AppendTransaction", ...) that
	// returns ErrInjected.
	FailOn string
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[int]decimal.Decimal)}
}

// Fund sets a user's opening balance.
func (l *Ledger) Fund(userID int, amount string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[userID] = decimal.RequireFromString(amount)
}

func (l *Ledger) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	l.txMu.Lock()
	defer l.txMu.Unlock()

	l.mu.Lock()
	balances := make(map[int]decimal.Decimal, len(l.balances))
	for k, v := range l.balances {
		balances[k] = v
	}
	txs, recs := len(l.transactions), len(l.records)
	l.mu.Unlock()

	if err := fn(ctx); err != nil {
		l.mu.Lock()
		l.balances = balances
		l.transactions = l.transactions[:txs]
		l.records = l.records[:recs]
		l.mu.Unlock()
		return err
	}
	return nil
}

func (l *Ledger) GetBalance(_ context.Context, userID int) (decimal.Decimal, error) {
	if l.FailOn == "GetBalance" {
		return decimal.Zero, ErrInjected
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID], nil
}

func (l *Ledger) SetBalance(_ context.Context, userID int, balance decimal.Decimal) error {
	if l.FailOn == "SetBalance" {
		return ErrInjected
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[userID] = balance
	return nil
}

func (l *Ledger) AppendTransaction(_ context.Context, tx *domain.Transaction) error {
	if l.FailOn == "AppendTransaction" {
		return ErrInjected
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append(l.transactions, *tx)
	return nil
}

func (l *Ledger) AppendGameRecord(_ context.Context, record *domain.GameRecord) error {
	if l.FailOn == "AppendGameRecord" {
		return ErrInjected
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, *record)
	return nil
}

func (l *Ledger) Balance(userID int) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID]
}

func (l *Ledger) Transactions() []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Transaction(nil), l.transactions...)
}

func (l *Ledger) Records() []domain.GameRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.GameRecord(nil), l.records...)
}

// Net sums the signed amounts of a user's transactions.
func (l *Ledger) Net(userID int) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	sum := decimal.Zero
	for _, tx := range l.transactions {
		if tx.UserID == userID {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// ScriptedRNG replays fixed values, each reduced modulo n, then falls back
// to zero.
type ScriptedRNG struct {
	mu     sync.Mutex
	values []int
}

func NewScriptedRNG(values ...int) *ScriptedRNG {
	return &ScriptedRNG{values: values}
}

func (r *ScriptedRNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}
