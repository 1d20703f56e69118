package game

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/steake/internal/domain"
)

//go:generate mockgen -source=contracts.go -destination=mock_contracts.go -package=game

// Ledger is the durable store of balances, transactions and game records.
// GetBalance must lock the balance row when called inside InTx.
type Ledger interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetBalance(ctx context.Context, userID int) (decimal.Decimal, error)
	SetBalance(ctx context.Context, userID int, balance decimal.Decimal) error
	AppendTransaction(ctx context.Context, tx *domain.Transaction) error
	AppendGameRecord(ctx context.Context, record *domain.GameRecord) error
}

// RoundStore keeps serialized in-progress rounds. Get returns ErrRoundNotFound
// for a missing key.
//
// Swap replaces the value at key only if it still equals old, where a nil old
// means the key must be absent and a nil data deletes the key. It returns
// ErrRoundConflict otherwise, atomically across every client of the store.
type RoundStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Swap(ctx context.Context, key string, old, data []byte) error
}

// RNG returns uniformly distributed integers in [0, n).
type RNG interface {
	Intn(n int) int
}
