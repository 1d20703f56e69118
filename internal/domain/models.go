package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	BirthDate    time.Time `db:"birth_date"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}

type Balance struct {
	ID             int             `db:"id"`
	UserID         int             `db:"user_id"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	WithdrawnTotal decimal.Decimal `db:"withdrawn_total"`
}

// Player is a user row joined with its balance, as listed to admins.
type Player struct {
	ID        int             `db:"id"`
	Login     string          `db:"login"`
	Email     string          `db:"email"`
	Balance   decimal.Decimal `db:"current_balance"`
	CreatedAt time.Time       `db:"created_at"`
}

type Withdrawal struct {
	ID          int             `db:"id"`
	UserID      int             `db:"user_id"`
	CardNumber  string          `db:"card_number"`
	Sum         decimal.Decimal `db:"sum"`
	ProcessedAt time.Time       `db:"processed_at"`
}

type TransactionType string

const (
	TransactionBet        TransactionType = "bet"
	TransactionWin        TransactionType = "win"
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Transaction is an immutable ledger entry. Amount is signed: debits are negative.
type Transaction struct {
	ID          int             `db:"id"`
	UserID      int             `db:"user_id"`
	Type        TransactionType `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}

type GameRecord struct {
	ID        int             `db:"id"`
	UserID    int             `db:"user_id"`
	GameType  GameType        `db:"game_type"`
	BetAmount decimal.Decimal `db:"bet_amount"`
	WinAmount decimal.Decimal `db:"win_amount"`
	Outcome   Outcome         `db:"result"`
	CreatedAt time.Time       `db:"created_at"`
}

// PnL aggregates a user's game records.
type PnL struct {
	TotalPnL      decimal.Decimal `db:"total_pnl"`
	TotalGames    int             `db:"total_games"`
	TotalWagered  decimal.Decimal `db:"total_wagered"`
	TotalWinnings decimal.Decimal `db:"total_winnings"`
}

// History is a user's recent ledger activity.
type History struct {
	Transactions []Transaction
	Games        []GameRecord
}

// PlayerReport is everything an admin sees about one player.
type PlayerReport struct {
	User    *User
	Balance *Balance
	History
	PnL *PnL
}
