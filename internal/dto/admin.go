package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlayerDTO struct {
	ID        int             `json:"id" example:"2"`
	Login     string          `json:"login" example:"alice"`
	Email     string          `json:"email" example:"alice@example.com"`
	Balance   decimal.Decimal `json:"balance" swaggertype:"string" example:"120.00"`
	CreatedAt time.Time       `json:"createdAt"`
}

type AddBalanceRequestDTO struct {
	Username string          `json:"username" example:"alice"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
}

type AddBalanceResponseDTO struct {
	Message    string          `json:"message" example:"Added 100.00 to alice"`
	NewBalance decimal.Decimal `json:"newBalance" swaggertype:"string" example:"220.00"`
}

type PnLDTO struct {
	TotalPnL      decimal.Decimal `json:"totalPnl" swaggertype:"string" example:"-35.50"`
	TotalGames    int             `json:"totalGames" example:"12"`
	TotalWagered  decimal.Decimal `json:"totalWagered" swaggertype:"string" example:"120.00"`
	TotalWinnings decimal.Decimal `json:"totalWinnings" swaggertype:"string" example:"84.50"`
}

type UserDataResponseDTO struct {
	User    UserDTO            `json:"user"`
	Balance BalanceResponseDTO `json:"balance"`
	HistoryResponseDTO
	PnL PnLDTO `json:"pnl"`
}
