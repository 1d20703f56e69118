package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceResponseDTO struct {
	Current   decimal.Decimal `json:"current" swaggertype:"string" example:"500.50"`
	Withdrawn decimal.Decimal `json:"withdrawn" swaggertype:"string" example:"42.00"`
}
type BalanceWithdrawRequestDTO struct {
	CardNumber string          `json:"cardNumber" example:"4561261212345467"`
	Sum        decimal.Decimal `json:"sum" swaggertype:"string" example:"500.00"`
}

type GetWithdrawalsResponseDTO struct {
	CardNumber  string          `json:"cardNumber" example:"****5467"`
	Sum         decimal.Decimal `json:"sum" swaggertype:"string" example:"500.00"`
	ProcessedAt time.Time       `json:"processedAt" example:"2020-12-09T16:09:57+03:00"`
}

type TransactionDTO struct {
	ID          int             `json:"id" example:"10"`
	Type        string          `json:"type" example:"bet"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"-10.00"`
	Description string          `json:"description" example:"Dice game bet - higher than 50"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type GameRecordDTO struct {
	ID        int             `json:"id" example:"3"`
	GameType  string          `json:"gameType" example:"dice"`
	BetAmount decimal.Decimal `json:"betAmount" swaggertype:"string" example:"10.00"`
	WinAmount decimal.Decimal `json:"winAmount" swaggertype:"string" example:"19.60"`
	Result    any             `json:"result" swaggertype:"object"`
	CreatedAt time.Time       `json:"createdAt"`
}

type HistoryResponseDTO struct {
	Transactions []TransactionDTO `json:"transactions"`
	Games        []GameRecordDTO  `json:"games"`
}
