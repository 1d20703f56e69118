package dto

import "github.com/shopspring/decimal"

type BlackjackRequestDTO struct {
	Action    string          `json:"action" example:"deal" enums:"deal,hit,stand,double"`
	BetAmount decimal.Decimal `json:"betAmount" swaggertype:"string" example:"10.00"`
}

type DiceRequestDTO struct {
	BetAmount    decimal.Decimal `json:"betAmount" swaggertype:"string" example:"10.00"`
	Prediction   string          `json:"prediction" example:"higher" enums:"higher,lower"`
	TargetNumber int             `json:"targetNumber" example:"50"`
}

type MinesRequestDTO struct {
	Action     string          `json:"action" example:"start" enums:"start,reveal,cashout"`
	BetAmount  decimal.Decimal `json:"betAmount" swaggertype:"string" example:"10.00"`
	MinesCount int             `json:"minesCount" example:"3"`
	Cell       *int            `json:"cell,omitempty" example:"12"`
}
