package game

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CheckBet rejects non-positive bets and fractions of a cent.
func CheckBet(bet decimal.Decimal) error {
	if !bet.IsPositive() {
		return fmt.Errorf("%w: bet must be greater than 0", ErrInvalidBet)
	}
	if !bet.Equal(bet.Round(2)) {
		return fmt.Errorf("%w: bet has more than two decimal places", ErrInvalidBet)
	}
	return nil
}
