// Package pgtest holds pgxmock helpers shared by repository tests.
package pgtest

import (
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

type decimalArg struct {
	want decimal.Decimal
}

func (a decimalArg) Match(v any) bool {
	d, ok := v.(decimal.Decimal)
	return ok && d.Equal(a.want)
}

// Decimal matches a decimal.Decimal argument by value, ignoring scale.
func Decimal(s string) pgxmock.Argument {
	return decimalArg{want: decimal.RequireFromString(s)}
}

// Dec is decimal.RequireFromString.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
