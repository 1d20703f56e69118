package validate

import (
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

// CardNumber strips spaces and dashes and reports whether what remains is a
// 12 to 19 digit number passing the Luhn check.
func CardNumber(s string) (string, bool) {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(s)
	if len(digits) < 12 || len(digits) > 19 {
		return "", false
	}
	if err := goluhn.Validate(digits); err != nil {
		return "", false
	}
	return digits, true
}

// MaskCard keeps only the last four digits.
func MaskCard(card string) string {
	if len(card) <= 4 {
		return card
	}
	return "****" + card[len(card)-4:]
}
