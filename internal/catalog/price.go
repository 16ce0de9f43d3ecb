package catalog

import (
	"strings"

	"github.com/emprendia/emprendia-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// FormatPrice renders the Spanish-language price label shown on cards:
// "A convenir", "Desde $32.000", or "$32.000". Amounts are truncated to
// whole pesos and grouped with dots.
func FormatPrice(kind enums.PriceKind, price *decimal.Decimal) string {
	if kind == enums.PriceKindAgree || price == nil {
		return "A convenir"
	}
	amount := "$" + groupThousands(price.IntPart())
	if kind == enums.PriceKindFrom {
		return "Desde " + amount
	}
	return amount
}

func groupThousands(value int64) string {
	negative := value < 0
	if negative {
		value = -value
	}
	digits := []byte{}
	if value == 0 {
		digits = []byte{'0'}
	}
	for value > 0 {
		digits = append(digits, byte('0'+value%10))
		value /= 10
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
		if i > 0 && i%3 == 0 {
			b.WriteByte('.')
		}
	}
	return b.String()
}
