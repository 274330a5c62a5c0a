package cart

import (
	"math"
	"strconv"
	"strings"

	"storefront.GO/catalog"
)

// BuildLineItem resolves the selection against the product and returns a
// self-contained line item: plain property values plus a full per-currency
// price table with the options' additional cost folded into every currency.
func BuildLineItem(p catalog.Product, quantity int, selection map[string]int) LineItem {
	return LineItem{
		ID:         p.ID,
		Quantity:   quantity,
		Properties: p.ResolveProperties(selection),
		ProductInfo: ProductInfo{
			Name:                   p.Name,
			Prices:                 p.PriceTable(selection),
			Path:                   p.Path,
			ImagePath:              p.ImagePath,
			PropertiesToShowInCart: append([]string(nil), p.PropertiesToShowInCart...),
		},
	}
}

// ParseQuantity validates a quantity submission. Only a positive integer is
// a valid trigger; zero, negative, fractional and non-numeric input return
// ok=false and callers keep their prior state.
func ParseQuantity(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// QuantityFromNumber validates a numeric quantity, typically a decoded JSON
// number. Fractions are rejected, not truncated.
func QuantityFromNumber(n float64) (int, bool) {
	if n <= 0 || n != math.Trunc(n) {
		return 0, false
	}
	return int(n), true
}
