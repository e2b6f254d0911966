package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem is one product entry in the cart.
type LineItem struct {
	Product   string
	UnitPrice decimal.Decimal
	Quantity  int
}

// LineTotal returns UnitPrice * Quantity.
func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

func indexOf(items []LineItem, product string) int {
	for i := range items {
		if items[i].Product == product {
			return i
		}
	}
	return -1
}
