package cart

import (
	"encoding/json"
	"fmt"

	carterrors "github.com/abgdnv/gocart/internal/errors"
	"github.com/shopspring/decimal"
)

// snapshotItem is the persisted layout of a line item.
type snapshotItem struct {
	Product  string          `json:"product"`
	Price    json.RawMessage `json:"price"`
	Quantity int             `json:"quantity"`
}

// EncodeSnapshot serializes items into the persisted snapshot format:
// a JSON array of {"product", "price", "quantity"} objects.
func EncodeSnapshot(items []LineItem) ([]byte, error) {
	out := make([]snapshotItem, 0, len(items))
	for _, it := range items {
		out = append(out, snapshotItem{
			Product:  it.Product,
			Price:    json.RawMessage(it.UnitPrice.String()),
			Quantity: it.Quantity,
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a persisted snapshot and validates every entry.
// Any violation is reported as ErrMalformedSnapshot.
func DecodeSnapshot(data []byte) ([]LineItem, error) {
	var raw []snapshotItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", carterrors.ErrMalformedSnapshot, err)
	}

	items := make([]LineItem, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, r := range raw {
		unitPrice, err := decodePrice(r.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", carterrors.ErrMalformedSnapshot, i, err)
		}
		switch {
		case r.Product == "":
			return nil, fmt.Errorf("%w: item %d has no product", carterrors.ErrMalformedSnapshot, i)
		case unitPrice.IsNegative():
			return nil, fmt.Errorf("%w: item %d has negative price", carterrors.ErrMalformedSnapshot, i)
		case r.Quantity < 1:
			return nil, fmt.Errorf("%w: item %d has quantity %d", carterrors.ErrMalformedSnapshot, i, r.Quantity)
		}
		if _, dup := seen[r.Product]; dup {
			return nil, fmt.Errorf("%w: duplicate product %q", carterrors.ErrMalformedSnapshot, r.Product)
		}
		seen[r.Product] = struct{}{}
		items = append(items, LineItem{
			Product:   r.Product,
			UnitPrice: unitPrice,
			Quantity:  r.Quantity,
		})
	}
	return items, nil
}

// decodePrice reads a bare JSON number without going through float64.
func decodePrice(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || raw[0] == '"' || string(raw) == "null" {
		return decimal.Decimal{}, fmt.Errorf("price must be a number, got %q", string(raw))
	}
	return decimal.NewFromString(string(raw))
}
