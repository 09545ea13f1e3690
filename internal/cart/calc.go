package cart

import (
	"eggypro-store/internal/domain"
	"eggypro-store/internal/price"
)

// Quantity bounds for a single cart line.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// CountItems returns the total unit count across all lines. Lines marked
// deleting still count until their removal completes.
func CountItems(items []domain.CartItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// TotalPrice returns the monetary total across all lines. Lines with an
// unparsable price contribute zero instead of failing the total.
func TotalPrice(items []domain.CartItem) float64 {
	lines := make([]price.Line, len(items))
	for i, it := range items {
		lines[i] = price.Line{Price: it.Price, Quantity: it.Quantity}
	}
	return price.Sum(lines).Value
}

// withTotals returns the state with TotalItems and TotalPrice recomputed
// from Items. Every mutation of Items goes through this, so the derived
// fields can never drift from the lines.
func withTotals(s domain.CartState) domain.CartState {
	s.TotalItems = CountItems(s.Items)
	s.TotalPrice = TotalPrice(s.Items)
	return s
}

func validQuantity(q int) bool {
	return q >= MinQuantity && q <= MaxQuantity
}

func cloneItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}

func findItem(items []domain.CartItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func findByProduct(items []domain.CartItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
