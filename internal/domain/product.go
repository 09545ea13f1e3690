package domain

import "time"

// Product is a catalog entry as served to the storefront. Price carries the
// raw upstream value untouched: the catalog feed does not guarantee a type,
// so it may arrive as a JSON number, a numeric string, or a decorated string
// such as "$1,299.00". Consumers go through the price package to read it.
type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       any       `json:"price"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
