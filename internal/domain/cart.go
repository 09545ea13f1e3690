package domain

// CartItem is one cart line. ID is cart-local and distinct from ProductID:
// the same product added twice merges into one line, but a deleted-and-undone
// line keeps its original ID. Price is the raw value frozen from the product
// at add time, in whatever representation the catalog delivered it.
type CartItem struct {
	ID         string `json:"id"`
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	Price      any    `json:"price"`
	Quantity   int    `json:"quantity"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Slug       string `json:"slug,omitempty"`
	IsDeleting bool   `json:"isDeleting,omitempty"`
}

// CartState is the full cart snapshot the state machine transitions over.
// TotalItems and TotalPrice are derived from Items after every mutation and
// never written independently. An item with IsDeleting set still counts
// toward both totals until its removal completes.
type CartState struct {
	Items           []CartItem `json:"items"`
	TotalItems      int        `json:"totalItems"`
	TotalPrice      float64    `json:"totalPrice"`
	IsOpen          bool       `json:"isOpen"`
	LastDeletedItem *CartItem  `json:"lastDeletedItem,omitempty"`
	CanUndo         bool       `json:"canUndo"`
}
