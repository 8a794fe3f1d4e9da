package domain

// Item is catalog stock as the service reports it. Immutable on this side;
// stock is advisory display only and never enforced against the cart.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Stock       int    `json:"stock"`
	CategoryID  int64  `json:"category_id"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
