package domain

// LineItem is a cart entry joined with its product for display.
type LineItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	Subtotal  float64 `json:"subtotal"`
}

type Cart struct {
	Items []LineItem `json:"items"`
	Total float64    `json:"total"`
}

type CheckoutResult struct {
	Total   float64 `json:"total"`
	Message string  `json:"message"`
}
