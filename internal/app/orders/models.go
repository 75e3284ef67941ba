package orders

import "storefront/internal/domain"

// CreateOrderRequest is the createOrder request body.
type CreateOrderRequest struct {
	Amount  domain.NumericString `json:"amount"`
	Name    string               `json:"name"`
	Mobile  string               `json:"mobile"`
	Email   string               `json:"email"`
	Method  string               `json:"method"`
	Product string               `json:"product"`
}

// CreateOrderResponse is everything the client needs to open the gateway's
// checkout widget plus the resolved download link. ProductLink is "" when no
// link has been resolved yet, never null.
type CreateOrderResponse struct {
	Success     bool   `json:"success"`
	KeyID       string `json:"key_id"`
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	Method      string `json:"method"`
	Product     string `json:"product"`
	ProductLink string `json:"product_link"`
}
