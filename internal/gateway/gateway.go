package gateway

import "context"

// Order is the slice of the gateway's order object this pipeline reads back.
type Order struct {
	OrderID     string
	AmountMinor int64
}

// Gateway creates payment orders with the external payment processor.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error)
}
