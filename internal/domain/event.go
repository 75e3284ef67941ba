package domain

import "time"

// PaymentVerifiedEvent is published after a payment passes signature
// verification. Recorded reports whether the ledger append succeeded.
type PaymentVerifiedEvent struct {
	EventID     string    `json:"event_id"`
	OrderID     string    `json:"order_id"`
	PaymentID   string    `json:"payment_id"`
	AmountMajor float64   `json:"amount"`
	Product     string    `json:"product"`
	Recorded    bool      `json:"recorded"`
	VerifiedAt  time.Time `json:"verified_at"`
}
