package payments

import "storefront/internal/domain"

// VerifyPaymentRequest is the gateway checkout callback round-tripped by the
// client after payment, plus the payer fields destined for the ledger.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	Name              string `json:"name"`
	Mobile            string `json:"mobile"`
	Email             string `json:"email"`
	Amount            domain.NumericString `json:"amount"`
	Method            string `json:"method"`
	Product           string `json:"product"`
}

type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}
