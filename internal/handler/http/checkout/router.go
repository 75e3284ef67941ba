package checkout

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storefront/internal/app/orders"
	"storefront/internal/app/payments"
)

func RegisterRoutes(r chi.Router, o orders.OrderService, v payments.VerificationService, l *zap.Logger) {
	handler := NewCheckoutHandler(o, v, l.With(zap.String("component", "CheckoutHTTPHandler")))

	r.Post("/createOrder", handler.CreateOrder)
	r.Post("/verifyPayment", handler.VerifyPayment)
}
