package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

type razorpayGateway struct {
	client *razorpay.Client
	logger *zap.Logger
}

func NewRazorpayGateway(keyID, keySecret string, l *zap.Logger) Gateway {
	return &razorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		logger: l,
	}
}

// CreateOrder creates an order with Razorpay. The SDK is not context-aware,
// so the call runs in a goroutine and the result is abandoned once ctx
// expires; a timeout surfaces as an ordinary gateway error.
func (g *razorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error) {
	type result struct {
		order *Order
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		data := map[string]interface{}{
			"amount":   amountMinor,
			"currency": currency,
			"receipt":  receipt,
		}
		body, err := g.client.Order.Create(data, nil)
		if err != nil {
			resultCh <- result{err: fmt.Errorf("razorpay order create failed: %w", err)}
			return
		}
		order, err := orderFromResponse(body)
		resultCh <- result{order: order, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			g.logger.Error("Failed to create gateway order",
				zap.String("receipt", receipt),
				zap.Int64("amount_minor", amountMinor),
				zap.Error(res.err))
			return nil, res.err
		}
		g.logger.Debug("Gateway order created",
			zap.String("order_id", res.order.OrderID),
			zap.Int64("amount_minor", res.order.AmountMinor))
		return res.order, nil
	case <-ctx.Done():
		g.logger.Error("Gateway order creation timed out", zap.String("receipt", receipt), zap.Error(ctx.Err()))
		return nil, fmt.Errorf("razorpay order create: %w", ctx.Err())
	}
}

func orderFromResponse(body map[string]interface{}) (*Order, error) {
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("razorpay response missing order id")
	}

	var amount int64
	switch v := body["amount"].(type) {
	case float64:
		amount = int64(v)
	case int64:
		amount = v
	case int:
		amount = int64(v)
	default:
		return nil, fmt.Errorf("razorpay response has unexpected amount type %T", body["amount"])
	}

	return &Order{OrderID: id, AmountMinor: amount}, nil
}
