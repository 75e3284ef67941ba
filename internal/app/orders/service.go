package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/gateway"
	"storefront/internal/linkcache"
	"storefront/internal/metrics"
)

const (
	orderCurrency = "INR"
	defaultMethod = "Razorpay"
)

var (
	ErrInvalidAmount = domain.ErrInvalidAmount
	ErrGateway       = errors.New("order creation failed")
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)
}

type orderService struct {
	gw             gateway.Gateway
	links          *linkcache.Cache
	keyID          string
	gatewayTimeout time.Duration
	logger         *zap.Logger
}

func NewOrderService(gw gateway.Gateway, links *linkcache.Cache, keyID string, gatewayTimeout time.Duration, logger *zap.Logger) OrderService {
	return &orderService{
		gw:             gw,
		links:          links,
		keyID:          keyID,
		gatewayTimeout: gatewayTimeout,
		logger:         logger,
	}
}

// CreateOrder normalizes the amount, opens a gateway order and resolves the
// product's download link. Nothing is persisted locally, so a gateway
// failure needs no rollback; it collapses to ErrGateway.
func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	amountMinor, err := domain.NormalizeAmount(string(req.Amount))
	if err != nil {
		s.logger.Warn("Rejected order with invalid amount", zap.String("amount", string(req.Amount)))
		return nil, ErrInvalidAmount
	}

	receipt := fmt.Sprintf("order_%d", time.Now().UnixMilli())

	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	order, err := s.gw.CreateOrder(gwCtx, amountMinor, orderCurrency, receipt)
	if err != nil {
		s.logger.Error("Gateway order creation failed", zap.String("receipt", receipt), zap.Error(err))
		metrics.OrderFailures.Inc()
		return nil, ErrGateway
	}

	// Product title keys the link lookup, falling back to the payer name
	// for legacy checkout forms that only submit a name.
	title := req.Product
	if title == "" {
		title = req.Name
	}
	link := s.links.Lookup(ctx, title)

	method := req.Method
	if method == "" {
		method = defaultMethod
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.OrderID),
		zap.Int64("amount_minor", order.AmountMinor),
		zap.String("product", req.Product))
	metrics.OrdersCreated.Inc()

	return &CreateOrderResponse{
		Success:     true,
		KeyID:       s.keyID,
		OrderID:     order.OrderID,
		Amount:      order.AmountMinor,
		Name:        req.Name,
		Mobile:      req.Mobile,
		Email:       req.Email,
		Method:      method,
		Product:     req.Product,
		ProductLink: link,
	}, nil
}
