package payments

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"storefront/internal/app/ledger"
	"storefront/internal/domain"
	"storefront/internal/infrastructure/kafka"
	"storefront/internal/metrics"
	"storefront/internal/signature"
	"storefront/internal/util"
)

const (
	msgVerifiedAndRecorded = "Payment verified and recorded"
	msgVerifiedOnly        = "Payment verified"
	defaultMethod          = "Razorpay"
)

var (
	ErrMissingFields     = errors.New("missing payment verification fields")
	ErrSignatureMismatch = errors.New("invalid signature")
)

type VerificationService interface {
	VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (*VerifyPaymentResponse, error)
}

type verificationService struct {
	secret      string
	recorder    *ledger.Recorder
	producer    kafka.Producer
	eventsTopic string
	logger      *zap.Logger
}

func NewVerificationService(secret string, recorder *ledger.Recorder, producer kafka.Producer, eventsTopic string, logger *zap.Logger) VerificationService {
	return &verificationService{
		secret:      secret,
		recorder:    recorder,
		producer:    producer,
		eventsTopic: eventsTopic,
		logger:      logger,
	}
}

// VerifyPayment checks the gateway's callback signature and records the
// payment. A ledger failure degrades the response message only: once the
// signature matches, the payment is verified and the response says so with
// a 200 regardless of bookkeeping. Replay protection is deliberately absent;
// a paymentID already present in the ledger is appended again.
func (s *verificationService) VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		s.logger.Warn("Verification request missing gateway fields")
		return nil, ErrMissingFields
	}

	if !signature.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.secret) {
		s.logger.Warn("Payment signature mismatch",
			zap.String("order_id", req.RazorpayOrderID),
			zap.String("payment_id", req.RazorpayPaymentID))
		metrics.SignatureRejections.Inc()
		return nil, ErrSignatureMismatch
	}

	metrics.PaymentsVerified.Inc()

	amountMajor := domain.MinorToMajor(string(req.Amount))

	method := req.Method
	if method == "" {
		method = defaultMethod
	}

	recorded := s.recorder.Append(ctx, ledger.Entry{
		Name:        req.Name,
		Mobile:      req.Mobile,
		Email:       req.Email,
		AmountMajor: amountMajor,
		PaymentID:   req.RazorpayPaymentID,
		Method:      method,
		Product:     req.Product,
	})

	s.publishVerifiedEvent(ctx, req, amountMajor, recorded)

	msg := msgVerifiedAndRecorded
	if !recorded {
		msg = msgVerifiedOnly
	}

	s.logger.Info("Payment verified",
		zap.String("order_id", req.RazorpayOrderID),
		zap.String("payment_id", req.RazorpayPaymentID),
		zap.Bool("recorded", recorded))

	return &VerifyPaymentResponse{Success: true, Msg: msg}, nil
}

// publishVerifiedEvent emits the payment-verified event, best-effort like
// the ledger write.
func (s *verificationService) publishVerifiedEvent(ctx context.Context, req *VerifyPaymentRequest, amountMajor float64, recorded bool) {
	if s.producer == nil {
		return
	}

	event := domain.PaymentVerifiedEvent{
		EventID:     util.GenerateUUID(),
		OrderID:     req.RazorpayOrderID,
		PaymentID:   req.RazorpayPaymentID,
		AmountMajor: amountMajor,
		Product:     req.Product,
		Recorded:    recorded,
		VerifiedAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal payment verified event", zap.String("payment_id", req.RazorpayPaymentID), zap.Error(err))
		return
	}

	if err := s.producer.Produce(ctx, s.eventsTopic, payload); err != nil {
		s.logger.Error("Failed to publish payment verified event",
			zap.String("payment_id", req.RazorpayPaymentID),
			zap.Error(err))
	}
}
