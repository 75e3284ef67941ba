package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/app/ledger"
	"storefront/internal/app/orders"
	"storefront/internal/app/payments"
	"storefront/internal/domain"
	"storefront/internal/gateway"
	"storefront/internal/linkcache"
	"storefront/internal/signature"
)

const testSecret = "test_secret"

type fakeGateway struct {
	createErr error
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*gateway.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &gateway.Order{OrderID: "order_abc123", AmountMinor: amountMinor}, nil
}

type fakeLinkRepository struct {
	links map[string]string
}

func (f *fakeLinkRepository) ListAll(ctx context.Context) ([]domain.ProductLink, error) {
	var out []domain.ProductLink
	for title, link := range f.links {
		out = append(out, domain.ProductLink{Title: title, DownloadLink: link})
	}
	return out, nil
}

func (f *fakeLinkRepository) FindLinkByTitle(ctx context.Context, title string) (string, error) {
	return f.links[title], nil
}

type fakeLedgerRepository struct {
	mu       sync.Mutex
	ioErr    error
	appended int
}

func (f *fakeLedgerRepository) ReadSerialColumn(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ioErr != nil {
		return nil, f.ioErr
	}
	return []string{"No"}, nil
}

func (f *fakeLedgerRepository) AppendRow(ctx context.Context, row []interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ioErr != nil {
		return f.ioErr
	}
	f.appended++
	return nil
}

func newTestRouter(t *testing.T, gw *fakeGateway, ledgerRepo *fakeLedgerRepository) chi.Router {
	t.Helper()

	cache := linkcache.NewCache(&fakeLinkRepository{links: map[string]string{
		"EbookX": "https://cdn.example.com/ebookx.pdf",
	}}, time.Minute, time.Second, zap.NewNop())
	require.NoError(t, cache.Refresh(context.Background()))

	orderService := orders.NewOrderService(gw, cache, "rzp_test_key", time.Second, zap.NewNop())
	recorder := ledger.NewRecorder(ledgerRepo, time.Second, 0, zap.NewNop())
	verifyService := payments.NewVerificationService(testSecret, recorder, nil, "", zap.NewNop())

	r := chi.NewRouter()
	RegisterRoutes(r, orderService, verifyService, zap.NewNop())
	return r
}

func postJSON(t *testing.T, router chi.Router, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateOrder_Endpoint_Success(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{}, &fakeLedgerRepository{})

	rec := postJSON(t, router, "/createOrder", map[string]interface{}{
		"amount":  499,
		"name":    "A",
		"mobile":  "9876543210",
		"email":   "a@x.com",
		"product": "EbookX",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "rzp_test_key", body["key_id"])
	assert.Equal(t, "order_abc123", body["order_id"])
	assert.Equal(t, float64(49900), body["amount"])
	assert.Equal(t, "https://cdn.example.com/ebookx.pdf", body["product_link"])
}

func TestCreateOrder_Endpoint_InvalidAmount(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{}, &fakeLedgerRepository{})

	rec := postJSON(t, router, "/createOrder", map[string]interface{}{
		"amount": 0,
		"name":   "A",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid amount", body["msg"])
}

func TestCreateOrder_Endpoint_GatewayFailure(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{createErr: errors.New("gateway down")}, &fakeLedgerRepository{})

	rec := postJSON(t, router, "/createOrder", map[string]interface{}{
		"amount": 499,
		"name":   "A",
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Order creation failed", body["msg"])
}

func TestVerifyPayment_Endpoint_TamperedSignature(t *testing.T) {
	ledgerRepo := &fakeLedgerRepository{}
	router := newTestRouter(t, &fakeGateway{}, ledgerRepo)

	rec := postJSON(t, router, "/verifyPayment", map[string]interface{}{
		"razorpay_order_id":   "order_abc123",
		"razorpay_payment_id": "pay_def456",
		"razorpay_signature":  signature.Sign("order_abc123", "pay_tampered", testSecret),
		"name":                "A",
		"amount":              "49900",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid signature", body["msg"])
	assert.Equal(t, 0, ledgerRepo.appended, "no ledger append on signature mismatch")
}

func TestVerifyPayment_Endpoint_MissingFields(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{}, &fakeLedgerRepository{})

	rec := postJSON(t, router, "/verifyPayment", map[string]interface{}{
		"razorpay_order_id": "order_abc123",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestVerifyPayment_Endpoint_LedgerUnreachableStillOK(t *testing.T) {
	ledgerRepo := &fakeLedgerRepository{ioErr: errors.New("ledger unreachable")}
	router := newTestRouter(t, &fakeGateway{}, ledgerRepo)

	rec := postJSON(t, router, "/verifyPayment", map[string]interface{}{
		"razorpay_order_id":   "order_abc123",
		"razorpay_payment_id": "pay_def456",
		"razorpay_signature":  signature.Sign("order_abc123", "pay_def456", testSecret),
		"name":                "A",
		"amount":              "49900",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Payment verified", body["msg"])
}

func TestVerifyPayment_Endpoint_Recorded(t *testing.T) {
	ledgerRepo := &fakeLedgerRepository{}
	router := newTestRouter(t, &fakeGateway{}, ledgerRepo)

	rec := postJSON(t, router, "/verifyPayment", map[string]interface{}{
		"razorpay_order_id":   "order_abc123",
		"razorpay_payment_id": "pay_def456",
		"razorpay_signature":  signature.Sign("order_abc123", "pay_def456", testSecret),
		"name":                "A",
		"mobile":              "9876543210",
		"email":               "a@x.com",
		"amount":              "49900",
		"product":             "EbookX",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Payment verified and recorded", body["msg"])
	assert.Equal(t, 1, ledgerRepo.appended)
}
