package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"storefront/internal/app/orders"
	"storefront/internal/app/payments"
)

type CheckoutHandler struct {
	orderService  orders.OrderService
	verifyService payments.VerificationService
	logger        *zap.Logger
}

func NewCheckoutHandler(o orders.OrderService, v payments.VerificationService, l *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{orderService: o, verifyService: v, logger: l}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

func (h *CheckoutHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for createOrder", zap.Error(err))
		renderJSON(w, http.StatusBadRequest, errorResponse{Msg: "Invalid request body"})
		return
	}

	res, err := h.orderService.CreateOrder(r.Context(), &req)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidAmount) {
			h.logger.Warn("Bad request for createOrder", zap.Error(err))
			renderJSON(w, http.StatusBadRequest, errorResponse{Msg: "Invalid amount"})
			return
		}
		h.logger.Error("Error creating order", zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, errorResponse{Msg: "Order creation failed"})
		return
	}

	renderJSON(w, http.StatusOK, res)
}

func (h *CheckoutHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req payments.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for verifyPayment", zap.Error(err))
		renderJSON(w, http.StatusBadRequest, errorResponse{Msg: "Invalid request body"})
		return
	}

	res, err := h.verifyService.VerifyPayment(r.Context(), &req)
	if err != nil {
		if errors.Is(err, payments.ErrMissingFields) {
			h.logger.Warn("Verification request missing fields")
			renderJSON(w, http.StatusBadRequest, errorResponse{Msg: "Missing payment verification fields"})
			return
		}
		if errors.Is(err, payments.ErrSignatureMismatch) {
			renderJSON(w, http.StatusBadRequest, errorResponse{Msg: "Invalid signature"})
			return
		}
		h.logger.Error("Error verifying payment", zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, errorResponse{Msg: "Payment verification failed"})
		return
	}

	renderJSON(w, http.StatusOK, res)
}

func renderJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
