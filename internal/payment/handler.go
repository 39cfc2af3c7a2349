package payment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/order-payment/internal/transport"
	"github.com/frahmantamala/order-payment/internal/transport/middleware"
	"github.com/frahmantamala/order-payment/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreatePayment(orderID int64, dto CreatePaymentDTO) (*Payment, error)
	GetPayment(orderID int64) (*Payment, error)
	RefundPayment(orderID int64) (*Payment, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// CreatePayment handles POST /orders/{orderId}/payments
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDParam(w, r)
	if !ok {
		return
	}

	var dto CreatePaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreatePayment: invalid request body", "error", err, "order_id", orderID)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.CreatePayment(orderID, dto)
	if err != nil {
		h.Logger.Error("CreatePayment: service error", "error", err, "order_id", orderID)
		h.HandleServiceError(w, err)
		return
	}

	middleware.RecordPaymentProcessed(p.Status)
	h.Logger.Info("CreatePayment: payment recorded",
		"payment_id", p.ID,
		"order_id", orderID,
		"status", p.Status)

	h.WriteJSON(w, http.StatusCreated, p)
}

// GetPayment handles GET /orders/{orderId}/payments. An order without a
// payment on file is a bare 404, not an error envelope.
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDParam(w, r)
	if !ok {
		return
	}

	p, err := h.Service.GetPayment(orderID)
	if err != nil {
		h.Logger.Error("GetPayment: service error", "error", err, "order_id", orderID)
		h.HandleServiceError(w, err)
		return
	}

	if p == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

// RefundPayment handles POST /orders/{orderId}/payments/refund
func (h *Handler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDParam(w, r)
	if !ok {
		return
	}

	p, err := h.Service.RefundPayment(orderID)
	if err != nil {
		h.Logger.Error("RefundPayment: service error", "error", err, "order_id", orderID)
		h.HandleServiceError(w, err)
		return
	}

	middleware.RecordPaymentProcessed(p.Status)
	h.Logger.Info("RefundPayment: payment refunded",
		"payment_id", p.ID,
		"order_id", orderID)

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) orderIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "orderId")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid order ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid order ID")
		return 0, false
	}
	return id, true
}
