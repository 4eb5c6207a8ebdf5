package stubapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ThanhY111003/dealer-console/internal/models"
)

// OrderHandler handles dealer order HTTP requests
type OrderHandler struct {
	store *Store
	log   *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(store *Store, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		store: store,
		log:   log,
	}
}

// CreateOrder handles POST /api/dealer/orders. One vehicleModelColorId per
// call; multi-item checkouts arrive as separate requests.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode order request", "error", err)
		writeFailure(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.store.CreateOrder(req)
	if err != nil {
		h.log.Error("failed to create order", "error", err)

		switch {
		case errors.Is(err, ErrVehicleNotFound):
			writeFailure(w, http.StatusBadRequest, "Vehicle model color not found", h.log)
		case errors.Is(err, ErrInvalidInstallments):
			writeFailure(w, http.StatusBadRequest, "Installment months must be positive", h.log)
		default:
			writeFailure(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.log.Info("order created", "order_code", order.OrderCode, "total_amount", order.TotalAmount)
	writeSuccess(w, http.StatusOK, "Order created successfully", order, h.log)
}

// ListOrders handles GET /api/dealer/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "", h.store.ListOrders(), h.log)
}

// GetOrder handles GET /api/dealer/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid order id", h.log)
		return
	}

	order, ok := h.store.GetOrder(id)
	if !ok {
		writeFailure(w, http.StatusNotFound, "Order not found", h.log)
		return
	}

	writeSuccess(w, http.StatusOK, "", order, h.log)
}
