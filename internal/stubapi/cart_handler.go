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

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	store *Store
	log   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *Store, log *slog.Logger) *CartHandler {
	return &CartHandler{
		store: store,
		log:   log,
	}
}

// GetCart handles GET /api/cart. A dealer without a cart gets a plain 404;
// clients special-case that as "no cart yet".
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.store.GetCart()
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Cart not found", h.log)
		return
	}
	writeSuccess(w, http.StatusOK, "", cart, h.log)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode add-item request", "error", err)
		writeFailure(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	cart, err := h.store.AddItem(req.VehicleModelColorID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			writeFailure(w, http.StatusBadRequest, "Quantity must be positive", h.log)
		case errors.Is(err, ErrVehicleNotFound):
			writeFailure(w, http.StatusBadRequest, "Vehicle model color not found", h.log)
		default:
			writeFailure(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.log.Info("cart item added", "vehicle_model_color_id", req.VehicleModelColorID, "quantity", req.Quantity)
	writeSuccess(w, http.StatusOK, "Item added to cart", cart, h.log)
}

// UpdateQuantity handles PUT /api/cart/items/{itemId}/quantity?quantity=N
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid item id", h.log)
		return
	}
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid quantity", h.log)
		return
	}

	if err := h.store.SetQuantity(itemID, quantity); err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			writeFailure(w, http.StatusBadRequest, "Quantity must be positive", h.log)
		case errors.Is(err, ErrItemNotFound):
			writeFailure(w, http.StatusBadRequest, "Cart item not found", h.log)
		default:
			writeFailure(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	writeSuccess(w, http.StatusOK, "Quantity updated", nil, h.log)
}

// RemoveItem handles DELETE /api/cart/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid item id", h.log)
		return
	}

	if err := h.store.RemoveItem(itemID); err != nil {
		writeFailure(w, http.StatusBadRequest, "Cart item not found", h.log)
		return
	}

	writeSuccess(w, http.StatusOK, "Item removed from cart", nil, h.log)
}

// ClearCart handles DELETE /api/cart/clear
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCart()
	writeSuccess(w, http.StatusOK, "Cart cleared", nil, h.log)
}
