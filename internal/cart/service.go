package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThanhY111003/dealer-console/internal/api"
	"github.com/ThanhY111003/dealer-console/internal/models"
)

// ErrQuantityTooLow is returned before any request is sent when a quantity
// below 1 is requested. Shown to the user as a warning.
var ErrQuantityTooLow = errors.New("quantity must be at least 1")

// Service mirrors the server-side cart. Every mutation sends exactly one
// request and then unconditionally re-fetches the full cart, on success and
// on failure alike, so the state handed back never diverges from the
// server's. There is no optimistic local mutation.
type Service struct {
	client *api.Client
	log    *slog.Logger
}

// NewService creates a cart service on top of the shared API client.
func NewService(client *api.Client, log *slog.Logger) *Service {
	return &Service{
		client: client,
		log:    log,
	}
}

// Fetch returns the current cart. A 404 means the dealer has no cart yet;
// that is reported as (nil, nil), not as an error.
func (s *Service) Fetch(ctx context.Context) (*models.Cart, error) {
	var c models.Cart
	if err := s.client.Get(ctx, "/api/cart", &c); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Add puts quantity units of a vehicle color into the cart.
func (s *Service) Add(ctx context.Context, vehicleModelColorID int64, quantity int) (*models.Cart, error) {
	return s.mutate(ctx, func(ctx context.Context) error {
		body := models.AddItemRequest{
			VehicleModelColorID: vehicleModelColorID,
			Quantity:            quantity,
		}
		return s.client.Post(ctx, "/api/cart/items", body, nil)
	})
}

// SetQuantity changes a line item's quantity. Quantities below 1 are
// rejected locally with ErrQuantityTooLow; no request is sent.
func (s *Service) SetQuantity(ctx context.Context, itemID int64, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}
	return s.mutate(ctx, func(ctx context.Context) error {
		path := fmt.Sprintf("/api/cart/items/%d/quantity?quantity=%d", itemID, quantity)
		return s.client.Put(ctx, path)
	})
}

// Remove deletes one line item from the cart.
func (s *Service) Remove(ctx context.Context, itemID int64) (*models.Cart, error) {
	return s.mutate(ctx, func(ctx context.Context) error {
		return s.client.Delete(ctx, fmt.Sprintf("/api/cart/items/%d", itemID))
	})
}

// Clear empties the whole cart.
func (s *Service) Clear(ctx context.Context) (*models.Cart, error) {
	return s.mutate(ctx, func(ctx context.Context) error {
		return s.client.Delete(ctx, "/api/cart/clear")
	})
}

// mutate runs one mutation request and then re-fetches the cart regardless
// of the mutation's outcome. The mutation error wins over a fetch error;
// the refreshed cart is returned either way so callers can re-render.
func (s *Service) mutate(ctx context.Context, fn func(context.Context) error) (*models.Cart, error) {
	mutErr := fn(ctx)
	if mutErr != nil {
		s.log.Warn("cart mutation failed, refreshing state", "error", mutErr)
	}

	c, fetchErr := s.Fetch(ctx)
	if mutErr != nil {
		return c, mutErr
	}
	return c, fetchErr
}
