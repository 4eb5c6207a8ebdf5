package checkout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ThanhY111003/dealer-console/internal/api"
	"github.com/ThanhY111003/dealer-console/internal/models"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidInstallments = errors.New("installment months must be at least 1")
)

// OrderCreator submits one single-item order.
type OrderCreator interface {
	Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
}

// CartClearer empties the dealer's cart server-side.
type CartClearer interface {
	Clear(ctx context.Context) (*models.Cart, error)
}

// Config is the installment configuration entered once per checkout and
// shared by every item in the batch.
type Config struct {
	IsInstallment     bool
	InstallmentMonths int
	Notes             string
}

// Succeeded ties a created order back to the cart item that produced it.
type Succeeded struct {
	Item  models.CartItem
	Order models.Order
}

// Failed ties a cart item to the user-facing message of its failed request.
type Failed struct {
	Item    models.CartItem
	Message string
}

// Engine converts a multi-item cart into per-item order-creation requests.
// The backend only accepts single-item orders, so an N-item checkout issues
// N requests. Requests run strictly sequentially so that success and
// failure stay attributable to their source item in a deterministic order.
type Engine struct {
	orders OrderCreator
	carts  CartClearer
	log    *slog.Logger
}

// NewEngine creates a checkout engine.
func NewEngine(orders OrderCreator, carts CartClearer, log *slog.Logger) *Engine {
	return &Engine{
		orders: orders,
		carts:  carts,
		log:    log,
	}
}

// Submit checks out the given cart items. Partial failure is an expected
// outcome, not an error: per-item results accumulate in the Result and the
// returned error covers only pre-flight validation.
//
// When at least one item succeeded the whole cart is cleared server-side,
// even if other items failed. Failed items are NOT restored or selectively
// kept; a dealer with one success and four failures loses the four failed
// items. That matches the shipped behavior and is kept deliberately — see
// the open-question notes in DESIGN.md before changing it.
//
// Cancelling ctx between requests stops the run; orders already created
// stand, and the untouched items are reported in Result.Skipped.
func (e *Engine) Submit(ctx context.Context, items []models.CartItem, cfg Config) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if cfg.IsInstallment && cfg.InstallmentMonths < 1 {
		return nil, ErrInvalidInstallments
	}

	months := cfg.InstallmentMonths
	if !cfg.IsInstallment {
		months = 0
	}

	res := &Result{}

	for i, item := range items {
		if ctx.Err() != nil {
			e.log.Warn("checkout cancelled mid-run",
				"submitted", i,
				"skipped", len(items)-i,
			)
			res.Skipped = append(res.Skipped, items[i:]...)
			break
		}

		req := models.CreateOrderRequest{
			VehicleModelColorID: item.VehicleModelColorID,
			IsInstallment:       cfg.IsInstallment,
			InstallmentMonths:   months,
			Notes:               cfg.Notes,
		}

		order, err := e.orders.Create(ctx, req)
		if err != nil {
			e.log.Warn("order creation failed for cart item",
				"cart_item_id", item.ID,
				"vehicle_model_color_id", item.VehicleModelColorID,
				"error", err,
			)
			res.Failed = append(res.Failed, Failed{Item: item, Message: api.Message(err)})
			continue
		}

		res.Succeeded = append(res.Succeeded, Succeeded{Item: item, Order: *order})
	}

	if len(res.Succeeded) > 0 {
		if _, err := e.carts.Clear(ctx); err != nil {
			e.log.Warn("cart clear after checkout failed", "error", err)
		} else {
			res.CartCleared = true
		}
	}

	e.log.Info("checkout settled",
		"succeeded", len(res.Succeeded),
		"failed", len(res.Failed),
		"skipped", len(res.Skipped),
		"cart_cleared", res.CartCleared,
	)

	return res, nil
}

// SubmitDirect is the single-item path that bypasses the cart entirely: one
// request built from a pre-selected vehicle color, no splitting, no cart
// interaction on success or failure.
func (e *Engine) SubmitDirect(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if req.IsInstallment && req.InstallmentMonths < 1 {
		return nil, ErrInvalidInstallments
	}
	if !req.IsInstallment {
		req.InstallmentMonths = 0
	}
	return e.orders.Create(ctx, req)
}
