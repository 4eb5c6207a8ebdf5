package stubapi

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ThanhY111003/dealer-console/internal/models"
)

var (
	ErrVehicleNotFound     = errors.New("vehicle model color not found")
	ErrItemNotFound        = errors.New("cart item not found")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrNoCart              = errors.New("no cart")
	ErrInvalidInstallments = errors.New("installment months must be positive")
)

// VehicleColor is one orderable model/color combination in the stub catalog.
type VehicleColor struct {
	ID        int64   `json:"id"`
	ModelName string  `json:"modelName"`
	ColorName string  `json:"colorName"`
	UnitPrice float64 `json:"unitPrice"`
}

// Store is the in-memory state behind the stub server: a vehicle catalog,
// the dealer's cart, and created orders. It recomputes line totals and the
// cart total after every mutation, exactly like the real backend, so the
// client-side invariant (cartTotal == sum of item totals) can be tested
// against it.
type Store struct {
	mu           sync.Mutex
	catalog      map[int64]VehicleColor
	cart         *models.Cart
	orders       []models.Order
	nextItemID   int64
	nextOrderID  int64
	dealerName   string
	userFullName string
}

// NewStore creates a store pre-seeded with a small vehicle catalog.
func NewStore(dealerName, userFullName string) *Store {
	s := &Store{
		catalog:      make(map[int64]VehicleColor),
		nextItemID:   1,
		nextOrderID:  1,
		dealerName:   dealerName,
		userFullName: userFullName,
	}

	seed := []VehicleColor{
		{ID: 101, ModelName: "EV City S", ColorName: "Pearl White", UnitPrice: 18500},
		{ID: 102, ModelName: "EV City S", ColorName: "Midnight Black", UnitPrice: 18700},
		{ID: 201, ModelName: "EV Cruiser X", ColorName: "Ocean Blue", UnitPrice: 27900},
		{ID: 202, ModelName: "EV Cruiser X", ColorName: "Sunset Red", UnitPrice: 28200},
		{ID: 301, ModelName: "EV Cargo Pro", ColorName: "Fleet Silver", UnitPrice: 33400},
	}
	for _, v := range seed {
		s.catalog[v.ID] = v
	}

	return s
}

// Catalog returns the orderable vehicles, sorted by id.
func (s *Store) Catalog() []VehicleColor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]VehicleColor, 0, len(s.catalog))
	for _, v := range s.catalog {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetCart returns a copy of the current cart, or ErrNoCart when the dealer
// has not added anything yet.
func (s *Store) GetCart() (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		return nil, ErrNoCart
	}
	return copyCart(s.cart), nil
}

// AddItem puts quantity units of a vehicle color into the cart, merging
// with an existing line for the same vehicle.
func (s *Store) AddItem(vehicleModelColorID int64, quantity int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	vehicle, ok := s.catalog[vehicleModelColorID]
	if !ok {
		return nil, ErrVehicleNotFound
	}

	if s.cart == nil {
		s.cart = &models.Cart{
			DealerName:   s.dealerName,
			UserFullName: s.userFullName,
			Items:        []models.CartItem{},
		}
	}

	merged := false
	for i := range s.cart.Items {
		if s.cart.Items[i].VehicleModelColorID == vehicleModelColorID {
			s.cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart.Items = append(s.cart.Items, models.CartItem{
			ID:                  s.nextItemID,
			VehicleModelColorID: vehicle.ID,
			ModelName:           vehicle.ModelName,
			ColorName:           vehicle.ColorName,
			UnitPrice:           vehicle.UnitPrice,
			Quantity:            quantity,
		})
		s.nextItemID++
	}

	s.recomputeTotals()
	return copyCart(s.cart), nil
}

// SetQuantity replaces a line item's quantity.
func (s *Store) SetQuantity(itemID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if s.cart == nil {
		return ErrItemNotFound
	}

	for i := range s.cart.Items {
		if s.cart.Items[i].ID == itemID {
			s.cart.Items[i].Quantity = quantity
			s.recomputeTotals()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem deletes one line item.
func (s *Store) RemoveItem(itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		return ErrItemNotFound
	}

	for i := range s.cart.Items {
		if s.cart.Items[i].ID == itemID {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			s.recomputeTotals()
			return nil
		}
	}
	return ErrItemNotFound
}

// ClearCart empties the cart. Clearing an absent cart is a no-op, matching
// the real backend.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		return
	}
	s.cart.Items = []models.CartItem{}
	s.recomputeTotals()
}

// CreateOrder turns one single-item request into a created order with an
// installment schedule when requested. The cart is untouched; clearing it
// is the client's responsibility.
func (s *Store) CreateOrder(req models.CreateOrderRequest) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vehicle, ok := s.catalog[req.VehicleModelColorID]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	if req.IsInstallment && req.InstallmentMonths < 1 {
		return nil, ErrInvalidInstallments
	}

	now := time.Now().UTC()
	total := round2(vehicle.UnitPrice)

	order := models.Order{
		ID:              s.nextOrderID,
		OrderCode:       newOrderCode(),
		OrderDate:       now,
		TotalAmount:     total,
		PaidAmount:      0,
		RemainingAmount: total,
		PaymentProgress: 0,
		Status:          models.StatusPending,
		IsInstallment:   req.IsInstallment,
		OrderDetails: []models.OrderLine{
			{
				VehicleModelColorID: vehicle.ID,
				ModelName:           vehicle.ModelName,
				ColorName:           vehicle.ColorName,
				UnitPrice:           vehicle.UnitPrice,
				Quantity:            1,
				TotalPrice:          total,
			},
		},
		CreatedBy: s.userFullName,
		Dealer:    s.dealerName,
	}
	if req.IsInstallment {
		order.InstallmentPlans = buildInstallmentPlans(total, req.InstallmentMonths, now)
	}

	s.nextOrderID++
	s.orders = append(s.orders, order)

	return &order, nil
}

// ListOrders returns all created orders, newest last.
func (s *Store) ListOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// GetOrder returns one order by id.
func (s *Store) GetOrder(id int64) (*models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			o := s.orders[i]
			return &o, true
		}
	}
	return nil, false
}

// recomputeTotals refreshes every line's TotalPrice and the cart total.
// Callers must hold the mutex.
func (s *Store) recomputeTotals() {
	var total float64
	for i := range s.cart.Items {
		item := &s.cart.Items[i]
		item.TotalPrice = round2(item.UnitPrice * float64(item.Quantity))
		total += item.TotalPrice
	}
	s.cart.CartTotal = round2(total)
}

// buildInstallmentPlans splits total into equal monthly installments; the
// last installment absorbs the rounding remainder.
func buildInstallmentPlans(total float64, months int, from time.Time) []models.InstallmentPlan {
	per := round2(total / float64(months))

	plans := make([]models.InstallmentPlan, 0, months)
	for i := 1; i <= months; i++ {
		amount := per
		if i == months {
			amount = round2(total - per*float64(months-1))
		}
		plans = append(plans, models.InstallmentPlan{
			InstallmentNumber: i,
			InstallmentAmount: amount,
			DueDate:           from.AddDate(0, i, 0),
			Status:            "PENDING",
			IsOverdue:         false,
		})
	}
	return plans
}

func newOrderCode() string {
	id := strings.ToUpper(uuid.New().String())
	return "ORD-" + id[:8]
}

func copyCart(c *models.Cart) *models.Cart {
	out := *c
	out.Items = make([]models.CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
