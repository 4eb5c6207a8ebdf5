package orders

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ThanhY111003/dealer-console/internal/api"
	"github.com/ThanhY111003/dealer-console/internal/models"
)

// Service reads and creates dealer orders. Orders are immutable from the
// client side; the list and detail views are pure projections of what the
// server returns.
type Service struct {
	client *api.Client
	log    *slog.Logger
}

// NewService creates an order service on top of the shared API client.
func NewService(client *api.Client, log *slog.Logger) *Service {
	return &Service{
		client: client,
		log:    log,
	}
}

// Create submits one single-item order.
func (s *Service) Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var o models.Order
	if err := s.client.Post(ctx, "/api/dealer/orders", req, &o); err != nil {
		return nil, err
	}
	s.log.Info("order created", "order_code", o.OrderCode, "total_amount", o.TotalAmount)
	return &o, nil
}

// List fetches all of the dealer's orders in one call. Filtering, sorting
// and pagination happen client-side on the returned slice.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	var list []models.Order
	if err := s.client.Get(ctx, "/api/dealer/orders", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get fetches one order by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	if err := s.client.Get(ctx, fmt.Sprintf("/api/dealer/orders/%d", id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// FilterByStatus returns the orders matching status. An empty status
// returns the input unchanged.
func FilterByStatus(list []models.Order, status models.OrderStatus) []models.Order {
	if status == "" {
		return list
	}
	out := make([]models.Order, 0, len(list))
	for _, o := range list {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// SortByAmount returns a copy of list ordered by TotalAmount. Equal amounts
// keep their relative order.
func SortByAmount(list []models.Order, ascending bool) []models.Order {
	out := make([]models.Order, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].TotalAmount < out[j].TotalAmount
		}
		return out[i].TotalAmount > out[j].TotalAmount
	})
	return out
}

// Paginate slices one page out of list. Pages are 1-based; an
// out-of-range page yields an empty slice.
func Paginate(list []models.Order, page, pageSize int) []models.Order {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return nil
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}
