package cart

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ThanhY111003/dealer-console/internal/api"
	"github.com/ThanhY111003/dealer-console/internal/session"
	"github.com/ThanhY111003/dealer-console/pkg/logger"
)

// fakeBackend records every request and serves canned envelope responses,
// so tests can assert on exactly which calls were made and in what order.
type fakeBackend struct {
	mu       sync.Mutex
	requests []string // "METHOD path?query"
	cartBody string
	mutation func(w http.ResponseWriter, r *http.Request) bool // true when handled
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		key := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		f.requests = append(f.requests, key)
		f.mu.Unlock()

		if f.mutation != nil && f.mutation(w, r) {
			return
		}

		if r.Method == http.MethodGet && r.URL.Path == "/api/cart" {
			w.Write([]byte(f.cartBody))
			return
		}
		w.Write([]byte(`{"success":true}`))
	}
}

func (f *fakeBackend) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}

func newTestService(t *testing.T, backend *fakeBackend) *Service {
	t.Helper()

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	log := logger.New("error")
	client := api.New(srv.URL, session.New("tok", ""), 5*time.Second, log)
	return NewService(client, log)
}

const oneItemCart = `{"success":true,"data":{"dealerName":"Hanoi Central Motors","items":[{"id":1,"vehicleModelColorId":101,"modelName":"EV City S","colorName":"Pearl White","unitPrice":18500,"quantity":2,"totalPrice":37000}],"cartTotal":37000}}`

func TestService_SetQuantity_RejectsLowQuantityLocally(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{name: "zero", quantity: 0},
		{name: "negative", quantity: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{cartBody: oneItemCart}
			svc := newTestService(t, backend)

			_, err := svc.SetQuantity(context.Background(), 1, tt.quantity)

			if !errors.Is(err, ErrQuantityTooLow) {
				t.Fatalf("SetQuantity() error = %v, want ErrQuantityTooLow", err)
			}
			if got := len(backend.recorded()); got != 0 {
				t.Errorf("SetQuantity() issued %d requests, want 0", got)
			}
		})
	}
}

func TestService_SetQuantity_MutatesThenRefetches(t *testing.T) {
	backend := &fakeBackend{cartBody: oneItemCart}
	svc := newTestService(t, backend)

	c, err := svc.SetQuantity(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("SetQuantity() unexpected error = %v", err)
	}
	if c == nil || len(c.Items) != 1 {
		t.Fatalf("SetQuantity() returned cart %+v, want refreshed one-item cart", c)
	}

	want := []string{
		"PUT /api/cart/items/1/quantity?quantity=3",
		"GET /api/cart",
	}
	got := backend.recorded()
	if len(got) != len(want) {
		t.Fatalf("recorded requests = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestService_MutationFailureStillRefetches(t *testing.T) {
	backend := &fakeBackend{
		cartBody: oneItemCart,
		mutation: func(w http.ResponseWriter, r *http.Request) bool {
			if r.Method == http.MethodDelete {
				w.Write([]byte(`{"success":false,"message":"item is reserved"}`))
				return true
			}
			return false
		},
	}
	svc := newTestService(t, backend)

	c, err := svc.Remove(context.Background(), 1)

	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Message != "item is reserved" {
		t.Fatalf("Remove() error = %v, want envelope failure 'item is reserved'", err)
	}
	// The refreshed cart is still handed back so the caller can re-render.
	if c == nil || c.CartTotal != 37000 {
		t.Errorf("Remove() cart = %+v, want refreshed server cart", c)
	}

	got := backend.recorded()
	if len(got) != 2 || got[0] != "DELETE /api/cart/items/1" || got[1] != "GET /api/cart" {
		t.Errorf("recorded requests = %v, want failed DELETE followed by GET", got)
	}
}

func TestService_Fetch_NoCartYet(t *testing.T) {
	backend := &fakeBackend{
		mutation: func(w http.ResponseWriter, r *http.Request) bool {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"message":"Cart not found"}`))
			return true
		},
	}
	svc := newTestService(t, backend)

	c, err := svc.Fetch(context.Background())

	// 404 is "no cart yet", silent: nil cart, nil error.
	if err != nil {
		t.Fatalf("Fetch() error = %v, want nil for 404", err)
	}
	if c != nil {
		t.Errorf("Fetch() cart = %+v, want nil", c)
	}
	if !c.IsEmpty() {
		t.Error("nil cart should report IsEmpty")
	}
}

func TestService_AddAndClear(t *testing.T) {
	backend := &fakeBackend{cartBody: oneItemCart}
	svc := newTestService(t, backend)

	if _, err := svc.Add(context.Background(), 101, 2); err != nil {
		t.Fatalf("Add() unexpected error = %v", err)
	}
	if _, err := svc.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() unexpected error = %v", err)
	}

	want := []string{
		"POST /api/cart/items",
		"GET /api/cart",
		"DELETE /api/cart/clear",
		"GET /api/cart",
	}
	got := backend.recorded()
	if len(got) != len(want) {
		t.Fatalf("recorded requests = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
