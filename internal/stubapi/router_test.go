package stubapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/ThanhY111003/dealer-console/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := NewStore("Test Dealer", "Test User")
	srv := httptest.NewServer(NewRouter(store, []string{"testtoken"}, logger.New("error")))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var env map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, env
}

func TestRouter_Auth(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "wrong token", token: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := doRequest(t, srv, http.MethodGet, "/api/cart", tt.token, nil)

			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
			if env["success"] != false {
				t.Errorf("envelope success = %v, want false", env["success"])
			}
		})
	}

	// Health stays open.
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
}

func TestRouter_CartLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := "testtoken"

	// No cart yet: a 404 the client treats as empty state.
	resp, _ := doRequest(t, srv, http.MethodGet, "/api/cart", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("initial cart fetch status = %d, want 404", resp.StatusCode)
	}

	// Add an item.
	resp, env := doRequest(t, srv, http.MethodPost, "/api/cart/items", token,
		map[string]any{"vehicleModelColorId": 101, "quantity": 2})
	if resp.StatusCode != http.StatusOK || env["success"] != true {
		t.Fatalf("add item = %d %v", resp.StatusCode, env)
	}

	data := env["data"].(map[string]any)
	items := data["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	item := items[0].(map[string]any)
	itemID := int64(item["id"].(float64))

	// cartTotal mirrors the recomputed line total.
	if data["cartTotal"] != item["totalPrice"] {
		t.Errorf("cartTotal = %v, item total = %v", data["cartTotal"], item["totalPrice"])
	}

	// Update quantity via query parameter.
	resp, env = doRequest(t, srv, http.MethodPut,
		"/api/cart/items/"+itoa(itemID)+"/quantity?quantity=4", token, nil)
	if resp.StatusCode != http.StatusOK || env["success"] != true {
		t.Fatalf("update quantity = %d %v", resp.StatusCode, env)
	}

	// Bad quantity surfaces an envelope failure.
	resp, env = doRequest(t, srv, http.MethodPut,
		"/api/cart/items/"+itoa(itemID)+"/quantity?quantity=0", token, nil)
	if resp.StatusCode != http.StatusBadRequest || env["success"] != false {
		t.Fatalf("zero quantity = %d %v, want envelope failure", resp.StatusCode, env)
	}

	// Clear: cart survives as an empty, renderable state.
	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/cart/clear", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear = %d", resp.StatusCode)
	}
	resp, env = doRequest(t, srv, http.MethodGet, "/api/cart", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cart after clear = %d, want 200", resp.StatusCode)
	}
	if items := env["data"].(map[string]any)["items"].([]any); len(items) != 0 {
		t.Errorf("items after clear = %d, want 0", len(items))
	}
}

func TestRouter_Orders(t *testing.T) {
	srv := newTestServer(t)
	token := "testtoken"

	resp, env := doRequest(t, srv, http.MethodPost, "/api/dealer/orders", token,
		map[string]any{"vehicleModelColorId": 201, "isInstallment": true, "installmentMonths": 6, "notes": "demo"})
	if resp.StatusCode != http.StatusOK || env["success"] != true {
		t.Fatalf("create order = %d %v", resp.StatusCode, env)
	}
	order := env["data"].(map[string]any)
	if plans := order["installmentPlans"].([]any); len(plans) != 6 {
		t.Errorf("installment plans = %d, want 6", len(plans))
	}
	orderID := int64(order["id"].(float64))

	resp, env = doRequest(t, srv, http.MethodGet, "/api/dealer/orders", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list orders = %d", resp.StatusCode)
	}
	if list := env["data"].([]any); len(list) != 1 {
		t.Errorf("orders = %d, want 1", len(list))
	}

	resp, env = doRequest(t, srv, http.MethodGet, "/api/dealer/orders/"+itoa(orderID), token, nil)
	if resp.StatusCode != http.StatusOK || env["success"] != true {
		t.Fatalf("order detail = %d %v", resp.StatusCode, env)
	}

	resp, env = doRequest(t, srv, http.MethodGet, "/api/dealer/orders/999", token, nil)
	if resp.StatusCode != http.StatusNotFound || env["success"] != false {
		t.Fatalf("missing order = %d %v, want 404 failure", resp.StatusCode, env)
	}

	// Unknown vehicle is an envelope failure, not a transport error.
	resp, env = doRequest(t, srv, http.MethodPost, "/api/dealer/orders", token,
		map[string]any{"vehicleModelColorId": 999})
	if resp.StatusCode != http.StatusBadRequest || env["success"] != false {
		t.Fatalf("unknown vehicle = %d %v, want envelope failure", resp.StatusCode, env)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
