package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThanhY111003/dealer-console/internal/session"
	"github.com/ThanhY111003/dealer-console/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *session.Session) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.New("test-token", "Test Dealer")
	c := New(srv.URL, sess, 5*time.Second, logger.New("error"), opts...)
	return c, sess
}

func TestClient_DecodesEnvelopeData(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"","data":{"name":"EV City S"}}`))
	})

	var out struct {
		Name string `json:"name"`
	}
	err := c.Get(context.Background(), "/api/thing", &out)

	require.NoError(t, err)
	assert.Equal(t, "EV City S", out.Name)
}

func TestClient_EnvelopeFailureMessagePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		wantMsg string
	}{
		{
			name:    "message field wins",
			body:    `{"success":false,"message":"cart is locked","error":"secondary"}`,
			status:  http.StatusOK,
			wantMsg: "cart is locked",
		},
		{
			name:    "error field when message empty",
			body:    `{"success":false,"error":"vehicle unavailable"}`,
			status:  http.StatusBadRequest,
			wantMsg: "vehicle unavailable",
		},
		{
			name:    "generic fallback for empty envelope",
			body:    `{"success":false}`,
			status:  http.StatusBadRequest,
			wantMsg: genericMessage,
		},
		{
			name:    "generic fallback for non-JSON error body",
			body:    `<html>boom</html>`,
			status:  http.StatusInternalServerError,
			wantMsg: genericMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := c.Get(context.Background(), "/api/thing", nil)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	hookCalled := false
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, WithUnauthorizedHook(func() { hookCalled = true }))

	err := c.Get(context.Background(), "/api/cart", nil)

	require.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, sess.Active())
	assert.Empty(t, sess.Token())
	assert.True(t, hookCalled)
}

func TestClient_NotFoundSentinel(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Cart not found"}`))
	})

	err := c.Get(context.Background(), "/api/cart", nil)

	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	sess := session.New("t", "")
	c := New(srv.URL, sess, time.Second, logger.New("error"))

	err := c.Get(context.Background(), "/api/cart", nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.NotEmpty(t, apiErr.Message)
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	var gotContentType string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"success":true}`))
	})

	err := c.Post(context.Background(), "/api/cart/items", map[string]int{"quantity": 2}, nil)

	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "server said no", Message(&Error{Message: "server said no"}))
	assert.Equal(t, "plain failure", Message(errors.New("plain failure")))
}
