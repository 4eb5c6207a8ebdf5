package stubapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the stub API: the eight dealer endpoints behind
// bearer auth, plus an unauthenticated health check and a catalog listing
// for picking vehicle ids during development.
func NewRouter(store *Store, tokens []string, log *slog.Logger) http.Handler {
	cartHandler := NewCartHandler(store, log)
	orderHandler := NewOrderHandler(store, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, "ok", nil, log)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(BearerAuth(tokens, log))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{itemId}/quantity", cartHandler.UpdateQuantity)
			r.Delete("/items/{itemId}", cartHandler.RemoveItem)
			r.Delete("/clear", cartHandler.ClearCart)
		})

		r.Route("/dealer/orders", func(r chi.Router) {
			r.Post("/", orderHandler.CreateOrder)
			r.Get("/", orderHandler.ListOrders)
			r.Get("/{orderId}", orderHandler.GetOrder)
		})

		r.Get("/catalog", func(w http.ResponseWriter, _ *http.Request) {
			writeSuccess(w, http.StatusOK, "", store.Catalog(), log)
		})
	})

	return r
}
