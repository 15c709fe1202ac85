package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	accountHandler *handler.AccountHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/catalog", catalogHandler.Get)
	mux.HandleFunc("/api/catalog/search", catalogHandler.Search)
	mux.HandleFunc("/api/catalog/search-input", catalogHandler.SearchInput)

	mux.HandleFunc("/api/cart", cartHandler.Get)
	mux.HandleFunc("/api/cart/items", cartHandler.UpsertItem)

	mux.HandleFunc("/api/auth/register", accountHandler.Register)

	// Apply middleware in order: Recovery -> Logging -> CORS -> RequestID
	var h http.Handler = mux
	h = middleware.RequestID(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
