package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/model"
	"storefront/internal/notify"
	"storefront/internal/session"

	"github.com/rs/zerolog"
)

// CartHandler exposes the derived cart state and the single cart write
// path to the view.
type CartHandler struct {
	cart     *cart.Service
	session  *session.Store
	notifier *notify.Recorder
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartSvc *cart.Service, sess *session.Store, notifier *notify.Recorder, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:     cartSvc,
		session:  sess,
		notifier: notifier,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// CartResponse is the view-ready cart payload.
type CartResponse struct {
	Items         []model.LineItem      `json:"items"`
	Total         float64               `json:"total"`
	Notifications []notify.Notification `json:"notifications"`
}

// token resolves the effective auth token: the view's Bearer header
// wins, the stored session is the fallback.
func (h *CartHandler) token(r *http.Request) string {
	if t := bearerToken(r); t != "" {
		return t
	}
	return h.session.Token()
}

// Get handles GET /api/cart requests. With ?refresh=true the raw cart
// is re-fetched from the backend first.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if r.URL.Query().Get("refresh") == "true" {
		if _, err := h.cart.Load(r.Context(), h.token(r)); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
	}

	writeJSON(w, http.StatusOK, CartResponse{
		Items:         h.cart.Items(),
		Total:         h.cart.Total(),
		Notifications: h.notifier.Drain(),
	})
}

// upsertItemRequest carries a cart quantity change. Qty 0 removes the
// item.
type upsertItemRequest struct {
	ProductID        string `json:"productId"`
	Qty              int    `json:"qty"`
	PreventDuplicate bool   `json:"preventDuplicate"`
}

// UpsertItem handles POST /api/cart/items requests: add, increment,
// decrement and remove all arrive here.
func (h *CartHandler) UpsertItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req upsertItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}

	if req.Qty < 0 {
		writeError(w, http.StatusBadRequest, "qty cannot be negative", h.logger)
		return
	}

	items, err := h.cart.SetQuantity(r.Context(), h.token(r), req.ProductID, req.Qty, cart.Options{
		PreventDuplicate: req.PreventDuplicate,
	})
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, CartResponse{
		Items:         items,
		Total:         h.cart.Total(),
		Notifications: h.notifier.Drain(),
	})
}
