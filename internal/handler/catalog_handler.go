package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"storefront/internal/catalog"
	"storefront/internal/model"
	"storefront/internal/notify"
	"storefront/internal/search"

	"github.com/rs/zerolog"
)

// CatalogHandler exposes the catalogue snapshot and the search entry
// points to the view.
type CatalogHandler struct {
	catalog   *catalog.Service
	debouncer *search.Debouncer
	notifier  *notify.Recorder
	logger    zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogSvc *catalog.Service, debouncer *search.Debouncer, notifier *notify.Recorder, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:   catalogSvc,
		debouncer: debouncer,
		notifier:  notifier,
		logger:    logger.With().Str("handler", "catalog").Logger(),
	}
}

// CatalogResponse is the view-ready catalogue payload.
type CatalogResponse struct {
	Products      []model.Product       `json:"products"`
	Loading       bool                  `json:"loading"`
	Notifications []notify.Notification `json:"notifications"`
}

// Get handles GET /api/catalog requests.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, CatalogResponse{
		Products:      h.catalog.Snapshot(),
		Loading:       h.catalog.Loading(),
		Notifications: h.notifier.Drain(),
	})
}

// Search handles GET /api/catalog/search requests: an immediate,
// undebounced search that replaces the snapshot.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	query := r.URL.Query().Get("value")

	products, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, CatalogResponse{
		Products:      products,
		Loading:       h.catalog.Loading(),
		Notifications: h.notifier.Drain(),
	})
}

// searchInputRequest carries one keystroke of the search box.
type searchInputRequest struct {
	Value string `json:"value"`
}

// SearchInput handles POST /api/catalog/search-input requests. Each
// call represents a keystroke; the debouncer decides when a search
// actually fires.
func (h *CatalogHandler) SearchInput(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req searchInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	// The search fires after the request has completed, so it must not
	// inherit the request's cancellation.
	h.debouncer.Trigger(context.WithoutCancel(r.Context()), req.Value)

	w.WriteHeader(http.StatusAccepted)
}
