package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/account"
	"storefront/internal/notify"

	"github.com/rs/zerolog"
)

// AccountHandler exposes registration to the view.
type AccountHandler struct {
	account  *account.Service
	notifier *notify.Recorder
	logger   zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountSvc *account.Service, notifier *notify.Recorder, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		account:  accountSvc,
		notifier: notifier,
		logger:   logger.With().Str("handler", "account").Logger(),
	}
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Success       bool                  `json:"success"`
	Notifications []notify.Notification `json:"notifications"`
}

// Register handles POST /api/auth/register requests.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req account.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.account.Register(r.Context(), req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Success:       true,
		Notifications: h.notifier.Drain(),
	})
}
