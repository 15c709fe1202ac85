// Package account handles registration against the backend auth API.
// Input validation runs locally and blocks submission before any
// network call is made.
package account

import (
	"context"
	"errors"

	"storefront/internal/backend"
	"storefront/internal/model"
	"storefront/internal/notify"

	"github.com/rs/zerolog"
)

// Registration carries the register form fields.
type Registration struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ValidateRegistration checks the form fields. The first failing rule
// wins; its message is surfaced to the user verbatim.
func ValidateRegistration(r Registration) error {
	if r.Username == "" {
		return model.NewDomainError(model.ErrCodeInvalidInput, "Username is a required field")
	}
	if len(r.Username) < 6 {
		return model.NewDomainError(model.ErrCodeInvalidInput, "Username must be at least 6 characters")
	}
	if r.Password == "" {
		return model.NewDomainError(model.ErrCodeInvalidInput, "Password is a required field")
	}
	if len(r.Password) < 6 {
		return model.NewDomainError(model.ErrCodeInvalidInput, "Password must be at least 6 characters")
	}
	if r.Password != r.ConfirmPassword {
		return model.NewDomainError(model.ErrCodeInvalidInput, "Passwords do not match")
	}
	return nil
}

// Service registers new accounts.
type Service struct {
	client   backend.Client
	notifier notify.Notifier
	logger   zerolog.Logger
}

// NewService creates a new account service.
func NewService(client backend.Client, notifier notify.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		client:   client,
		notifier: notifier,
		logger:   logger.With().Str("service", "account").Logger(),
	}
}

// Register validates the form and creates the account. Validation
// failures never reach the backend.
func (s *Service) Register(ctx context.Context, r Registration) error {
	if err := ValidateRegistration(r); err != nil {
		s.logger.Debug().Err(err).Msg("registration input rejected")
		s.notifier.Error(err.Error())
		return err
	}

	if err := s.client.Register(ctx, r.Username, r.Password); err != nil {
		var derr *model.DomainError
		if errors.As(err, &derr) {
			s.logger.Warn().Err(err).Str("username", r.Username).Msg("registration rejected by backend")
			s.notifier.Error(derr.Message)
			return err
		}
		s.logger.Error().Err(err).Str("username", r.Username).Msg("registration failed")
		s.notifier.Error(model.ErrConnectivity.Message)
		return err
	}

	s.logger.Info().Str("username", r.Username).Msg("account registered")
	s.notifier.Success("Registered successfully")

	return nil
}
