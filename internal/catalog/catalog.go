// Package catalog owns the in-memory product snapshot. The snapshot is
// only ever replaced wholesale, never merged, so readers never observe
// a half-updated list.
package catalog

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/backend"
	"storefront/internal/model"
	"storefront/internal/notify"

	"github.com/rs/zerolog"
)

// Service fetches products from the backend and holds the current
// catalogue snapshot.
type Service struct {
	client   backend.Client
	notifier notify.Notifier
	logger   zerolog.Logger

	mu       sync.RWMutex
	products []model.Product
	loading  bool
}

// NewService creates a new catalog service.
func NewService(client backend.Client, notifier notify.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		client:   client,
		notifier: notifier,
		logger:   logger.With().Str("service", "catalog").Logger(),
	}
}

// FetchAll retrieves the full product list and replaces the snapshot.
// On failure the snapshot is left unchanged and the user is notified.
// The loading flag is raised for the duration of the call.
func (s *Service) FetchAll(ctx context.Context) ([]model.Product, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	products, err := s.client.ListProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch products")
		s.notifyFailure(err)
		return nil, err
	}

	s.replace(products)

	s.logger.Debug().Int("count", len(products)).Msg("catalogue replaced")

	return products, nil
}

// Search retrieves products matching the query and replaces the
// snapshot. A backend "no matches" response replaces the snapshot with
// an empty list and is not an error. Any other failure leaves the
// snapshot unchanged and notifies the user. Search does not touch the
// loading flag.
func (s *Service) Search(ctx context.Context, query string) ([]model.Product, error) {
	products, err := s.client.SearchProducts(ctx, query)
	if err != nil {
		if errors.Is(err, model.ErrNoMatches) {
			s.logger.Debug().Str("query", query).Msg("no products matched")
			s.replace([]model.Product{})
			return []model.Product{}, nil
		}
		s.logger.Error().Err(err).Str("query", query).Msg("search failed")
		s.notifyFailure(err)
		return nil, err
	}

	s.replace(products)

	s.logger.Debug().
		Str("query", query).
		Int("count", len(products)).
		Msg("catalogue replaced from search")

	return products, nil
}

// Snapshot returns a copy of the current catalogue snapshot.
func (s *Service) Snapshot() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Loading reports whether a full catalogue fetch is in progress.
func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Service) replace(products []model.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Service) notifyFailure(err error) {
	var derr *model.DomainError
	if errors.As(err, &derr) && derr.Code == model.ErrCodeInvalidRequest {
		s.notifier.Error(derr.Message)
		return
	}
	s.notifier.Error(model.ErrConnectivity.Message)
}
