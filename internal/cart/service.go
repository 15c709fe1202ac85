package cart

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/backend"
	"storefront/internal/model"
	"storefront/internal/notify"

	"github.com/rs/zerolog"
)

// CatalogSource provides the current catalogue snapshot used to join
// cart records into line items.
type CatalogSource interface {
	Snapshot() []model.Product
}

// Options controls SetQuantity guard behaviour.
type Options struct {
	// PreventDuplicate rejects the write when the product is already
	// in the cart. Set only by the "add to cart" entry point; the
	// quantity +/- controls never set it.
	PreventDuplicate bool
}

// Service owns the cart records as last reported by the backend and the
// line items derived from them. All cart mutations flow through
// SetQuantity; there is no separate path for add, increment, decrement
// or remove.
type Service struct {
	client   backend.Client
	catalog  CatalogSource
	notifier notify.Notifier
	logger   zerolog.Logger

	mu      sync.Mutex
	records []model.CartRecord
	items   []model.LineItem

	// Writes are serialised per product, and responses are applied in
	// issue order: a response carrying a stale sequence never
	// overwrites state written by a newer one.
	seq     uint64
	applied uint64
	gatesMu sync.Mutex
	gates   map[string]*sync.Mutex
}

// NewService creates a new cart service.
func NewService(client backend.Client, catalog CatalogSource, notifier notify.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		client:   client,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger.With().Str("service", "cart").Logger(),
		gates:    map[string]*sync.Mutex{},
	}
}

// Load fetches the user's raw cart records and derives line items
// against the current catalogue snapshot. An empty token means an
// anonymous user: no call is made and the result is nil. A
// backend-signalled invalid request clears the cart state; any other
// failure leaves it untouched.
func (s *Service) Load(ctx context.Context, token string) ([]model.CartRecord, error) {
	if token == "" {
		s.logger.Debug().Msg("anonymous user, skipping cart load")
		return nil, nil
	}

	seq := s.nextSeq()

	records, err := s.client.GetCart(ctx, token)
	if err != nil {
		if derr, ok := invalidInput(err); ok {
			s.logger.Warn().Err(err).Msg("cart load rejected by backend")
			s.clear(seq)
			s.notifier.Error(derr.Message)
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to load cart")
		s.notifier.Error("Could not fetch cart details. Check that the backend is running, reachable and returns valid JSON.")
		return nil, err
	}

	s.apply(seq, records)

	s.logger.Debug().Int("count", len(records)).Msg("cart loaded")

	return records, nil
}

// SetQuantity is the single write path for all cart mutations. A
// quantity of 0 removes the item. Guards are evaluated in order before
// any network call: missing token, then duplicate prevention.
func (s *Service) SetQuantity(ctx context.Context, token, productID string, quantity int, opts Options) ([]model.LineItem, error) {
	if token == "" {
		s.logger.Debug().Str("product_id", productID).Msg("cart write without token")
		s.notifier.Warning(model.ErrUnauthenticated.Message)
		return nil, model.ErrUnauthenticated
	}

	if opts.PreventDuplicate && HasRecord(s.Records(), productID) {
		s.logger.Debug().Str("product_id", productID).Msg("duplicate add rejected")
		s.notifier.Warning(model.ErrDuplicateItem.Message)
		return nil, model.ErrDuplicateItem
	}

	gate := s.gate(productID)
	gate.Lock()
	defer gate.Unlock()

	seq := s.nextSeq()

	records, err := s.client.UpsertCartItem(ctx, token, productID, quantity)
	if err != nil {
		if derr, ok := invalidInput(err); ok {
			s.logger.Warn().
				Err(err).
				Str("product_id", productID).
				Int("quantity", quantity).
				Msg("cart write rejected by backend")
			s.clear(seq)
			s.notifier.Error(derr.Message)
			return nil, err
		}
		s.logger.Error().
			Err(err).
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("cart write failed")
		s.notifier.Error("Could not add/update product in the cart. Check that the backend is running, reachable and returns valid JSON.")
		return nil, err
	}

	s.apply(seq, records)

	s.logger.Info().
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("cart updated")

	return s.Items(), nil
}

// Refresh re-derives line items from the held records and the current
// catalogue snapshot, for use after the snapshot has been replaced.
func (s *Service) Refresh() {
	s.apply(s.nextSeq(), s.Records())
}

// Items returns the line items that should be rendered: quantity-zero
// records are held internally but never displayed.
func (s *Service) Items() []model.LineItem {
	return Visible(s.allItems())
}

// Total returns the total value of the current cart.
func (s *Service) Total() float64 {
	return ComputeTotal(s.allItems())
}

// Records returns a copy of the raw cart records as last reported by
// the backend.
func (s *Service) Records() []model.CartRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Reset discards all cart state, used on logout.
func (s *Service) Reset() {
	s.clear(s.nextSeq())
	s.logger.Debug().Msg("cart state reset")
}

func (s *Service) allItems() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// apply replaces the cart state with the backend's authoritative
// response, unless a newer response has already been applied.
func (s *Service) apply(seq uint64, records []model.CartRecord) {
	items, orphans := Join(records, s.catalog.Snapshot())
	for _, id := range orphans {
		s.logger.Warn().Str("product_id", id).Msg("dropping stale cart record, product not in catalogue")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		s.logger.Debug().
			Uint64("seq", seq).
			Uint64("applied", s.applied).
			Msg("discarding stale cart response")
		return
	}

	s.applied = seq
	s.records = records
	s.items = items
}

func (s *Service) clear(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		return
	}

	s.applied = seq
	s.records = nil
	s.items = nil
}

func (s *Service) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

func (s *Service) gate(productID string) *sync.Mutex {
	s.gatesMu.Lock()
	defer s.gatesMu.Unlock()

	g, ok := s.gates[productID]
	if !ok {
		g = &sync.Mutex{}
		s.gates[productID] = g
	}
	return g
}

// invalidInput reports whether the error is a backend-signalled invalid
// request (bad product id, bad token shape) as opposed to a
// connectivity failure.
func invalidInput(err error) (*model.DomainError, bool) {
	var derr *model.DomainError
	if !errors.As(err, &derr) {
		return nil, false
	}
	if derr.Code == model.ErrCodeInvalidRequest || derr.Code == model.ErrCodeNotFound {
		return derr, true
	}
	return nil, false
}
