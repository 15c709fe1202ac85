// Package storefront wires the storefront services together and drives
// the initial load.
package storefront

import (
	"context"

	"storefront/internal/account"
	"storefront/internal/backend"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/notify"
	"storefront/internal/search"
	"storefront/internal/session"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// App composes the storefront services around a shared backend client
// and session. Created at session start, torn down on logout.
type App struct {
	Catalog  *catalog.Service
	Cart     *cart.Service
	Account  *account.Service
	Search   *search.Debouncer
	Session  *session.Store
	Notifier *notify.Recorder
	logger   zerolog.Logger
}

// New builds the full service graph from configuration.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	sess, err := session.NewStore(cfg.Session.CredentialsFile, logger)
	if err != nil {
		return nil, err
	}

	notifier := notify.NewRecorder(notify.NewLogNotifier(logger))
	client := backend.NewClient(cfg.Backend, logger)

	catalogSvc := catalog.NewService(client, notifier, logger)
	cartSvc := cart.NewService(client, catalogSvc, notifier, logger)
	accountSvc := account.NewService(client, notifier, logger)

	debouncer := search.NewDebouncer(cfg.Search.DebounceDelay, func(ctx context.Context, query string) {
		_, _ = catalogSvc.Search(ctx, query)
	}, logger)

	return &App{
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Account:  accountSvc,
		Search:   debouncer,
		Session:  sess,
		Notifier: notifier,
		logger:   logger.With().Str("component", "app").Logger(),
	}, nil
}

// Bootstrap performs the initial load: the catalogue and the raw cart
// are fetched concurrently, then line items are derived from both. A
// failed fetch is already translated into a notification by the owning
// service; the surviving state stays consistent either way.
func (a *App) Bootstrap(ctx context.Context) error {
	// Both fetches run to completion even if the other fails; each
	// service reports its own failure and keeps its state defined.
	var g errgroup.Group

	g.Go(func() error {
		_, err := a.Catalog.FetchAll(ctx)
		return err
	})

	token := a.Session.Token()
	g.Go(func() error {
		_, err := a.Cart.Load(ctx, token)
		return err
	})

	err := g.Wait()

	// The cart may have been joined against a catalogue snapshot that
	// was still empty; re-derive now that both fetches settled.
	a.Cart.Refresh()

	if err != nil {
		a.logger.Warn().Err(err).Msg("bootstrap completed with errors")
		return err
	}

	a.logger.Info().
		Int("products", len(a.Catalog.Snapshot())).
		Int("cart_items", len(a.Cart.Items())).
		Msg("bootstrap completed")

	return nil
}

// Close stops background work, used on shutdown.
func (a *App) Close() {
	a.Search.Stop()
}
