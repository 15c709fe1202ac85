package backend

import (
	"context"

	"storefront/internal/model"
)

// Client defines the operations the storefront performs against the
// store backend REST API.
type Client interface {
	// ListProducts retrieves the full product catalogue.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// SearchProducts retrieves products matching the given keyword.
	// A backend "no matches" response surfaces as model.ErrNoMatches.
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)

	// GetCart retrieves the authenticated user's raw cart records.
	GetCart(ctx context.Context, token string) ([]model.CartRecord, error)

	// UpsertCartItem creates or updates a cart entry and returns the
	// full updated cart. A quantity of 0 removes the entry.
	UpsertCartItem(ctx context.Context, token, productID string, quantity int) ([]model.CartRecord, error)

	// Register creates a new user account.
	Register(ctx context.Context, username, password string) error
}
