package catalog

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"
	"storefront/internal/notify"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBackendClient is a mock implementation of backend.Client.
type MockBackendClient struct {
	mock.Mock
}

func (m *MockBackendClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockBackendClient) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockBackendClient) GetCart(ctx context.Context, token string) ([]model.CartRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartRecord), args.Error(1)
}

func (m *MockBackendClient) UpsertCartItem(ctx context.Context, token, productID string, quantity int) ([]model.CartRecord, error) {
	args := m.Called(ctx, token, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartRecord), args.Error(1)
}

func (m *MockBackendClient) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func newTestService(client *MockBackendClient) (*Service, *notify.Recorder) {
	recorder := notify.NewRecorder(nil)
	return NewService(client, recorder, zerolog.Nop()), recorder
}

func fiveProducts() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Ball"},
		{ID: "p2", Name: "Phone"},
		{ID: "p3", Name: "Shirt"},
		{ID: "p4", Name: "Mug"},
		{ID: "p5", Name: "Lamp"},
	}
}

func TestService_FetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success replaces the snapshot", func(t *testing.T) {
		client := new(MockBackendClient)
		svc, _ := newTestService(client)

		client.On("ListProducts", ctx).Return(fiveProducts(), nil).Once()

		products, err := svc.FetchAll(ctx)

		require.NoError(t, err)
		assert.Len(t, products, 5)
		assert.Len(t, svc.Snapshot(), 5)
		assert.False(t, svc.Loading(), "loading flag must be lowered after the fetch")
	})

	t.Run("failure leaves prior snapshot unchanged and notifies", func(t *testing.T) {
		client := new(MockBackendClient)
		svc, recorder := newTestService(client)

		client.On("ListProducts", ctx).Return(fiveProducts(), nil).Once()
		_, err := svc.FetchAll(ctx)
		require.NoError(t, err)
		recorder.Drain()

		client.On("ListProducts", ctx).Return(nil, errors.New("connection refused")).Once()

		_, err = svc.FetchAll(ctx)

		require.Error(t, err)
		assert.Len(t, svc.Snapshot(), 5, "failed re-fetch must not touch the displayed list")
		assert.False(t, svc.Loading())

		notifications := recorder.Drain()
		require.Len(t, notifications, 1)
		assert.Equal(t, notify.SeverityError, notifications[0].Severity)
	})

	t.Run("backend message is surfaced on invalid request", func(t *testing.T) {
		client := new(MockBackendClient)
		svc, recorder := newTestService(client)

		client.On("ListProducts", ctx).
			Return(nil, model.NewDomainError(model.ErrCodeInvalidRequest, "Something went wrong in the backend")).Once()

		_, err := svc.FetchAll(ctx)

		require.Error(t, err)
		notifications := recorder.Drain()
		require.Len(t, notifications, 1)
		assert.Equal(t, "Something went wrong in the backend", notifications[0].Message)
	})
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("success replaces the snapshot", func(t *testing.T) {
		client := new(MockBackendClient)
		svc, _ := newTestService(client)

		client.On("SearchProducts", ctx, "ball").
			Return([]model.Product{{ID: "p1", Name: "Ball"}}, nil).Once()

		products, err := svc.Search(ctx, "ball")

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Ball", svc.Snapshot()[0].Name)
	})

	t.Run("no matches collapses to an empty snapshot without error", func(t *testing.T) {
		client := new(MockBackendClient)
		svc, recorder := newTestService(client)

		client.On("ListProducts", ctx).Return(fiveProducts(), nil).Once()
		_, err := svc.FetchAll(ctx)
		require.NoError(t, err)

		client.On("SearchProducts", ctx, "xyzzy").Return(nil, model.ErrNoMatches).Once()

		products, err := svc.Search(ctx, "xyzzy")

		require.NoError(t, err)
		assert.Empty(t, products)
		assert.Empty(t, svc.Snapshot())
		assert.Empty(t, recorder.Drain(), "no matches is not an error to the user")
	})

	t.Run("other failure leaves snapshot unchanged and notifies", func(t *testing.T) {
		client := new(MockBackendClient)
		svc, recorder := newTestService(client)

		client.On("ListProducts", ctx).Return(fiveProducts(), nil).Once()
		_, err := svc.FetchAll(ctx)
		require.NoError(t, err)
		recorder.Drain()

		client.On("SearchProducts", ctx, "ball").Return(nil, errors.New("timeout")).Once()

		_, err = svc.Search(ctx, "ball")

		require.Error(t, err)
		assert.Len(t, svc.Snapshot(), 5)
		require.Len(t, recorder.Drain(), 1)
	})
}
