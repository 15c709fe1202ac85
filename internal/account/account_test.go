package account

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

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name    string
		input   Registration
		wantMsg string
	}{
		{
			name:    "missing username",
			input:   Registration{Password: "secret123", ConfirmPassword: "secret123"},
			wantMsg: "Username is a required field",
		},
		{
			name:    "short username",
			input:   Registration{Username: "bob", Password: "secret123", ConfirmPassword: "secret123"},
			wantMsg: "Username must be at least 6 characters",
		},
		{
			name:    "missing password",
			input:   Registration{Username: "crio-user"},
			wantMsg: "Password is a required field",
		},
		{
			name:    "short password",
			input:   Registration{Username: "crio-user", Password: "abc", ConfirmPassword: "abc"},
			wantMsg: "Password must be at least 6 characters",
		},
		{
			name:    "mismatched confirmation",
			input:   Registration{Username: "crio-user", Password: "secret123", ConfirmPassword: "secret124"},
			wantMsg: "Passwords do not match",
		},
		{
			name:  "valid input",
			input: Registration{Username: "crio-user", Password: "secret123", ConfirmPassword: "secret123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	valid := Registration{Username: "crio-user", Password: "secret123", ConfirmPassword: "secret123"}

	t.Run("invalid input blocks before any network call", func(t *testing.T) {
		client := new(MockBackendClient)
		recorder := notify.NewRecorder(nil)
		svc := NewService(client, recorder, zerolog.Nop())

		err := svc.Register(ctx, Registration{Username: "bob"})

		require.Error(t, err)
		client.AssertNotCalled(t, "Register")

		notifications := recorder.Drain()
		require.Len(t, notifications, 1)
		assert.Equal(t, notify.SeverityError, notifications[0].Severity)
	})

	t.Run("success notifies", func(t *testing.T) {
		client := new(MockBackendClient)
		recorder := notify.NewRecorder(nil)
		svc := NewService(client, recorder, zerolog.Nop())

		client.On("Register", ctx, "crio-user", "secret123").Return(nil).Once()

		err := svc.Register(ctx, valid)

		require.NoError(t, err)
		notifications := recorder.Drain()
		require.Len(t, notifications, 1)
		assert.Equal(t, notify.SeveritySuccess, notifications[0].Severity)
		assert.Equal(t, "Registered successfully", notifications[0].Message)
	})

	t.Run("backend rejection surfaces its message", func(t *testing.T) {
		client := new(MockBackendClient)
		recorder := notify.NewRecorder(nil)
		svc := NewService(client, recorder, zerolog.Nop())

		client.On("Register", ctx, "crio-user", "secret123").
			Return(model.NewDomainError(model.ErrCodeInvalidRequest, "Username is already taken")).Once()

		err := svc.Register(ctx, valid)

		require.Error(t, err)
		notifications := recorder.Drain()
		require.Len(t, notifications, 1)
		assert.Equal(t, "Username is already taken", notifications[0].Message)
	})

	t.Run("connectivity failure surfaces a generic message", func(t *testing.T) {
		client := new(MockBackendClient)
		recorder := notify.NewRecorder(nil)
		svc := NewService(client, recorder, zerolog.Nop())

		client.On("Register", ctx, "crio-user", "secret123").
			Return(errors.New("connection refused")).Once()

		err := svc.Register(ctx, valid)

		require.Error(t, err)
		notifications := recorder.Drain()
		require.Len(t, notifications, 1)
		assert.Equal(t, model.ErrConnectivity.Message, notifications[0].Message)
	})
}
