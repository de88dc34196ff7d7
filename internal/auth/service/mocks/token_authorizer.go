// Package mocks provides mock implementations of the auth service interfaces for testing.
package mocks

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/t-lanigan/coffee-shop/internal/auth/domain"
)

// MockTokenAuthorizer is a mock implementation of TokenAuthorizer for testing.
type MockTokenAuthorizer struct {
	mock.Mock
}

// Authorize mocks the Authorize method of TokenAuthorizer.
func (m *MockTokenAuthorizer) Authorize(
	ctx context.Context,
	headers http.Header,
	permission string,
) (*authDomain.Claims, error) {
	args := m.Called(ctx, headers, permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Claims), args.Error(1)
}
