// Package mocks provides mock implementations of the database interfaces for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager.
// A nil error return runs fn with the caller's context; a non-nil one simulates a
// transaction that could not begin and skips fn.
type MockTxManager struct {
	mock.Mock
}

// NewMockTxManager creates a MockTxManager that asserts its expectations on cleanup.
func NewMockTxManager(t *testing.T) *MockTxManager {
	m := &MockTxManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WithTx mocks the WithTx method of TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
