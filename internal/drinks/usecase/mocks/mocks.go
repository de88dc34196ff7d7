// Package mocks provides mock implementations of the drinks use case interfaces for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
)

// MockDrinkRepository is a mock implementation of usecase.DrinkRepository.
type MockDrinkRepository struct {
	mock.Mock
}

// NewMockDrinkRepository creates a MockDrinkRepository that asserts its expectations on cleanup.
func NewMockDrinkRepository(t *testing.T) *MockDrinkRepository {
	m := &MockDrinkRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDrinkRepository) Create(ctx context.Context, drink *drinksDomain.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

func (m *MockDrinkRepository) Get(ctx context.Context, drinkID uuid.UUID) (*drinksDomain.Drink, error) {
	args := m.Called(ctx, drinkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drinksDomain.Drink), args.Error(1)
}

func (m *MockDrinkRepository) List(ctx context.Context) ([]*drinksDomain.Drink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*drinksDomain.Drink), args.Error(1)
}

func (m *MockDrinkRepository) Update(ctx context.Context, drink *drinksDomain.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

func (m *MockDrinkRepository) Delete(ctx context.Context, drinkID uuid.UUID) error {
	args := m.Called(ctx, drinkID)
	return args.Error(0)
}

func (m *MockDrinkRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockDrinkUseCase is a mock implementation of usecase.DrinkUseCase.
type MockDrinkUseCase struct {
	mock.Mock
}

// NewMockDrinkUseCase creates a MockDrinkUseCase that asserts its expectations on cleanup.
func NewMockDrinkUseCase(t *testing.T) *MockDrinkUseCase {
	m := &MockDrinkUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDrinkUseCase) Create(
	ctx context.Context,
	input *drinksDomain.CreateDrinkInput,
) (*drinksDomain.Drink, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drinksDomain.Drink), args.Error(1)
}

func (m *MockDrinkUseCase) List(ctx context.Context) ([]*drinksDomain.Drink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*drinksDomain.Drink), args.Error(1)
}

func (m *MockDrinkUseCase) Update(
	ctx context.Context,
	drinkID uuid.UUID,
	input *drinksDomain.UpdateDrinkInput,
) (*drinksDomain.Drink, error) {
	args := m.Called(ctx, drinkID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drinksDomain.Drink), args.Error(1)
}

func (m *MockDrinkUseCase) Delete(ctx context.Context, drinkID uuid.UUID) error {
	args := m.Called(ctx, drinkID)
	return args.Error(0)
}

func (m *MockDrinkUseCase) Reset(ctx context.Context) (*drinksDomain.Drink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drinksDomain.Drink), args.Error(1)
}
