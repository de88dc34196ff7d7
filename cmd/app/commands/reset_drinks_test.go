package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
	drinksMocks "github.com/t-lanigan/coffee-shop/internal/drinks/usecase/mocks"
)

func TestRunResetDrinks(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	seed := drinksDomain.DefaultDrink()
	water := &drinksDomain.Drink{
		ID:     uuid.Must(uuid.NewV7()),
		Title:  seed.Title,
		Recipe: seed.Recipe,
	}

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := drinksMocks.NewMockDrinkUseCase(t)
		mockUseCase.On("Reset", ctx).Return(water, nil).Once()

		var out bytes.Buffer
		err := RunResetDrinks(ctx, mockUseCase, logger, &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), `Drinks reset. Seeded "water"`)
		require.Contains(t, out.String(), water.ID.String())
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := drinksMocks.NewMockDrinkUseCase(t)
		mockUseCase.On("Reset", ctx).Return(water, nil).Once()

		var out bytes.Buffer
		err := RunResetDrinks(ctx, mockUseCase, logger, &out, "json")
		require.NoError(t, err)

		var result struct {
			Success bool `json:"success"`
			Seeded  struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"seeded"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.True(t, result.Success)
		require.Equal(t, water.ID.String(), result.Seeded.ID)
		require.Equal(t, "water", result.Seeded.Title)
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := drinksMocks.NewMockDrinkUseCase(t)
		mockUseCase.On("Reset", ctx).Return(nil, errors.New("database is gone")).Once()

		var out bytes.Buffer
		err := RunResetDrinks(ctx, mockUseCase, logger, &out, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to reset drinks")
		require.Empty(t, out.String())
	})

	t.Run("invalid-format", func(t *testing.T) {
		mockUseCase := drinksMocks.NewMockDrinkUseCase(t)

		err := RunResetDrinks(ctx, mockUseCase, logger, &bytes.Buffer{}, "yaml")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid format")
	})
}
