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

func TestRunListDrinks(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	flatWhite := &drinksDomain.Drink{
		ID:    uuid.Must(uuid.NewV7()),
		Title: "Flat White",
		Recipe: []drinksDomain.Ingredient{
			{Name: "milk", Color: "white", Parts: 2},
			{Name: "espresso", Color: "#6f4e37", Parts: 1},
		},
	}

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := drinksMocks.NewMockDrinkUseCase(t)
		mockUseCase.On("List", ctx).Return([]*drinksDomain.Drink{flatWhite}, nil).Once()

		var out bytes.Buffer
		err := RunListDrinks(ctx, mockUseCase, logger, &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "TITLE")
		require.Contains(t, out.String(), "Flat White")
		require.Contains(t, out.String(), "2x milk (white), 1x espresso (#6f4e37)")
	})

	t.Run("text-output-empty-menu", func(t *testing.T) {
		mockUseCase := drinksMocks.NewMockDrinkUseCase(t)
		mockUseCase.On("List", ctx).Return([]*drinksDomain.Drink{}, nil).Once()

		var out bytes.Buffer
		err := RunListDrinks(ctx, mockUseCase, logger, &out, "text")

		require.NoError(t, err)
		require.Equal(t, "No drinks on the menu\n", out.String())
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := drinksMocks.NewMockDrinkUseCase(t)
		mockUseCase.On("List", ctx).Return([]*drinksDomain.Drink{flatWhite}, nil).Once()

		var out bytes.Buffer
		err := RunListDrinks(ctx, mockUseCase, logger, &out, "json")
		require.NoError(t, err)

		require.JSONEq(t, `{
			"success": true,
			"drinks": [{
				"id": "`+flatWhite.ID.String()+`",
				"title": "Flat White",
				"recipe": [
					{"color": "white", "name": "milk", "parts": 2},
					{"color": "#6f4e37", "name": "espresso", "parts": 1}
				]
			}]
		}`, out.String())
	})

	t.Run("json-output-empty-menu", func(t *testing.T) {
		mockUseCase := drinksMocks.NewMockDrinkUseCase(t)
		mockUseCase.On("List", ctx).Return([]*drinksDomain.Drink{}, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunListDrinks(ctx, mockUseCase, logger, &out, "json"))

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Equal(t, []any{}, result["drinks"])
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := drinksMocks.NewMockDrinkUseCase(t)
		mockUseCase.On("List", ctx).Return(nil, errors.New("connection reset")).Once()

		err := RunListDrinks(ctx, mockUseCase, logger, &bytes.Buffer{}, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to list drinks")
	})

	t.Run("invalid-format", func(t *testing.T) {
		mockUseCase := drinksMocks.NewMockDrinkUseCase(t)

		err := RunListDrinks(ctx, mockUseCase, logger, &bytes.Buffer{}, "csv")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid format")
	})
}

func TestFormatRecipe(t *testing.T) {
	require.Equal(t, "", formatRecipe(nil))
	require.Equal(t, "1x water (blue)", formatRecipe(drinksDomain.DefaultDrink().Recipe))
}
