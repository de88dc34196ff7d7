package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	drinksUseCase "github.com/t-lanigan/coffee-shop/internal/drinks/usecase"
)

// RunResetDrinks deletes every drink and seeds the default menu entry in one
// transaction. Requires a migrated database.
func RunResetDrinks(
	ctx context.Context,
	drinkUseCase drinksUseCase.DrinkUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("resetting drinks menu")

	drink, err := drinkUseCase.Reset(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset drinks: %w", err)
	}

	logger.Info("drinks menu reset",
		slog.String("drink_id", drink.ID.String()),
		slog.String("title", drink.Title),
	)

	if format == formatJSON {
		return writeJSON(writer, map[string]any{
			"success": true,
			"seeded": map[string]any{
				"id":    drink.ID.String(),
				"title": drink.Title,
			},
		})
	}

	_, err = fmt.Fprintf(writer, "Drinks reset. Seeded %q (%s)\n", drink.Title, drink.ID)
	return err
}
