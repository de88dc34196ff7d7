package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
	"github.com/t-lanigan/coffee-shop/internal/drinks/http/dto"
	drinksUseCase "github.com/t-lanigan/coffee-shop/internal/drinks/usecase"
)

// RunListDrinks prints the menu with full recipes. The json format matches the
// GET /drinks-detail response body.
func RunListDrinks(
	ctx context.Context,
	drinkUseCase drinksUseCase.DrinkUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	drinks, err := drinkUseCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list drinks: %w", err)
	}

	logger.Debug("drinks listed", slog.Int("count", len(drinks)))

	if format == formatJSON {
		return writeJSON(writer, dto.MapDrinksToLongResponse(drinks...))
	}

	return writeDrinksTable(writer, drinks)
}

func writeDrinksTable(writer io.Writer, drinks []*drinksDomain.Drink) error {
	if len(drinks) == 0 {
		_, err := fmt.Fprintln(writer, "No drinks on the menu")
		return err
	}

	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tRECIPE")
	for _, drink := range drinks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", drink.ID, drink.Title, formatRecipe(drink.Recipe))
	}
	return tw.Flush()
}

// formatRecipe renders a recipe as "2x milk (white), 1x espresso (brown)".
func formatRecipe(recipe []drinksDomain.Ingredient) string {
	parts := make([]string, 0, len(recipe))
	for _, ingredient := range recipe {
		parts = append(parts, fmt.Sprintf("%dx %s (%s)", ingredient.Parts, ingredient.Name, ingredient.Color))
	}
	return strings.Join(parts, ", ")
}
