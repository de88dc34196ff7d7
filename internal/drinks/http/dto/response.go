package dto

import (
	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
)

// ShortIngredientResponse is the public view of an ingredient. The name is withheld.
type ShortIngredientResponse struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// LongIngredientResponse is the detailed view of an ingredient.
type LongIngredientResponse struct {
	Color string `json:"color"`
	Name  string `json:"name"`
	Parts int    `json:"parts"`
}

// ShortDrinkResponse represents a drink in public listings.
type ShortDrinkResponse struct {
	ID     string                    `json:"id"`
	Title  string                    `json:"title"`
	Recipe []ShortIngredientResponse `json:"recipe"`
}

// LongDrinkResponse represents a drink with its full recipe.
type LongDrinkResponse struct {
	ID     string                   `json:"id"`
	Title  string                   `json:"title"`
	Recipe []LongIngredientResponse `json:"recipe"`
}

// ShortDrinksResponse wraps a public drink listing.
type ShortDrinksResponse struct {
	Success bool                 `json:"success"`
	Drinks  []ShortDrinkResponse `json:"drinks"`
}

// LongDrinksResponse wraps drinks with their full recipes.
type LongDrinksResponse struct {
	Success bool                `json:"success"`
	Drinks  []LongDrinkResponse `json:"drinks"`
}

// DeleteDrinkResponse acknowledges a deletion with the removed drink ID.
type DeleteDrinkResponse struct {
	Success bool   `json:"success"`
	Delete  string `json:"delete"`
}

// StatusResponse is the body of the liveness probe.
type StatusResponse struct {
	Success bool `json:"success"`
}

// MapDrinkToShortResponse converts a domain drink to its public representation.
func MapDrinkToShortResponse(drink *drinksDomain.Drink) ShortDrinkResponse {
	recipe := make([]ShortIngredientResponse, 0, len(drink.Recipe))
	for _, ingredient := range drink.Recipe {
		recipe = append(recipe, ShortIngredientResponse{
			Color: ingredient.Color,
			Parts: ingredient.Parts,
		})
	}

	return ShortDrinkResponse{
		ID:     drink.ID.String(),
		Title:  drink.Title,
		Recipe: recipe,
	}
}

// MapDrinkToLongResponse converts a domain drink to its detailed representation.
func MapDrinkToLongResponse(drink *drinksDomain.Drink) LongDrinkResponse {
	recipe := make([]LongIngredientResponse, 0, len(drink.Recipe))
	for _, ingredient := range drink.Recipe {
		recipe = append(recipe, LongIngredientResponse{
			Color: ingredient.Color,
			Name:  ingredient.Name,
			Parts: ingredient.Parts,
		})
	}

	return LongDrinkResponse{
		ID:     drink.ID.String(),
		Title:  drink.Title,
		Recipe: recipe,
	}
}

// MapDrinksToShortResponse converts drinks to a public listing. An empty menu yields an
// empty array.
func MapDrinksToShortResponse(drinks []*drinksDomain.Drink) ShortDrinksResponse {
	items := make([]ShortDrinkResponse, 0, len(drinks))
	for _, drink := range drinks {
		items = append(items, MapDrinkToShortResponse(drink))
	}
	return ShortDrinksResponse{Success: true, Drinks: items}
}

// MapDrinksToLongResponse converts drinks to a detailed listing.
func MapDrinksToLongResponse(drinks ...*drinksDomain.Drink) LongDrinksResponse {
	items := make([]LongDrinkResponse, 0, len(drinks))
	for _, drink := range drinks {
		items = append(items, MapDrinkToLongResponse(drink))
	}
	return LongDrinksResponse{Success: true, Drinks: items}
}
