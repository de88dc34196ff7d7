// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	validation "github.com/jellydator/validation"

	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
	customValidation "github.com/t-lanigan/coffee-shop/internal/validation"
)

// IngredientRequest is one recipe ingredient in a request body.
type IngredientRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// Validate checks if the ingredient is valid.
func (r IngredientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Color,
			validation.Required,
			customValidation.Color,
		),
		validation.Field(&r.Parts,
			validation.Required,
			validation.Min(1),
		),
	)
}

// RecipeRequest is the recipe of a drink. A single ingredient object is accepted in
// place of a one element array.
type RecipeRequest []IngredientRequest

// UnmarshalJSON decodes either an ingredient array or a single ingredient object.
func (r *RecipeRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var ingredient IngredientRequest
		if err := json.Unmarshal(trimmed, &ingredient); err != nil {
			return err
		}
		*r = RecipeRequest{ingredient}
		return nil
	}

	var ingredients []IngredientRequest
	if err := json.Unmarshal(trimmed, &ingredients); err != nil {
		return err
	}
	*r = ingredients
	return nil
}

func (r RecipeRequest) toDomain() []drinksDomain.Ingredient {
	if r == nil {
		return nil
	}

	ingredients := make([]drinksDomain.Ingredient, 0, len(r))
	for _, ingredient := range r {
		ingredients = append(ingredients, drinksDomain.Ingredient{
			Name:  strings.TrimSpace(ingredient.Name),
			Color: ingredient.Color,
			Parts: ingredient.Parts,
		})
	}
	return ingredients
}

// CreateDrinkRequest contains the parameters for creating a drink.
type CreateDrinkRequest struct {
	Title  string        `json:"title"`
	Recipe RecipeRequest `json:"recipe"`
}

// Validate checks if the create drink request is valid.
func (r *CreateDrinkRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, drinksDomain.TitleMaxLength),
		),
		validation.Field(&r.Recipe,
			validation.Required,
		),
	)
}

// ToInput converts the request into the use case input.
func (r *CreateDrinkRequest) ToInput() *drinksDomain.CreateDrinkInput {
	return &drinksDomain.CreateDrinkInput{
		Title:  strings.TrimSpace(r.Title),
		Recipe: r.Recipe.toDomain(),
	}
}

// UpdateDrinkRequest contains a partial drink update. Omitted fields are left unchanged.
type UpdateDrinkRequest struct {
	Title  *string       `json:"title"`
	Recipe RecipeRequest `json:"recipe"`
}

// Validate checks if the update drink request is valid.
func (r *UpdateDrinkRequest) Validate() error {
	if r.Title == nil && r.Recipe == nil {
		return validation.NewError("validation_empty_update", "title or recipe is required")
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty,
			customValidation.NotBlank,
			validation.RuneLength(1, drinksDomain.TitleMaxLength),
		),
		validation.Field(&r.Recipe,
			validation.NilOrNotEmpty,
		),
	)
}

// ToInput converts the request into the use case input.
func (r *UpdateDrinkRequest) ToInput() *drinksDomain.UpdateDrinkInput {
	input := &drinksDomain.UpdateDrinkInput{
		Recipe: r.Recipe.toDomain(),
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		input.Title = &title
	}
	return input
}
