// Package domain defines the drink menu model.
//
// A drink has a unique title and a recipe made of ingredients. The short
// representation hides ingredient names and is public; the long one is only served to
// callers holding the get:drinks-detail permission.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TitleMaxLength is the maximum length of a drink title.
const TitleMaxLength = 80

// Ingredient is one component of a drink recipe.
type Ingredient struct {
	// Name of the ingredient (e.g., "espresso").
	Name string `json:"name"`
	// Color used to render the ingredient in the drink graphic.
	Color string `json:"color"`
	// Parts is the relative amount of the ingredient. Always at least 1.
	Parts int `json:"parts"`
}

// Drink is a menu entry.
type Drink struct {
	ID        uuid.UUID
	Title     string
	Recipe    []Ingredient
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateDrinkInput contains the fields of a new drink.
type CreateDrinkInput struct {
	Title  string
	Recipe []Ingredient
}

// UpdateDrinkInput contains a partial drink update. Nil fields are left unchanged.
type UpdateDrinkInput struct {
	Title  *string
	Recipe []Ingredient
}

// Apply copies the set fields of input onto the drink.
func (d *Drink) Apply(input *UpdateDrinkInput) {
	if input == nil {
		return
	}
	if input.Title != nil {
		d.Title = *input.Title
	}
	if input.Recipe != nil {
		d.Recipe = input.Recipe
	}
}

// DefaultDrink returns the drink seeded when the menu is reset.
func DefaultDrink() CreateDrinkInput {
	return CreateDrinkInput{
		Title: "water",
		Recipe: []Ingredient{
			{Name: "water", Color: "blue", Parts: 1},
		},
	}
}
