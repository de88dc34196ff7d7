// Package repository implements drink persistence for PostgreSQL and MySQL.
// Recipes are stored as a JSON text column.
package repository

import (
	"database/sql"
	"encoding/json"

	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
	apperrors "github.com/t-lanigan/coffee-shop/internal/errors"
)

func encodeRecipe(recipe []drinksDomain.Ingredient) (string, error) {
	if recipe == nil {
		recipe = []drinksDomain.Ingredient{}
	}
	encoded, err := json.Marshal(recipe)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encode recipe")
	}
	return string(encoded), nil
}

func decodeRecipe(encoded string) ([]drinksDomain.Ingredient, error) {
	var recipe []drinksDomain.Ingredient
	if err := json.Unmarshal([]byte(encoded), &recipe); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode recipe")
	}
	return recipe, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// requireAffected turns a statement that touched no rows into ErrDrinkNotFound.
func requireAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return drinksDomain.ErrDrinkNotFound
	}
	return nil
}
