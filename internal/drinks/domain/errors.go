package domain

import (
	"github.com/t-lanigan/coffee-shop/internal/errors"
)

// Drink-specific error definitions.
var (
	// ErrDrinkNotFound indicates no drink exists with the given ID.
	ErrDrinkNotFound = errors.Wrap(errors.ErrNotFound, "drink not found")

	// ErrDrinkTitleConflict indicates another drink already uses the title.
	ErrDrinkTitleConflict = errors.Wrap(errors.ErrConflict, "drink title already exists")
)
