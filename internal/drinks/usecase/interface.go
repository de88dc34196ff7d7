// Package usecase implements the drink menu business logic on top of a transactional
// drink repository.
package usecase

import (
	"context"

	"github.com/google/uuid"

	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
)

// DrinkRepository defines the interface for Drink persistence operations.
type DrinkRepository interface {
	Create(ctx context.Context, drink *drinksDomain.Drink) error
	Get(ctx context.Context, drinkID uuid.UUID) (*drinksDomain.Drink, error)
	List(ctx context.Context) ([]*drinksDomain.Drink, error)
	Update(ctx context.Context, drink *drinksDomain.Drink) error
	Delete(ctx context.Context, drinkID uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
}

// DrinkUseCase defines the interface for drink menu business logic.
type DrinkUseCase interface {
	Create(ctx context.Context, input *drinksDomain.CreateDrinkInput) (*drinksDomain.Drink, error)
	List(ctx context.Context) ([]*drinksDomain.Drink, error)
	// Update applies a partial update. Returns ErrDrinkNotFound if the drink does not exist.
	Update(ctx context.Context, drinkID uuid.UUID, input *drinksDomain.UpdateDrinkInput) (*drinksDomain.Drink, error)
	Delete(ctx context.Context, drinkID uuid.UUID) error
	// Reset removes every drink and seeds the default one, returning it.
	Reset(ctx context.Context) (*drinksDomain.Drink, error)
}
