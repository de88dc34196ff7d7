package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/t-lanigan/coffee-shop/internal/database"
	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
)

// drinkUseCase implements the DrinkUseCase interface.
type drinkUseCase struct {
	txManager database.TxManager
	drinkRepo DrinkRepository
	now       func() time.Time
}

// Create stores a new drink with a time-ordered ID.
func (d *drinkUseCase) Create(
	ctx context.Context,
	input *drinksDomain.CreateDrinkInput,
) (*drinksDomain.Drink, error) {
	drink, err := d.newDrink(input)
	if err != nil {
		return nil, err
	}

	if err := d.drinkRepo.Create(ctx, drink); err != nil {
		return nil, err
	}

	return drink, nil
}

// List returns every drink on the menu.
func (d *drinkUseCase) List(ctx context.Context) ([]*drinksDomain.Drink, error) {
	return d.drinkRepo.List(ctx)
}

// Update loads the drink, applies the partial input and persists it in one transaction.
func (d *drinkUseCase) Update(
	ctx context.Context,
	drinkID uuid.UUID,
	input *drinksDomain.UpdateDrinkInput,
) (*drinksDomain.Drink, error) {
	var drink *drinksDomain.Drink
	err := d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		current, err := d.drinkRepo.Get(txCtx, drinkID)
		if err != nil {
			return err
		}

		current.Apply(input)
		current.UpdatedAt = d.now().UTC()

		if err := d.drinkRepo.Update(txCtx, current); err != nil {
			return err
		}

		drink = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return drink, nil
}

// Delete removes a drink.
func (d *drinkUseCase) Delete(ctx context.Context, drinkID uuid.UUID) error {
	return d.drinkRepo.Delete(ctx, drinkID)
}

// Reset empties the menu and seeds the default drink atomically.
func (d *drinkUseCase) Reset(ctx context.Context) (*drinksDomain.Drink, error) {
	seed := drinksDomain.DefaultDrink()
	drink, err := d.newDrink(&seed)
	if err != nil {
		return nil, err
	}

	err = d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := d.drinkRepo.DeleteAll(txCtx); err != nil {
			return err
		}
		return d.drinkRepo.Create(txCtx, drink)
	})
	if err != nil {
		return nil, err
	}

	return drink, nil
}

func (d *drinkUseCase) newDrink(input *drinksDomain.CreateDrinkInput) (*drinksDomain.Drink, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	now := d.now().UTC()
	return &drinksDomain.Drink{
		ID:        id,
		Title:     input.Title,
		Recipe:    input.Recipe,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewDrinkUseCase creates a new DrinkUseCase.
func NewDrinkUseCase(txManager database.TxManager, drinkRepo DrinkRepository) DrinkUseCase {
	return &drinkUseCase{
		txManager: txManager,
		drinkRepo: drinkRepo,
		now:       time.Now,
	}
}
