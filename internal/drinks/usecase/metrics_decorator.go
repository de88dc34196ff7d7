package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
	"github.com/t-lanigan/coffee-shop/internal/metrics"
)

const drinksMetricsDomain = "drinks"

// drinkUseCaseWithMetrics decorates DrinkUseCase with metrics instrumentation.
type drinkUseCaseWithMetrics struct {
	next    DrinkUseCase
	metrics metrics.BusinessMetrics
}

// NewDrinkUseCaseWithMetrics wraps a DrinkUseCase with metrics recording.
func NewDrinkUseCaseWithMetrics(useCase DrinkUseCase, m metrics.BusinessMetrics) DrinkUseCase {
	return &drinkUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *drinkUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, drinksMetricsDomain, operation, status)
	d.metrics.RecordDuration(ctx, drinksMetricsDomain, operation, time.Since(start), status)
}

// Create records metrics for drink creation.
func (d *drinkUseCaseWithMetrics) Create(
	ctx context.Context,
	input *drinksDomain.CreateDrinkInput,
) (*drinksDomain.Drink, error) {
	start := time.Now()
	drink, err := d.next.Create(ctx, input)
	d.record(ctx, "drink_create", start, err)
	return drink, err
}

// List records metrics for drink listing.
func (d *drinkUseCaseWithMetrics) List(ctx context.Context) ([]*drinksDomain.Drink, error) {
	start := time.Now()
	drinks, err := d.next.List(ctx)
	d.record(ctx, "drink_list", start, err)
	return drinks, err
}

// Update records metrics for drink updates.
func (d *drinkUseCaseWithMetrics) Update(
	ctx context.Context,
	drinkID uuid.UUID,
	input *drinksDomain.UpdateDrinkInput,
) (*drinksDomain.Drink, error) {
	start := time.Now()
	drink, err := d.next.Update(ctx, drinkID, input)
	d.record(ctx, "drink_update", start, err)
	return drink, err
}

// Delete records metrics for drink deletion.
func (d *drinkUseCaseWithMetrics) Delete(ctx context.Context, drinkID uuid.UUID) error {
	start := time.Now()
	err := d.next.Delete(ctx, drinkID)
	d.record(ctx, "drink_delete", start, err)
	return err
}

// Reset records metrics for menu resets.
func (d *drinkUseCaseWithMetrics) Reset(ctx context.Context) (*drinksDomain.Drink, error) {
	start := time.Now()
	drink, err := d.next.Reset(ctx)
	d.record(ctx, "drink_reset", start, err)
	return drink, err
}
