package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/t-lanigan/coffee-shop/internal/database"
	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
	apperrors "github.com/t-lanigan/coffee-shop/internal/errors"
)

// PostgreSQLDrinkRepository implements Drink persistence for PostgreSQL databases.
type PostgreSQLDrinkRepository struct {
	db *sql.DB
}

// Create inserts a new drink into the PostgreSQL database.
func (p *PostgreSQLDrinkRepository) Create(ctx context.Context, drink *drinksDomain.Drink) error {
	querier := database.GetTx(ctx, p.db)

	recipe, err := encodeRecipe(drink.Recipe)
	if err != nil {
		return err
	}

	query := `INSERT INTO drinks (id, title, recipe, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err = querier.ExecContext(ctx, query, drink.ID, drink.Title, recipe, drink.CreatedAt, drink.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return drinksDomain.ErrDrinkTitleConflict
		}
		return apperrors.Wrap(err, "failed to create drink")
	}
	return nil
}

// Get retrieves a drink by its ID.
func (p *PostgreSQLDrinkRepository) Get(ctx context.Context, drinkID uuid.UUID) (*drinksDomain.Drink, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, title, recipe, created_at, updated_at
			  FROM drinks
			  WHERE id = $1`

	drink, err := p.scanDrink(querier.QueryRowContext(ctx, query, drinkID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, drinksDomain.ErrDrinkNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get drink")
	}
	return drink, nil
}

// List retrieves every drink ordered by title.
func (p *PostgreSQLDrinkRepository) List(ctx context.Context) ([]*drinksDomain.Drink, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, title, recipe, created_at, updated_at
			  FROM drinks
			  ORDER BY title ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list drinks")
	}
	defer func() {
		_ = rows.Close()
	}()

	drinks := make([]*drinksDomain.Drink, 0)
	for rows.Next() {
		drink, err := p.scanDrink(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan drink")
		}
		drinks = append(drinks, drink)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate drinks")
	}

	return drinks, nil
}

// Update overwrites the title and recipe of an existing drink.
func (p *PostgreSQLDrinkRepository) Update(ctx context.Context, drink *drinksDomain.Drink) error {
	querier := database.GetTx(ctx, p.db)

	recipe, err := encodeRecipe(drink.Recipe)
	if err != nil {
		return err
	}

	query := `UPDATE drinks
			  SET title = $1, recipe = $2, updated_at = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, drink.Title, recipe, drink.UpdatedAt, drink.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return drinksDomain.ErrDrinkTitleConflict
		}
		return apperrors.Wrap(err, "failed to update drink")
	}

	return requireAffected(result, "failed to update drink")
}

// Delete removes a drink by its ID.
func (p *PostgreSQLDrinkRepository) Delete(ctx context.Context, drinkID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM drinks WHERE id = $1`, drinkID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete drink")
	}

	return requireAffected(result, "failed to delete drink")
}

// DeleteAll removes every drink and returns how many were deleted.
func (p *PostgreSQLDrinkRepository) DeleteAll(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM drinks`)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete drinks")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted drinks")
	}
	return deleted, nil
}

func (p *PostgreSQLDrinkRepository) scanDrink(row rowScanner) (*drinksDomain.Drink, error) {
	var drink drinksDomain.Drink
	var recipe string

	if err := row.Scan(&drink.ID, &drink.Title, &recipe, &drink.CreatedAt, &drink.UpdatedAt); err != nil {
		return nil, err
	}

	decoded, err := decodeRecipe(recipe)
	if err != nil {
		return nil, err
	}
	drink.Recipe = decoded

	return &drink, nil
}

// NewPostgreSQLDrinkRepository creates a new PostgreSQL Drink repository instance.
func NewPostgreSQLDrinkRepository(db *sql.DB) *PostgreSQLDrinkRepository {
	return &PostgreSQLDrinkRepository{db: db}
}
