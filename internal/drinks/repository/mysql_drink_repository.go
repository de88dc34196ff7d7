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

// MySQLDrinkRepository implements Drink persistence for MySQL databases.
// IDs are stored as BINARY(16).
type MySQLDrinkRepository struct {
	db *sql.DB
}

// Create inserts a new drink into the MySQL database.
func (m *MySQLDrinkRepository) Create(ctx context.Context, drink *drinksDomain.Drink) error {
	querier := database.GetTx(ctx, m.db)

	id, err := drink.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal drink id")
	}

	recipe, err := encodeRecipe(drink.Recipe)
	if err != nil {
		return err
	}

	query := `INSERT INTO drinks (id, title, recipe, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, drink.Title, recipe, drink.CreatedAt, drink.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return drinksDomain.ErrDrinkTitleConflict
		}
		return apperrors.Wrap(err, "failed to create drink")
	}
	return nil
}

// Get retrieves a drink by its ID.
func (m *MySQLDrinkRepository) Get(ctx context.Context, drinkID uuid.UUID) (*drinksDomain.Drink, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := drinkID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal drink id")
	}

	query := `SELECT id, title, recipe, created_at, updated_at
			  FROM drinks
			  WHERE id = ?`

	drink, err := m.scanDrink(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, drinksDomain.ErrDrinkNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get drink")
	}
	return drink, nil
}

// List retrieves every drink ordered by title.
func (m *MySQLDrinkRepository) List(ctx context.Context) ([]*drinksDomain.Drink, error) {
	querier := database.GetTx(ctx, m.db)

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
		drink, err := m.scanDrink(rows)
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
func (m *MySQLDrinkRepository) Update(ctx context.Context, drink *drinksDomain.Drink) error {
	querier := database.GetTx(ctx, m.db)

	id, err := drink.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal drink id")
	}

	recipe, err := encodeRecipe(drink.Recipe)
	if err != nil {
		return err
	}

	// Without clientFoundRows MySQL counts changed rows only; updated_at always changes.
	query := `UPDATE drinks
			  SET title = ?, recipe = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, drink.Title, recipe, drink.UpdatedAt, id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return drinksDomain.ErrDrinkTitleConflict
		}
		return apperrors.Wrap(err, "failed to update drink")
	}

	return requireAffected(result, "failed to update drink")
}

// Delete removes a drink by its ID.
func (m *MySQLDrinkRepository) Delete(ctx context.Context, drinkID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := drinkID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal drink id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM drinks WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete drink")
	}

	return requireAffected(result, "failed to delete drink")
}

// DeleteAll removes every drink and returns how many were deleted.
func (m *MySQLDrinkRepository) DeleteAll(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, m.db)

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

func (m *MySQLDrinkRepository) scanDrink(row rowScanner) (*drinksDomain.Drink, error) {
	var drink drinksDomain.Drink
	var id []byte
	var recipe string

	if err := row.Scan(&id, &drink.Title, &recipe, &drink.CreatedAt, &drink.UpdatedAt); err != nil {
		return nil, err
	}

	if err := drink.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal drink id")
	}

	decoded, err := decodeRecipe(recipe)
	if err != nil {
		return nil, err
	}
	drink.Recipe = decoded

	return &drink, nil
}

// NewMySQLDrinkRepository creates a new MySQL Drink repository instance.
func NewMySQLDrinkRepository(db *sql.DB) *MySQLDrinkRepository {
	return &MySQLDrinkRepository{db: db}
}
