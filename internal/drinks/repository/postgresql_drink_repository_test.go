package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-lanigan/coffee-shop/internal/database"
	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
)

var drinkColumns = []string{"id", "title", "recipe", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func newTestDrink() *drinksDomain.Drink {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &drinksDomain.Drink{
		ID:    uuid.Must(uuid.NewV7()),
		Title: "flat white",
		Recipe: []drinksDomain.Ingredient{
			{Name: "espresso", Color: "brown", Parts: 1},
			{Name: "steamed milk", Color: "white", Parts: 2},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

const testRecipeJSON = `[{"name":"espresso","color":"brown","parts":1},{"name":"steamed milk","color":"white","parts":2}]`

func TestNewPostgreSQLDrinkRepository(t *testing.T) {
	db, _ := newMockDB(t)

	repo := NewPostgreSQLDrinkRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLDrinkRepository{}, repo)
}

func TestPostgreSQLDrinkRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		drink := newTestDrink()

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO drinks (id, title, recipe, created_at, updated_at)`)).
			WithArgs(drink.ID, drink.Title, testRecipeJSON, drink.CreatedAt, drink.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewPostgreSQLDrinkRepository(db).Create(ctx, drink)

		assert.NoError(t, err)
	})

	t.Run("Error_DuplicateTitle", func(t *testing.T) {
		db, mock := newMockDB(t)
		drink := newTestDrink()

		mock.ExpectExec(`INSERT INTO drinks`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := NewPostgreSQLDrinkRepository(db).Create(ctx, drink)

		assert.ErrorIs(t, err, drinksDomain.ErrDrinkTitleConflict)
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectExec(`INSERT INTO drinks`).WillReturnError(sql.ErrConnDone)

		err := NewPostgreSQLDrinkRepository(db).Create(ctx, newTestDrink())

		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NotErrorIs(t, err, drinksDomain.ErrDrinkTitleConflict)
	})

	t.Run("Success_UsesTransactionFromContext", func(t *testing.T) {
		db, mock := newMockDB(t)
		drink := newTestDrink()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO drinks`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := database.NewTxManager(db).WithTx(ctx, func(txCtx context.Context) error {
			return NewPostgreSQLDrinkRepository(db).Create(txCtx, drink)
		})

		assert.NoError(t, err)
	})
}

func TestPostgreSQLDrinkRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		drink := newTestDrink()

		mock.ExpectQuery(`SELECT id, title, recipe, created_at, updated_at\s+FROM drinks\s+WHERE id = \$1`).
			WithArgs(drink.ID).
			WillReturnRows(sqlmock.NewRows(drinkColumns).
				AddRow(drink.ID.String(), drink.Title, testRecipeJSON, drink.CreatedAt, drink.UpdatedAt))

		got, err := NewPostgreSQLDrinkRepository(db).Get(ctx, drink.ID)

		require.NoError(t, err)
		assert.Equal(t, drink, got)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT id, title, recipe`).WillReturnRows(sqlmock.NewRows(drinkColumns))

		got, err := NewPostgreSQLDrinkRepository(db).Get(ctx, uuid.Must(uuid.NewV7()))

		assert.Nil(t, got)
		assert.ErrorIs(t, err, drinksDomain.ErrDrinkNotFound)
	})

	t.Run("Error_CorruptRecipe", func(t *testing.T) {
		db, mock := newMockDB(t)
		drink := newTestDrink()

		mock.ExpectQuery(`SELECT id, title, recipe`).
			WillReturnRows(sqlmock.NewRows(drinkColumns).
				AddRow(drink.ID.String(), drink.Title, `{not json`, drink.CreatedAt, drink.UpdatedAt))

		_, err := NewPostgreSQLDrinkRepository(db).Get(ctx, drink.ID)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, drinksDomain.ErrDrinkNotFound)
	})
}

func TestPostgreSQLDrinkRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		first := newTestDrink()
		second := newTestDrink()
		second.Title = "water"
		second.Recipe = []drinksDomain.Ingredient{{Name: "water", Color: "blue", Parts: 1}}

		mock.ExpectQuery(`SELECT id, title, recipe, created_at, updated_at\s+FROM drinks\s+ORDER BY title ASC`).
			WillReturnRows(sqlmock.NewRows(drinkColumns).
				AddRow(first.ID.String(), first.Title, testRecipeJSON, first.CreatedAt, first.UpdatedAt).
				AddRow(second.ID.String(), second.Title, `[{"name":"water","color":"blue","parts":1}]`,
					second.CreatedAt, second.UpdatedAt))

		drinks, err := NewPostgreSQLDrinkRepository(db).List(ctx)

		require.NoError(t, err)
		assert.Equal(t, []*drinksDomain.Drink{first, second}, drinks)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT id, title, recipe`).WillReturnRows(sqlmock.NewRows(drinkColumns))

		drinks, err := NewPostgreSQLDrinkRepository(db).List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, drinks)
		assert.Empty(t, drinks)
	})

	t.Run("Error_Query", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT id, title, recipe`).WillReturnError(sql.ErrConnDone)

		_, err := NewPostgreSQLDrinkRepository(db).List(ctx)

		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestPostgreSQLDrinkRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		drink := newTestDrink()

		mock.ExpectExec(`UPDATE drinks\s+SET title = \$1, recipe = \$2, updated_at = \$3\s+WHERE id = \$4`).
			WithArgs(drink.Title, testRecipeJSON, drink.UpdatedAt, drink.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLDrinkRepository(db).Update(ctx, drink))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectExec(`UPDATE drinks`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgreSQLDrinkRepository(db).Update(ctx, newTestDrink())

		assert.ErrorIs(t, err, drinksDomain.ErrDrinkNotFound)
	})

	t.Run("Error_DuplicateTitle", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectExec(`UPDATE drinks`).WillReturnError(&pq.Error{Code: "23505"})

		err := NewPostgreSQLDrinkRepository(db).Update(ctx, newTestDrink())

		assert.ErrorIs(t, err, drinksDomain.ErrDrinkTitleConflict)
	})
}

func TestPostgreSQLDrinkRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		drinkID := uuid.Must(uuid.NewV7())

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM drinks WHERE id = $1`)).
			WithArgs(drinkID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLDrinkRepository(db).Delete(ctx, drinkID))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectExec(`DELETE FROM drinks WHERE id`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgreSQLDrinkRepository(db).Delete(ctx, uuid.Must(uuid.NewV7()))

		assert.ErrorIs(t, err, drinksDomain.ErrDrinkNotFound)
	})
}

func TestPostgreSQLDrinkRepository_DeleteAll(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`^DELETE FROM drinks$`).WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := NewPostgreSQLDrinkRepository(db).DeleteAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
