package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviesmod/movie-catalog/internal/model"
)

func TestCategoryDeleteBlockedWhileInUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCategoryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM movies WHERE category_id = ?`)).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	err = repo.Delete(context.Background(), 3)

	var inUse *CategoryInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, 4, inUse.Count)
	assert.Equal(t, "Cannot delete category. It has 4 movies associated with it.", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDeleteUnreferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCategoryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM movies WHERE category_id = ?`)).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = ?`)).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCategoryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM movies WHERE category_id = ?`)).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = ?`)).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 9), ErrCategoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryFindByKeyNoMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCategoryRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM categories`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "sort_order", "created_at", "updated_at"}))

	// The store contract: no match is (nil, nil), not an error.
	c, err := repo.FindByKey(context.Background(), "Nope")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCategoryRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO categories`)).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'bollywood' for key 'uq_categories_slug'"))

	err = repo.Create(context.Background(), &model.Category{Name: "Bollywood", Slug: "bollywood"})
	assert.ErrorIs(t, err, ErrCategoryExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
