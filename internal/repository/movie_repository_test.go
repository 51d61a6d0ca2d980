package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieSlugTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMovieRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM movies WHERE slug = ? AND id <> ?`)).
		WithArgs("the-dark-knight", uint64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.SlugTaken(context.Background(), "the-dark-knight", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	// The movie's own row does not count against it on update.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM movies WHERE slug = ? AND id <> ?`)).
		WithArgs("the-dark-knight", uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err = repo.SlugTaken(context.Background(), "the-dark-knight", 7)
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMovieRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movie_genres WHERE movie_id = ?`)).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movies WHERE id = ?`)).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 42), ErrMovieNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMovieRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movie_genres WHERE movie_id = ?`)).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movies WHERE id = ?`)).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieIncrementViews(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMovieRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE movies SET views = views + 1 WHERE id = ?`)).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieFindByIDMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMovieRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM movies m LEFT JOIN categories c`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	m, err := repo.FindByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecodeStringsTolerant(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, decodeStrings([]byte(`["a","b"]`)))
	assert.Equal(t, []string{}, decodeStrings(nil))
	assert.Equal(t, []string{}, decodeStrings([]byte(`not json`)))
}
