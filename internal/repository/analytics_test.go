package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowth(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		previous int64
		want     float64
	}{
		{"zero previous reads as 100", 5, 0, 100},
		{"negative previous reads as 100", 5, -1, 100},
		{"doubling", 20, 10, 100},
		{"halving", 5, 10, -50},
		{"flat", 10, 10, 0},
		{"rounds to one decimal", 1, 3, -66.7},
		{"zero current, zero previous", 0, 0, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Growth(tc.current, tc.previous))
		})
	}
}

func TestMovieStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAnalyticsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT views FROM movies WHERE id = ?`)).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"views"}).AddRow(1200))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM feedback WHERE movie_id = ?`)).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM feedback WHERE movie_id = ? AND status = 'approved'`)).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(8, 4.25))

	s, err := repo.MovieStats(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(1200), s.Views)
	assert.Equal(t, int64(12), s.TotalFeedback)
	assert.Equal(t, int64(8), s.ApprovedFeedback)
	assert.Equal(t, 4.3, s.AverageRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieStatsMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAnalyticsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT views FROM movies WHERE id = ?`)).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"views"}))

	_, err = repo.MovieStats(context.Background(), 404)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
