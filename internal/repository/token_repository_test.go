package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenLookup = `SELECT user_id FROM refresh_tokens WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()`

func TestValidateRefresh(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(tokenLookup)).
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(9))

	userID, err := repo.ValidateRefresh(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), userID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Revoked and expired hashes fall out of the WHERE clause, so every invalid
// token looks the same to the caller: no rows.
func TestValidateRefreshInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(tokenLookup)).
		WithArgs("revoked-or-unknown").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err = repo.ValidateRefresh(context.Background(), "revoked-or-unknown")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeByHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP() WHERE token_hash = ? AND revoked_at IS NULL`)).
		WithArgs("abc123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.RevokeByHash(context.Background(), "abc123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRefresh(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	exp := time.Now().Add(48 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`)).
		WithArgs(uint64(9), "abc123", exp).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.StoreRefresh(context.Background(), 9, "abc123", exp))
	assert.NoError(t, mock.ExpectationsWereMet())
}
