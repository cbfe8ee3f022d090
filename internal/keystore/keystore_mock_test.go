package keystore

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reflora/server/internal/model"
)

// Error paths use sqlmock because a healthy on-disk database cannot be
// made to fail on demand.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Store{db: db}, mock
}

func TestStore_Put_WriteRejected(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO user_keys").
		WithArgs(int64(7), "pem").
		WillReturnError(errors.New("disk I/O error"))

	err := store.Put(context.Background(), 7, "pem")

	var ksErr *model.KeyStoreError
	require.ErrorAs(t, err, &ksErr)
	assert.Equal(t, "put", ksErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_QueryFailed(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT private_key FROM user_keys").
		WithArgs(int64(7)).
		WillReturnError(errors.New("database is locked"))

	_, err := store.Get(context.Background(), 7)

	var ksErr *model.KeyStoreError
	require.ErrorAs(t, err, &ksErr)
	assert.Equal(t, "get", ksErr.Op)
	assert.NotErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete_Failed(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM user_keys").
		WithArgs(int64(7)).
		WillReturnError(errors.New("database is locked"))

	err := store.Delete(context.Background(), 7)

	var ksErr *model.KeyStoreError
	require.ErrorAs(t, err, &ksErr)
	assert.Equal(t, "delete", ksErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}
