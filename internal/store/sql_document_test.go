package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fitgrit/internal/logger"
)

func newTestSQLStore(t *testing.T) (*sqlDocumentStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := &DB{
		DB:      db,
		dialect: "sqlite3",
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger.Nop(),
	}

	return &sqlDocumentStore{db: wrapped, logger: logger.Nop()}, mock
}

func TestSQLDocumentStore_ReadMissingRow(t *testing.T) {
	store, mock := newTestSQLStore(t)

	mock.ExpectQuery("SELECT version, data FROM documents").
		WithArgs(CollectionUsers, "user_1").
		WillReturnRows(sqlmock.NewRows([]string{"version", "data"}))

	doc, err := store.Read(context.Background(), CollectionUsers, "user_1")
	require.NoError(t, err)
	assert.False(t, doc.Exists())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_ReadExistingRow(t *testing.T) {
	store, mock := newTestSQLStore(t)

	mock.ExpectQuery("SELECT version, data FROM documents").
		WithArgs(CollectionUsers, "user_1").
		WillReturnRows(sqlmock.NewRows([]string{"version", "data"}).AddRow(int64(3), []byte(`{"id":"user_1"}`)))

	doc, err := store.Read(context.Background(), CollectionUsers, "user_1")
	require.NoError(t, err)
	assert.True(t, doc.Exists())
	assert.Equal(t, int64(3), doc.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_WriteInsertsNewDocument(t *testing.T) {
	store, mock := newTestSQLStore(t)

	mock.ExpectExec("INSERT INTO documents").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.Write(context.Background(), CollectionUsers, "user_1", Document{
		Key:  "user_1",
		Data: []byte(`{"id":"user_1"}`),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_WriteUpdatesMatchingVersion(t *testing.T) {
	store, mock := newTestSQLStore(t)

	mock.ExpectExec("UPDATE documents SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Write(context.Background(), CollectionUsers, "user_1", Document{
		Key:     "user_1",
		Version: 2,
		Data:    []byte(`{"id":"user_1"}`),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_WriteStaleVersionConflicts(t *testing.T) {
	store, mock := newTestSQLStore(t)

	// another writer already bumped the version: zero rows match
	mock.ExpectExec("UPDATE documents SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Write(context.Background(), CollectionUsers, "user_1", Document{
		Key:     "user_1",
		Version: 2,
		Data:    []byte(`{}`),
	})
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_DeleteMissingRowIsNoop(t *testing.T) {
	store, mock := newTestSQLStore(t)

	mock.ExpectExec("DELETE FROM documents").
		WithArgs(CollectionSessions, "sess_1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), CollectionSessions, "sess_1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDocumentStore_List(t *testing.T) {
	store, mock := newTestSQLStore(t)

	mock.ExpectQuery("SELECT key, version, data FROM documents").
		WithArgs(CollectionSessions).
		WillReturnRows(sqlmock.NewRows([]string{"key", "version", "data"}).
			AddRow("sess_1", int64(1), []byte(`{}`)).
			AddRow("sess_2", int64(4), []byte(`{}`)))

	docs, err := store.List(context.Background(), CollectionSessions)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "sess_2", docs[1].Key)
	assert.Equal(t, int64(4), docs[1].Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
