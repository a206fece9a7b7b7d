package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/fitgrit/internal/logger"
)

// sqlDocumentStore is the SQL implementation of [DocumentStore] shared by
// the sqlite and postgres backends. Documents live in a single table keyed
// by (collection, key) with a version column; every write is an optimistic
// compare-and-swap on that version, which closes the lost-update window the
// flat-file backend leaves open.
type sqlDocumentStore struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLDocumentStore constructs a [DocumentStore] over the given connection
// and runs the embedded migrations.
func NewSQLDocumentStore(db *DB, log *logger.Logger) (DocumentStore, error) {
	if err := db.Migrate(); err != nil {
		log.Err(err).Msg("error migrating documents table")
		return nil, fmt.Errorf("error migrating documents table: %w", err)
	}

	log.Debug().Str("dialect", db.dialect).Msg("sql document store created")

	return &sqlDocumentStore{db: db, logger: log}, nil
}

// Read loads a whole document. A missing row yields a zero Document and a
// nil error.
func (s *sqlDocumentStore) Read(ctx context.Context, collection, key string) (Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.db.builder.
		Select("version", "data").
		From("documents").
		Where("collection = ? AND key = ?", collection, key).
		ToSql()
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc := Document{Key: key}
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&doc.Version, &doc.Data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{Key: key}, nil
		}
		log.Err(err).Str("collection", collection).Str("key", key).Msg("failed to read document row")
		return Document{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return doc, nil
}

// Write persists the document with a compare-and-swap on its version.
//
// A zero doc.Version inserts a fresh row at version 1; a duplicate-key
// failure means another writer created the document first and is surfaced as
// [ErrVersionConflict]. A non-zero version updates the existing row only
// when the stored version still matches, bumping it by one; zero rows
// affected likewise means [ErrVersionConflict].
func (s *sqlDocumentStore) Write(ctx context.Context, collection, key string, doc Document) error {
	log := logger.FromContext(ctx)

	if doc.Version == 0 {
		query, args, err := s.db.builder.
			Insert("documents").
			Columns("collection", "key", "version", "data", "updated_at").
			Values(collection, key, 1, doc.Data, time.Now()).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return ErrVersionConflict
			}
			log.Err(err).Str("collection", collection).Str("key", key).Msg("failed to insert document")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		return nil
	}

	query, args, err := s.db.builder.
		Update("documents").
		Set("version", doc.Version+1).
		Set("data", doc.Data).
		Set("updated_at", time.Now()).
		Where("collection = ? AND key = ? AND version = ?", collection, key, doc.Version).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("collection", collection).Str("key", key).Msg("failed to update document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}

	return nil
}

// Delete removes the document row. Deleting an absent document is a no-op.
func (s *sqlDocumentStore) Delete(ctx context.Context, collection, key string) error {
	query, args, err := s.db.builder.
		Delete("documents").
		Where("collection = ? AND key = ?", collection, key).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("collection", collection).Str("key", key).Msg("failed to delete document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// List returns every document of a collection.
func (s *sqlDocumentStore) List(ctx context.Context, collection string) ([]Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.db.builder.
		Select("key", "version", "data").
		From("documents").
		Where("collection = ?", collection).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("failed to list documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var documents []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.Key, &doc.Version, &doc.Data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return documents, nil
}

func (s *sqlDocumentStore) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a duplicate-key failure from
// either supported driver.
func isUniqueViolation(err error) bool {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}

	return false
}
