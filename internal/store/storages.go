package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fitgrit/internal/config"
	"github.com/MKhiriev/fitgrit/internal/logger"
)

// Storages bundles every repository of the persistence layer together with
// the document store that backs them. The service layer depends on the
// repository interfaces only; the document store is exposed for the
// background workers (backup pruning) and for shutdown.
type Storages struct {
	Documents DocumentStore

	UserRepository    UserRepository
	SessionRepository SessionRepository
	LogRepository     LogRepository
	RecipeRepository  RecipeRepository
}

// NewStorages selects the document-store backend named in cfg.Backend,
// opens it, and wires all repositories on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	documents, err := newDocumentStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		Documents:         documents,
		UserRepository:    NewUserRepository(documents, log),
		SessionRepository: NewSessionRepository(documents, log),
		LogRepository:     NewLogRepository(documents, log),
		RecipeRepository:  NewRecipeRepository(documents, log),
	}, nil
}

func newDocumentStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (DocumentStore, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileDocumentStore(cfg.Files, log)
	case config.BackendSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting to sqlite: %w", err)
		}
		return NewSQLDocumentStore(db, log)
	case config.BackendPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting to postgres: %w", err)
		}
		return NewSQLDocumentStore(db, log)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", ErrStoreUnavailable, cfg.Backend)
	}
}

// Close releases the underlying document store.
func (s *Storages) Close() error {
	return s.Documents.Close()
}
