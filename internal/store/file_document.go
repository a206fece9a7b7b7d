package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/fitgrit/internal/config"
	"github.com/MKhiriev/fitgrit/internal/logger"
)

// backupTimeFormat is the timestamp appended to backup siblings:
// weight/user_1_weight.json.backup.2026-08-30-14-05-09
const backupTimeFormat = "2006-01-02-15-04-05"

// collectionFileSuffix maps a collection to the filename suffix appended to
// the document key. The shared public recipe document falls out of the same
// rule: key "public" in the recipes collection yields public_recipes.json.
var collectionFileSuffix = map[string]string{
	CollectionUsers:    ".json",
	CollectionSessions: ".json",
	CollectionWeight:   "_weight.json",
	CollectionExercise: "_exercise.json",
	CollectionFood:     "_food.json",
	CollectionRecipes:  "_recipes.json",
}

// fileDocumentStore is the flat-file implementation of [DocumentStore]: one
// pretty-printed JSON file per document, grouped into one subdirectory per
// collection. Writes optionally copy the previous file to a timestamped
// backup sibling first and prune siblings older than the retention window.
//
// An in-process mutex per collection serializes writers. The lock set is
// fixed at construction, so churny keys such as session ids never grow it.
// There is no cross-document transaction and no version check, so two
// requests doing read-modify-write on the same document can still lose an
// update. The SQL backends exist to close that gap.
type fileDocumentStore struct {
	dataDir   string
	backup    bool
	retention time.Duration
	logger    *logger.Logger

	locks map[string]*sync.Mutex
}

// NewFileDocumentStore constructs a [DocumentStore] over the configured data
// directory, creating one subdirectory per collection.
func NewFileDocumentStore(cfg config.Files, log *logger.Logger) (DocumentStore, error) {
	locks := make(map[string]*sync.Mutex, len(collectionFileSuffix))
	for collection := range collectionFileSuffix {
		dir := filepath.Join(cfg.DataDir, collection)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating data directory %s: %w", dir, err)
		}
		locks[collection] = &sync.Mutex{}
	}

	log.Debug().Str("data_dir", cfg.DataDir).Msg("file document store created")

	return &fileDocumentStore{
		dataDir:   cfg.DataDir,
		backup:    cfg.BackupEnabled,
		retention: cfg.BackupRetention,
		logger:    log,
		locks:     locks,
	}, nil
}

func (f *fileDocumentStore) path(collection, key string) (string, error) {
	suffix, ok := collectionFileSuffix[collection]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	return filepath.Join(f.dataDir, collection, key+suffix), nil
}

func (f *fileDocumentStore) lock(collection string) *sync.Mutex {
	return f.locks[collection]
}

// Read loads a whole document. A missing file yields a zero Document and a
// nil error; an unreadable file or invalid JSON yields an error and is
// logged at error level.
func (f *fileDocumentStore) Read(ctx context.Context, collection, key string) (Document, error) {
	log := logger.FromContext(ctx)

	path, err := f.path(collection, key)
	if err != nil {
		return Document{}, err
	}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Document{Key: key}, nil
	}
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to read document file")
		return Document{}, fmt.Errorf("%w: reading %s: %w", ErrStoreUnavailable, path, err)
	}

	if !json.Valid(content) {
		log.Error().Str("path", path).Msg("document file holds malformed JSON")
		return Document{}, fmt.Errorf("%w: %s", ErrMalformedDocument, path)
	}

	return Document{Key: key, Version: 1, Data: content}, nil
}

// Write serializes the document to its file, replacing it atomically via a
// temp file and rename while holding the collection write lock. When backups
// are enabled and the file already exists, the previous content is copied to
// a timestamped sibling first and aged siblings are pruned.
func (f *fileDocumentStore) Write(ctx context.Context, collection, key string, doc Document) error {
	log := logger.FromContext(ctx)

	path, err := f.path(collection, key)
	if err != nil {
		return err
	}

	pretty := new(bytes.Buffer)
	if err := json.Indent(pretty, doc.Data, "", "    "); err != nil {
		log.Error().Err(err).Str("path", path).Msg("refusing to write malformed JSON")
		return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	mu := f.lock(collection)
	mu.Lock()
	defer mu.Unlock()

	if f.backup {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := f.backupFile(path); err != nil {
				log.Error().Err(err).Str("path", path).Msg("failed to back up document file")
				return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
			}
			f.pruneDir(ctx, filepath.Dir(path))
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, pretty.Bytes(), 0o644); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to write document file")
		return fmt.Errorf("%w: writing %s: %w", ErrStoreUnavailable, path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to replace document file")
		return fmt.Errorf("%w: replacing %s: %w", ErrStoreUnavailable, path, err)
	}

	return nil
}

// Delete removes the document file. Deleting an absent document is a no-op.
func (f *fileDocumentStore) Delete(ctx context.Context, collection, key string) error {
	path, err := f.path(collection, key)
	if err != nil {
		return err
	}

	mu := f.lock(collection)
	mu.Lock()
	defer mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.FromContext(ctx).Error().Err(err).Str("path", path).Msg("failed to delete document file")
		return fmt.Errorf("%w: deleting %s: %w", ErrStoreUnavailable, path, err)
	}

	return nil
}

// List reads every primary document of a collection — an O(documents) full
// directory scan. Malformed files are skipped with an error log so that one
// corrupted document does not take down scans such as the email-uniqueness
// check or the session sweep.
func (f *fileDocumentStore) List(ctx context.Context, collection string) ([]Document, error) {
	log := logger.FromContext(ctx)

	suffix, ok := collectionFileSuffix[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	dir := filepath.Join(f.dataDir, collection)
	matches, err := filepath.Glob(filepath.Join(dir, "*"+suffix))
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", ErrStoreUnavailable, dir, err)
	}

	documents := make([]Document, 0, len(matches))
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("skipping unreadable document file")
			continue
		}
		if !json.Valid(content) {
			log.Error().Str("path", path).Msg("skipping malformed document file")
			continue
		}

		key := strings.TrimSuffix(filepath.Base(path), suffix)
		documents = append(documents, Document{Key: key, Version: 1, Data: content})
	}

	return documents, nil
}

func (f *fileDocumentStore) Close() error {
	return nil
}

// backupFile copies the current file to a timestamped sibling.
func (f *fileDocumentStore) backupFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading for backup: %w", err)
	}

	backupPath := path + ".backup." + time.Now().Format(backupTimeFormat)
	if err := os.WriteFile(backupPath, content, 0o644); err != nil {
		return fmt.Errorf("writing backup %s: %w", backupPath, err)
	}

	return nil
}

// PruneBackups removes backup siblings older than the retention window
// across every collection directory. Called periodically by the backup
// pruner worker; the write path additionally prunes the directory it just
// backed up into.
func (f *fileDocumentStore) PruneBackups(ctx context.Context) {
	for collection := range collectionFileSuffix {
		f.pruneDir(ctx, filepath.Join(f.dataDir, collection))
	}
}

func (f *fileDocumentStore) pruneDir(ctx context.Context, dir string) {
	log := logger.FromContext(ctx)

	matches, err := filepath.Glob(filepath.Join(dir, "*.backup.*"))
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("failed to list backup files")
		return
	}

	cutoff := time.Now().Add(-f.retention)
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				log.Error().Err(err).Str("path", path).Msg("failed to prune backup file")
			}
		}
	}
}
