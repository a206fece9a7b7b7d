package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/utils"
	"github.com/MKhiriev/fitgrit/models"
)

// logRepository is the document-store-backed implementation of
// [LogRepository]. Each (user, category) pair maps to one document holding
// an entries array; creates append, deletes filter and rewrite the whole
// array.
type logRepository struct {
	documents DocumentStore
	logger    *logger.Logger
}

// NewLogRepository constructs a [LogRepository] backed by the provided
// document store and logger.
func NewLogRepository(documents DocumentStore, logger *logger.Logger) LogRepository {
	logger.Debug().Msg("creating log repository")
	return &logRepository{
		documents: documents,
		logger:    logger,
	}
}

// load reads and decodes a (user, category) document. A missing document
// decodes to an empty entries array.
func (r *logRepository) load(ctx context.Context, userID, category string) (models.LogDocument, Document, error) {
	doc, err := r.documents.Read(ctx, category, userID)
	if err != nil {
		return models.LogDocument{}, Document{}, fmt.Errorf("error reading %s document: %w", category, err)
	}

	if !doc.Exists() {
		return models.LogDocument{Entries: []models.LogEntry{}}, doc, nil
	}

	var logDoc models.LogDocument
	if err := json.Unmarshal(doc.Data, &logDoc); err != nil {
		return models.LogDocument{}, Document{}, fmt.Errorf("%w: %s/%s: %w", ErrMalformedDocument, category, userID, err)
	}
	if logDoc.Entries == nil {
		logDoc.Entries = []models.LogEntry{}
	}

	return logDoc, doc, nil
}

func (r *logRepository) save(ctx context.Context, userID, category string, logDoc models.LogDocument, doc Document) error {
	data, err := json.Marshal(logDoc)
	if err != nil {
		return fmt.Errorf("error serializing %s document: %w", category, err)
	}

	doc.Data = data
	if err := r.documents.Write(ctx, category, userID, doc); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("user_id", userID).
			Str("category", category).
			Msg("log document write failed")
		return fmt.Errorf("error writing %s document: %w", category, err)
	}

	return nil
}

// ListEntries returns entries sorted by date, newest first, optionally
// filtered to one calendar day and capped at limit.
func (r *logRepository) ListEntries(ctx context.Context, userID, category string, date string, limit int) ([]models.LogEntry, error) {
	logDoc, _, err := r.load(ctx, userID, category)
	if err != nil {
		return nil, err
	}

	entries := logDoc.Entries
	if date != "" {
		filtered := entries[:0:0]
		for _, entry := range entries {
			if entry.Date == date {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// AddEntry appends the entry with a fresh id and creation timestamp. An
// empty Date defaults to today.
func (r *logRepository) AddEntry(ctx context.Context, userID, category string, entry models.LogEntry) (models.LogEntry, error) {
	logDoc, doc, err := r.load(ctx, userID, category)
	if err != nil {
		return models.LogEntry{}, err
	}

	entry.ID = utils.RandomHex(8)
	entry.Timestamp = time.Now()
	if entry.Date == "" {
		entry.Date = entry.Timestamp.Format("2006-01-02")
	}

	logDoc.Entries = append(logDoc.Entries, entry)

	if err := r.save(ctx, userID, category, logDoc, doc); err != nil {
		return models.LogEntry{}, err
	}

	return entry, nil
}

// DeleteEntry removes exactly the entry with the given id, rewriting the
// re-indexed remainder. When the id is absent nothing is written and
// [ErrEntryNotFound] is returned.
func (r *logRepository) DeleteEntry(ctx context.Context, userID, category, entryID string) error {
	logDoc, doc, err := r.load(ctx, userID, category)
	if err != nil {
		return err
	}

	remaining := make([]models.LogEntry, 0, len(logDoc.Entries))
	for _, entry := range logDoc.Entries {
		if entry.ID != entryID {
			remaining = append(remaining, entry)
		}
	}

	if len(remaining) == len(logDoc.Entries) {
		return ErrEntryNotFound
	}

	logDoc.Entries = remaining
	return r.save(ctx, userID, category, logDoc, doc)
}
