package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/models"
)

// sessionRepository is the document-store-backed implementation of
// [SessionRepository]. One document per session, keyed by the session id.
type sessionRepository struct {
	documents DocumentStore
	logger    *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided document store and logger.
func NewSessionRepository(documents DocumentStore, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		documents: documents,
		logger:    logger,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error serializing session document: %w", err)
	}

	doc := Document{Key: session.ID, Data: data}
	if err := r.documents.Write(ctx, CollectionSessions, session.ID, doc); err != nil {
		log.Err(err).Str("session_id", session.ID).Msg("session creation write failed")
		return fmt.Errorf("error writing session document: %w", err)
	}

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	doc, err := r.documents.Read(ctx, CollectionSessions, sessionID)
	if err != nil {
		return models.Session{}, fmt.Errorf("error reading session document: %w", err)
	}
	if !doc.Exists() {
		return models.Session{}, ErrNoSessionWasFound
	}

	var session models.Session
	if err := json.Unmarshal(doc.Data, &session); err != nil {
		return models.Session{}, fmt.Errorf("%w: session %s: %w", ErrMalformedDocument, sessionID, err)
	}

	return session, nil
}

// DeleteSession removes the session record. Deleting an absent session is a
// no-op success, which makes logout idempotent.
func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.documents.Delete(ctx, CollectionSessions, sessionID); err != nil {
		return fmt.Errorf("error deleting session document: %w", err)
	}

	return nil
}

// DeleteExpired sweeps the whole sessions collection — an O(sessions) scan —
// and deletes every record whose expiry is before now. Run periodically by
// the janitor worker rather than on every request.
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContext(ctx)

	documents, err := r.documents.List(ctx, CollectionSessions)
	if err != nil {
		return 0, fmt.Errorf("error listing session documents: %w", err)
	}

	deleted := 0
	for _, doc := range documents {
		var session models.Session
		if err := json.Unmarshal(doc.Data, &session); err != nil {
			log.Error().Err(err).Str("key", doc.Key).Msg("skipping undecodable session document")
			continue
		}

		if session.IsExpired(now) {
			if err := r.documents.Delete(ctx, CollectionSessions, doc.Key); err != nil {
				log.Err(err).Str("session_id", doc.Key).Msg("failed to delete expired session")
				continue
			}
			deleted++
		}
	}

	return deleted, nil
}
