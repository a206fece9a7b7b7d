package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/models"
)

// userRepository is the document-store-backed implementation of
// [UserRepository]. One document per user, keyed by the user id; email
// uniqueness is enforced by a full scan of the users collection, as there is
// no secondary index — O(users) per lookup.
type userRepository struct {
	documents DocumentStore
	logger    *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// document store and logger.
func NewUserRepository(documents DocumentStore, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		documents: documents,
		logger:    logger,
	}
}

// NormalizeEmail lowers and trims an email for storage and comparison.
// Email uniqueness and lookup are defined over this normal form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser persists a new user document after verifying no account exists
// with the same normalized email.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.Email = NormalizeEmail(user.Email)

	_, err := r.FindUserByEmail(ctx, user.Email)
	if err == nil {
		return models.User{}, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("email uniqueness check failed: %w", err)
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	data, err := json.Marshal(user)
	if err != nil {
		return models.User{}, fmt.Errorf("error serializing user document: %w", err)
	}

	if err := r.documents.Write(ctx, CollectionUsers, user.ID, Document{Key: user.ID, Data: data}); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("user creation write failed")
		return models.User{}, fmt.Errorf("error writing user document: %w", err)
	}

	user.Version = 1
	return user, nil
}

// FindUserByEmail scans every user document for a matching normalized email.
// Documents that no longer unmarshal are skipped with an error log so one
// damaged account does not block every login.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = NormalizeEmail(email)

	documents, err := r.documents.List(ctx, CollectionUsers)
	if err != nil {
		return models.User{}, fmt.Errorf("error listing user documents: %w", err)
	}

	for _, doc := range documents {
		var user models.User
		if err := json.Unmarshal(doc.Data, &user); err != nil {
			log.Error().Err(err).Str("key", doc.Key).Msg("skipping undecodable user document")
			continue
		}
		if user.Email == email {
			user.Version = doc.Version
			return user, nil
		}
	}

	return models.User{}, ErrNoUserWasFound
}

// GetUser loads one user document by id.
func (r *userRepository) GetUser(ctx context.Context, userID string) (models.User, error) {
	doc, err := r.documents.Read(ctx, CollectionUsers, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error reading user document: %w", err)
	}
	if !doc.Exists() {
		return models.User{}, ErrNoUserWasFound
	}

	var user models.User
	if err := json.Unmarshal(doc.Data, &user); err != nil {
		return models.User{}, fmt.Errorf("%w: user %s: %w", ErrMalformedDocument, userID, err)
	}

	user.Version = doc.Version
	return user, nil
}

// SaveUser rewrites the whole user document, stamping UpdatedAt and carrying
// the version the caller loaded so concurrent modifications surface as
// [ErrVersionConflict] instead of silently overwriting each other.
func (r *userRepository) SaveUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	user.UpdatedAt = time.Now()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("error serializing user document: %w", err)
	}

	doc := Document{Key: user.ID, Version: user.Version, Data: data}
	if err := r.documents.Write(ctx, CollectionUsers, user.ID, doc); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("user save failed")
		return fmt.Errorf("error writing user document: %w", err)
	}

	return nil
}
