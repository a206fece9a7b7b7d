package store

import (
	"context"
	"time"

	"github.com/MKhiriev/fitgrit/models"
)

// Collection names understood by every [DocumentStore] backend.
const (
	CollectionUsers    = "users"
	CollectionSessions = "sessions"
	CollectionWeight   = "weight"
	CollectionExercise = "exercise"
	CollectionFood     = "food"
	CollectionRecipes  = "recipes"
)

// PublicRecipesKey is the key of the shared recipe document visible to every
// user. Stored in [CollectionRecipes] next to the per-user documents.
const PublicRecipesKey = "public"

// Document is a whole persisted JSON document plus the bookkeeping the store
// needs around it. Data holds the raw serialized document; a nil Data means
// the document does not exist (a missing document is not an error).
type Document struct {
	Key string

	// Version is the optimistic-concurrency token. A caller writes back the
	// version it read (0 for a new document); the SQL backends reject the
	// write with [ErrVersionConflict] when the stored version has moved on.
	// The file backend cannot persist a version without changing the
	// on-disk format, so it treats Version as an existence marker only and
	// accepts the documented lost-update risk instead.
	Version int64

	Data []byte
}

// Exists reports whether the document was present in the store.
func (d Document) Exists() bool {
	return d.Data != nil
}

// DocumentStore reads and writes whole JSON documents addressed by
// (collection, key).
//
// Read returns a zero-value Document (nil Data, Version 0) for a missing
// document and reserves errors for real failures: unreadable storage or a
// document that no longer parses as JSON. Callers must therefore distinguish
// "empty/new" (nil error, !doc.Exists()) from "store unavailable" (non-nil
// error) instead of collapsing both into one falsy value.
type DocumentStore interface {
	Read(ctx context.Context, collection, key string) (Document, error)
	Write(ctx context.Context, collection, key string, doc Document) error
	Delete(ctx context.Context, collection, key string) error
	List(ctx context.Context, collection string) ([]Document, error)
	Close() error
}

// UserRepository persists user account documents.
type UserRepository interface {
	// CreateUser rejects duplicate emails (case-insensitive, trimmed) with
	// [ErrEmailAlreadyExists] via a full scan of the users collection.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail scans the users collection for a matching email.
	// Returns [ErrNoUserWasFound] when no user matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// GetUser loads a user by id. Returns [ErrNoUserWasFound] when absent.
	GetUser(ctx context.Context, userID string) (models.User, error)

	// SaveUser rewrites the whole user document, stamping UpdatedAt.
	SaveUser(ctx context.Context, user models.User) error
}

// SessionRepository persists session records, one document per session.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error

	// GetSession returns [ErrNoSessionWasFound] when the record is absent.
	GetSession(ctx context.Context, sessionID string) (models.Session, error)

	// DeleteSession removes the record. Deleting an absent session is a
	// no-op success.
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteExpired sweeps the whole sessions collection and deletes every
	// record whose expiry is before now. Returns the number deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// LogRepository persists per-user, per-category log documents (weight,
// exercise, food). Entries are appended on create and the remainder is
// rewritten, re-indexed, on delete.
type LogRepository interface {
	// ListEntries returns the user's entries for one category sorted by
	// date, newest first. A zero limit returns all entries; a non-empty
	// date keeps only entries of that calendar day.
	ListEntries(ctx context.Context, userID, category string, date string, limit int) ([]models.LogEntry, error)

	// AddEntry appends the entry to the user's category document and
	// returns it with its assigned ID and Timestamp.
	AddEntry(ctx context.Context, userID, category string, entry models.LogEntry) (models.LogEntry, error)

	// DeleteEntry removes exactly the entry with the given id. Returns
	// [ErrEntryNotFound] (and performs no write) when the id is absent.
	DeleteEntry(ctx context.Context, userID, category, entryID string) error
}

// RecipeRepository persists per-user recipe documents plus the shared public
// recipe document.
type RecipeRepository interface {
	// ListRecipes returns the user's recipes, followed by every public
	// recipe when includePublic is set.
	ListRecipes(ctx context.Context, userID string, includePublic bool) ([]models.Recipe, error)

	// AddRecipe stores the recipe in the owner's document and, when it is
	// public, appends it to the shared public document as well.
	AddRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)

	// DeleteRecipe removes the recipe from the owner's document (and from
	// the public document when present there).
	DeleteRecipe(ctx context.Context, userID, recipeID string) error
}
