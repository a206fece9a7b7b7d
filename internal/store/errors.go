package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same email (case-insensitive,
	// trimmed) already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a user lookup by id or email
	// produces no match.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoSessionWasFound is returned when a session record is absent,
	// either because it never existed or because it was already deleted by
	// logout or the janitor sweep.
	ErrNoSessionWasFound = errors.New("no session was found")

	// ErrEntryNotFound is returned when a delete targets a log entry or
	// recipe id that does not exist in the owning document.
	ErrEntryNotFound = errors.New("entry was not found")

	// ErrVersionConflict is returned when an optimistic-locking check
	// fails: the version supplied by the caller does not match the current
	// version stored for the document, meaning another request modified the
	// document since it was read.
	ErrVersionConflict = errors.New("document version conflict occurred")
)

// Low-level storage errors. These are returned (or wrapped) by the document
// store backends when an operation fails before any domain logic applies.
var (
	// ErrMalformedDocument is returned when a stored document no longer
	// parses as JSON. Distinct from a missing document, which is not an
	// error at all.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrStoreUnavailable is returned when the backing storage cannot be
	// read or written (I/O failure, closed database, permission error).
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrUnknownCollection is returned when a caller addresses a collection
	// the backend has no mapping for.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan document row")
)
