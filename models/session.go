package models

import "time"

// Session is a server-side session record binding a session identifier to a
// user id and an expiry time. One record is persisted per session; the record
// is deleted on logout or when its expiry is noticed (lazily on validation or
// by the janitor worker).
type Session struct {
	// ID is the session identifier carried by the session cookie. It doubles
	// as the storage key of the session document.
	ID string `json:"session_id"`

	// UserID is the id of the account that owns the session.
	UserID string `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is creation time plus the short session lifetime, or the
	// extended remember-me lifetime.
	ExpiresAt time.Time `json:"expires_at"`

	// IPAddress and UserAgent record the client that opened the session.
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`

	// IsActive allows a record to be disabled without deletion. Inactive
	// sessions fail validation.
	IsActive bool `json:"is_active"`

	// CSRFToken is the per-session token checked on state-changing form
	// submissions from authenticated pages.
	CSRFToken string `json:"csrf_token"`
}

// IsExpired reports whether the session expiry has passed at the given time.
func (s Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
