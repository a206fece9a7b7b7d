// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, identifier generation and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// Identity describes the authenticated caller of a request: the owning user
// and the session record that authenticated it. It replaces any ambient
// session state; handlers receive it explicitly through the request context.
type Identity struct {
	UserID    string
	SessionID string
	CSRFToken string
}

// IdentityCtxKey is the key used to store the authenticated identity in the
// context. Used together with GetIdentityFromContext for type-safe retrieval.
var IdentityCtxKey = contextKey("identity")

// GetIdentityFromContext retrieves the authenticated identity from the
// context.
//
// Returns the Identity and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(Identity)
	return identity, ok
}
