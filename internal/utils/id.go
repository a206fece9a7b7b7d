package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered identifiers for user and session
// documents. UUIDv7 keeps directory listings roughly chronological, which
// helps when inspecting the data directory by hand.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// UserID returns a fresh user identifier.
func (g *UUIDGenerator) UserID() string {
	return "user_" + g.Generate()
}

// SessionID returns a fresh session identifier.
func (g *UUIDGenerator) SessionID() string {
	return "sess_" + g.Generate()
}

// RandomHex returns n hex characters from a CSPRNG. Used for log-entry ids
// and CSRF tokens, where a full UUID would be overkill.
func RandomHex(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}

	return hex.EncodeToString(buf)[:n]
}
