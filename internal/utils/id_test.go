package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDGenerator_Prefixes(t *testing.T) {
	g := NewUUIDGenerator()

	assert.True(t, strings.HasPrefix(g.UserID(), "user_"))
	assert.True(t, strings.HasPrefix(g.SessionID(), "sess_"))
	assert.NotEqual(t, g.UserID(), g.UserID())
}

func TestRandomHex(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]+$`)

	for _, n := range []int{1, 8, 63, 64} {
		token := RandomHex(n)
		assert.Len(t, token, n)
		assert.Regexp(t, hexPattern, token)
	}

	assert.NotEqual(t, RandomHex(64), RandomHex(64))
}
