package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashRefreshToken(t *testing.T) {
	token := "some.refresh.token"

	hash := HashRefreshToken(token)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, token, hash, "Hash must differ from the token")
	assert.Len(t, hash, 64, "SHA256 hex digest is 64 characters")

	// Hashing is deterministic so the stored value can be compared later
	assert.Equal(t, hash, HashRefreshToken(token))
	assert.NotEqual(t, hash, HashRefreshToken("another.token"))
}

func TestCompareRefreshTokenHash(t *testing.T) {
	token := "some.refresh.token"
	hash := HashRefreshToken(token)

	assert.True(t, CompareRefreshTokenHash(token, hash))
	assert.False(t, CompareRefreshTokenHash("another.token", hash))
	assert.False(t, CompareRefreshTokenHash(token, ""))
}
