package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken returns the SHA256 hex digest of a refresh token. Only
// this digest is stored on the user record.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash compares a raw refresh token with its stored
// SHA256 digest.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	return HashRefreshToken(token) == storedHash
}
