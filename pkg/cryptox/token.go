package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// NewSessionToken returns an opaque bearer token with 256 bits of entropy,
// base64url encoded without padding (43 characters).
func NewSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// TokenKey is the SHA-256 of a bearer token. The server indexes sessions by
// it so raw tokens are never held in its session table.
func TokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
