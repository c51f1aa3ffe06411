// Package cryptox holds the password hashing and session token primitives
// shared by the HealthMate API and the offline roster in the client.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrMismatch      = errors.New("cryptox: password does not match")
	ErrMalformedHash = errors.New("cryptox: malformed hash")
)

// argonParams are the Argon2id settings a hash was produced with. They
// travel inside the encoded hash so they can be raised later without
// invalidating stored passwords.
type argonParams struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
	KeyLen  uint32
}

// current follows the OWASP minimum for Argon2id: 19 MiB, two passes.
var current = argonParams{Memory: 19 * 1024, Time: 2, Threads: 1, KeyLen: 32}

const saltLen = 16

var b64 = base64.RawStdEncoding

func derive(password string, salt []byte, p argonParams) ([]byte, error) {
	pep, err := loadPepper()
	if err != nil {
		return nil, err
	}
	secret := append([]byte(password), pep...)
	return argon2.IDKey(secret, salt, p.Time, p.Memory, p.Threads, p.KeyLen), nil
}

// HashPassword returns password as a PHC string:
// $argon2id$v=19$m=<kib>,t=<passes>,p=<threads>$<salt>$<key>.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key, err := derive(password, salt, current)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, current.Memory, current.Time, current.Threads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// VerifyPassword returns nil when password matches encoded, ErrMismatch
// when it does not and ErrMalformedHash when encoded cannot be read.
func VerifyPassword(password, encoded string) error {
	p, salt, want, err := decodeHash(encoded)
	if err != nil {
		return err
	}
	got, err := derive(password, salt, p)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

func decodeHash(encoded string) (argonParams, []byte, []byte, error) {
	var p argonParams

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}
	if fields[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return p, nil, nil, fmt.Errorf("%w: version %s", ErrMalformedHash, fields[2])
	}
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, fmt.Errorf("%w: params: %v", ErrMalformedHash, err)
	}

	salt, err := b64.DecodeString(fields[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	key, err := b64.DecodeString(fields[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: key", ErrMalformedHash)
	}
	p.KeyLen = uint32(len(key)) // #nosec G115 -- decoded from a short PHC field
	return p, salt, key, nil
}
