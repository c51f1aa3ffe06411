package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"seed password", "Health@123"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "mật khẩu 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$"))

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, err := HashPassword("Health@123")
	require.NoError(t, err)
	hash2, err := HashPassword("Health@123")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2)
	require.NoError(t, VerifyPassword("Health@123", hash1))
	require.NoError(t, VerifyPassword("Health@123", hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("Health@123")
	require.NoError(t, err)

	for _, wrong := range []string{"health@123", "Health@123 ", "", "Health@12"} {
		t.Run(wrong, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword(wrong, hash), ErrMismatch)
		})
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"plain text", "Health@123"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("Health@123", tt.invalidHash), ErrMalformedHash)
		})
	}
}

func TestPepper(t *testing.T) {
	t.Run("stable across loads", func(t *testing.T) {
		first, err := loadPepper()
		require.NoError(t, err)
		require.Len(t, first, 43)

		again, err := loadPepper()
		require.NoError(t, err)
		require.Equal(t, first, again)
	})

	t.Run("a different pepper rejects old hashes", func(t *testing.T) {
		hash, err := HashPassword("Health@123")
		require.NoError(t, err)

		prev := pepper.path
		SetPepperPath(filepath.Join(t.TempDir(), "other"))
		t.Cleanup(func() { SetPepperPath(prev) })

		require.ErrorIs(t, VerifyPassword("Health@123", hash), ErrMismatch)
	})

	t.Run("existing file is reused", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "pepper")
		require.NoError(t, os.WriteFile(file, []byte("shared-secret"), 0o600))

		prev := pepper.path
		SetPepperPath(file)
		t.Cleanup(func() { SetPepperPath(prev) })

		got, err := loadPepper()
		require.NoError(t, err)
		require.Equal(t, "shared-secret", string(got))
	})
}

func TestHashCarriesParams(t *testing.T) {
	hash, err := HashPassword("Health@123")
	require.NoError(t, err)
	require.Contains(t, hash, "$m=19456,t=2,p=1$")

	// A hash made with cheaper settings still verifies.
	cheap := argonParams{Memory: 8 * 1024, Time: 1, Threads: 1, KeyLen: 16}
	salt := []byte("0123456789abcdef")
	key, err := derive("Health@123", salt, cheap)
	require.NoError(t, err)
	encoded := "$argon2id$v=19$m=8192,t=1,p=1$" + b64.EncodeToString(salt) + "$" + b64.EncodeToString(key)
	require.NoError(t, VerifyPassword("Health@123", encoded))
}
