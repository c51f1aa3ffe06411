package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// The pepper is a per-installation secret appended to every password before
// hashing. The API and a CLI that should verify server hashes offline must
// point at the same file.
var pepper = struct {
	sync.Mutex
	path  string
	value []byte
}{path: filepath.Join("data", "pepper")}

// SetPepperPath selects the pepper file and forgets any pepper already
// loaded. A missing file is created with 32 random bytes on first use.
func SetPepperPath(file string) {
	pepper.Lock()
	defer pepper.Unlock()
	pepper.path = file
	pepper.value = nil
}

func loadPepper() ([]byte, error) {
	pepper.Lock()
	defer pepper.Unlock()

	if pepper.value != nil {
		return pepper.value, nil
	}

	raw, err := os.ReadFile(pepper.path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		raw, err = createPepper(pepper.path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cryptox: read pepper: %w", err)
	}

	pepper.value = raw
	return raw, nil
}

func createPepper(file string) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return nil, fmt.Errorf("cryptox: pepper dir: %w", err)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	encoded := []byte(base64.RawURLEncoding.EncodeToString(secret))

	// O_EXCL so two processes racing on a fresh install agree on one pepper.
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("cryptox: create pepper: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(encoded); err != nil {
		return nil, fmt.Errorf("cryptox: write pepper: %w", err)
	}
	return encoded, nil
}
