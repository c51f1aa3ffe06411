package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aussiebroadwan/healthmate/internal/api/store"
	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/httpx"
)

// TokenService issues opaque bearer tokens. The table lives in memory only:
// tokens never expire and a restart invalidates all of them.
type TokenService struct {
	Store store.Store

	mu     sync.RWMutex
	tokens map[string]string // fingerprint -> user id
}

func NewTokenService(s store.Store) *TokenService {
	return &TokenService{Store: s, tokens: make(map[string]string)}
}

// Issue creates a new token for userID.
func (s *TokenService) Issue(userID string) (string, error) {
	raw, err := cryptox.NewSessionToken()
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.mu.Lock()
	s.tokens[cryptox.TokenKey(raw)] = userID
	s.mu.Unlock()
	return raw, nil
}

// Revoke forgets a single token. Unknown tokens are ignored.
func (s *TokenService) Revoke(raw string) {
	s.mu.Lock()
	delete(s.tokens, cryptox.TokenKey(raw))
	s.mu.Unlock()
}

// RevokeUser forgets every token held by userID.
func (s *TokenService) RevokeUser(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for fp, owner := range s.tokens {
		if owner == userID {
			delete(s.tokens, fp)
			n++
		}
	}
	return n
}

// Active returns the number of live tokens.
func (s *TokenService) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

// Authenticate implements httpx.Authenticator. The role is read fresh from
// the store so plan and role changes apply to existing tokens.
func (s *TokenService) Authenticate(ctx context.Context, raw string) (httpx.Principal, error) {
	s.mu.RLock()
	userID, ok := s.tokens[cryptox.TokenKey(raw)]
	s.mu.RUnlock()
	if !ok {
		return httpx.Principal{}, httpx.ErrUnknownToken
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		s.Revoke(raw)
		return httpx.Principal{}, httpx.ErrUnknownToken
	}
	if err != nil {
		return httpx.Principal{}, err
	}
	return httpx.Principal{UserID: u.ID, Role: string(u.Role)}, nil
}
