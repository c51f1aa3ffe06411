package session

import (
	"strings"
	"time"

	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
)

// Account is a roster entry: the public identity plus what only the local
// cache knows. PasswordSecret is an argon2id hash and is empty for
// accounts that have never signed in on this machine.
type Account struct {
	healthsdk.User
	PasswordSecret string `json:"passwordSecret,omitempty"`
	AgeOverride    *int   `json:"ageOverride,omitempty"`
}

// normalize canonicalises the email and name and recomputes the derived
// age from its source.
func (a Account) normalize(now time.Time) Account {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = healthx.NormalizeEmail(a.Email)
	if a.Plan == "" {
		a.Plan = healthsdk.PlanFree
	}
	if a.Role == "" {
		a.Role = healthsdk.RoleUser
	}
	a.Age = nil
	if age, ok := healthx.DeriveAge(a.AgeOverride, a.BirthDate, now); ok {
		a.Age = &age
	}
	return a
}

// checkSecret reports whether password matches the stored secret.
func (a Account) checkSecret(password string) bool {
	if a.PasswordSecret == "" {
		return false
	}
	return cryptox.VerifyPassword(password, a.PasswordSecret) == nil
}

// fromRemote builds an Account from a server identity. The server only
// sends the derived age, so an age that disagrees with the birth date is
// kept as an override.
func fromRemote(u healthsdk.User, now time.Time) Account {
	a := Account{User: u}
	if u.Age != nil {
		derived, ok := healthx.DeriveAge(nil, u.BirthDate, now)
		if !ok || derived != *u.Age {
			age := *u.Age
			a.AgeOverride = &age
		}
	}
	return a.normalize(now)
}
