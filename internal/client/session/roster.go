package session

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
)

// Roster is the locally cached list of known accounts. The server list is
// authoritative whenever it can be fetched; otherwise the roster is. Every
// write normalises and persists the whole list.
//
// Roster is not safe for concurrent use on its own. Manager serialises
// access.
type Roster struct {
	Store localstore.Store
	Now   func() time.Time
}

func (r *Roster) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Load returns the cached accounts. A missing or corrupt roster is empty.
func (r *Roster) Load(ctx context.Context) ([]Account, error) {
	var list []Account
	err := localstore.GetJSON(ctx, r.Store, localstore.KeyUsers, &list)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	now := r.now()
	for i := range list {
		list[i] = list[i].normalize(now)
	}
	return list, nil
}

// Save normalises every account and replaces the cached list.
func (r *Roster) Save(ctx context.Context, list []Account) error {
	now := r.now()
	out := make([]Account, 0, len(list))
	for _, a := range list {
		out = append(out, a.normalize(now))
	}
	return localstore.SetJSON(ctx, r.Store, localstore.KeyUsers, out)
}

// ByEmail finds an account by normalised email.
func (r *Roster) ByEmail(ctx context.Context, email string) (Account, bool, error) {
	list, err := r.Load(ctx)
	if err != nil {
		return Account{}, false, err
	}
	email = healthx.NormalizeEmail(email)
	i := slices.IndexFunc(list, func(a Account) bool { return a.Email == email })
	if i < 0 {
		return Account{}, false, nil
	}
	return list[i], true, nil
}

// ByID finds an account by id.
func (r *Roster) ByID(ctx context.Context, id string) (Account, bool, error) {
	list, err := r.Load(ctx)
	if err != nil {
		return Account{}, false, err
	}
	i := slices.IndexFunc(list, func(a Account) bool { return a.ID == id })
	if i < 0 {
		return Account{}, false, nil
	}
	return list[i], true, nil
}

// EmailTaken reports whether any account other than exceptID uses email.
func (r *Roster) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	list, err := r.Load(ctx)
	if err != nil {
		return false, err
	}
	email = healthx.NormalizeEmail(email)
	return slices.ContainsFunc(list, func(a Account) bool {
		return a.Email == email && a.ID != exceptID
	}), nil
}

// Merge inserts acc or replaces the entry with the same id. An entry that
// shares the email under a different id is replaced too, since the server
// assigns its own ids. A blank secret keeps the stored one.
func (r *Roster) Merge(ctx context.Context, acc Account) error {
	list, err := r.Load(ctx)
	if err != nil {
		return err
	}
	email := healthx.NormalizeEmail(acc.Email)

	i := slices.IndexFunc(list, func(a Account) bool { return a.ID == acc.ID })
	if i < 0 {
		i = slices.IndexFunc(list, func(a Account) bool { return a.Email == email })
	}
	if i < 0 {
		return r.Save(ctx, append(list, acc))
	}

	if acc.PasswordSecret == "" {
		acc.PasswordSecret = list[i].PasswordSecret
	}
	list[i] = acc
	return r.Save(ctx, list)
}

// Remove drops the account with id. It reports whether one was removed.
func (r *Roster) Remove(ctx context.Context, id string) (bool, error) {
	list, err := r.Load(ctx)
	if err != nil {
		return false, err
	}
	n := len(list)
	list = slices.DeleteFunc(list, func(a Account) bool { return a.ID == id })
	if len(list) == n {
		return false, nil
	}
	return true, r.Save(ctx, list)
}

// Replace installs the server's roster. Local secrets survive for accounts
// that keep their id or email; accounts the server does not know are
// dropped.
func (r *Roster) Replace(ctx context.Context, users []healthsdk.User) error {
	list, err := r.Load(ctx)
	if err != nil {
		return err
	}

	secrets := make(map[string]string, len(list))
	for _, a := range list {
		if a.PasswordSecret != "" {
			secrets[a.ID] = a.PasswordSecret
			secrets[a.Email] = a.PasswordSecret
		}
	}

	now := r.now()
	out := make([]Account, 0, len(users))
	for _, u := range users {
		a := fromRemote(u, now)
		if s, ok := secrets[a.ID]; ok {
			a.PasswordSecret = s
		} else if s, ok := secrets[a.Email]; ok {
			a.PasswordSecret = s
		}
		out = append(out, a)
	}
	return r.Save(ctx, out)
}
