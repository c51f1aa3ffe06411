package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/internal/client/clienttest"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/aussiebroadwan/healthmate/internal/client/session"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) { clienttest.Main(m) }

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	api     *clienttest.API
	store   localstore.Store
	bus     *bus.Bus
	mgr     *session.Manager
	events  []bus.Event
	resets  int
	gateway *healthsdk.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{api: clienttest.NewAPI(t), store: clienttest.Store(t), bus: bus.New()}
	f.gateway = f.api.Gateway()
	f.bus.Subscribe(func(e bus.Event) { f.events = append(f.events, e) })
	f.mgr = session.NewManager(session.Config{
		Gateway: f.gateway,
		Store:   f.store,
		Bus:     f.bus,
		Seeds:   session.DefaultSeeds,
		Now:     func() time.Time { return fixedNow },
		OnReset: func() { f.resets++ },
	})
	require.NoError(t, f.mgr.Hydrate(t.Context()))
	f.events = nil
	return f
}

func (f *fixture) topics() []bus.Topic {
	out := make([]bus.Topic, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Topic)
	}
	return out
}

func TestHydrate(t *testing.T) {
	ctx := t.Context()

	t.Run("seeds an empty roster once", func(t *testing.T) {
		f := newFixture(t)
		list, err := f.mgr.Roster().Load(ctx)
		require.NoError(t, err)
		require.Len(t, list, len(session.DefaultSeeds))

		require.NoError(t, f.mgr.Hydrate(ctx))
		list, err = f.mgr.Roster().Load(ctx)
		require.NoError(t, err)
		require.Len(t, list, len(session.DefaultSeeds))

		_, ok := f.mgr.Current()
		require.False(t, ok)
		require.Equal(t, session.Anonymous, f.mgr.State())
	})

	t.Run("restores a stored session", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.mgr.Login(ctx, "lan@example.com", "Health@123")
		require.NoError(t, err)

		other := session.NewManager(session.Config{
			Gateway: f.api.Gateway(),
			Store:   f.store,
			Now:     func() time.Time { return fixedNow },
		})
		require.NoError(t, other.Hydrate(ctx))

		u, ok := other.Current()
		require.True(t, ok)
		require.Equal(t, "lan@example.com", u.Email)
		require.Equal(t, session.Authenticated, other.State())
	})

	t.Run("keeps the cached session when the api is down", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.mgr.Login(ctx, "minh@example.com", "Health@123")
		require.NoError(t, err)

		f.api.SetDown(true)
		other := session.NewManager(session.Config{Gateway: f.api.Gateway(), Store: f.store})
		require.NoError(t, other.Hydrate(ctx))

		u, ok := other.Current()
		require.True(t, ok)
		require.Equal(t, "Minh", u.Name)
	})
}

func TestLogin(t *testing.T) {
	ctx := t.Context()

	t.Run("remote", func(t *testing.T) {
		f := newFixture(t)

		u, out, err := f.mgr.Login(ctx, "  LAN@Example.com ", "Health@123")
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceRemote, out.Source)
		require.Equal(t, "lan@example.com", u.Email)
		require.Equal(t, session.Authenticated, f.mgr.State())
		require.NotEmpty(t, f.gateway.Token())

		token, err := f.store.Get(ctx, localstore.KeyAPIToken)
		require.NoError(t, err)
		require.Equal(t, f.gateway.Token(), string(token))

		acc, ok, err := f.mgr.Roster().ByEmail(ctx, "lan@example.com")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, u.ID, acc.ID)

		require.Equal(t, []bus.Topic{bus.TopicSession, bus.TopicUsers}, f.topics())
	})

	t.Run("falls back to the local roster", func(t *testing.T) {
		f := newFixture(t)
		f.api.SetDown(true)

		u, out, err := f.mgr.Login(ctx, "lan@example.com", "Health@123")
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceLocal, out.Source)
		require.Equal(t, "service unavailable", out.Warning)
		require.Equal(t, "lan@example.com", u.Email)
		require.Empty(t, f.gateway.Token())

		_, err = f.store.Get(ctx, localstore.KeyAPIToken)
		require.ErrorIs(t, err, localstore.ErrNotFound)
	})

	t.Run("local only account", func(t *testing.T) {
		f := newFixture(t)

		u, out, err := f.mgr.Login(ctx, "an@example.com", "Health@123")
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceLocal, out.Source)
		require.Equal(t, "seed-an", u.ID)
		require.NotNil(t, u.Age)
		require.Equal(t, 28, *u.Age)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.mgr.Login(ctx, "lan@example.com", "Wrong@123")
		require.ErrorIs(t, err, session.ErrInvalidCredentials)

		f.api.SetDown(true)
		_, _, err = f.mgr.Login(ctx, "nobody@example.com", "Health@123")
		require.ErrorIs(t, err, session.ErrInvalidCredentials)
		require.Equal(t, session.Anonymous, f.mgr.State())
		require.Empty(t, f.events)
	})

	t.Run("unreachable gateway", func(t *testing.T) {
		st := clienttest.Store(t)
		mgr := session.NewManager(session.Config{
			Gateway: clienttest.Unreachable(t),
			Store:   st,
			Seeds:   session.DefaultSeeds,
		})
		require.NoError(t, mgr.Hydrate(ctx))

		_, out, err := mgr.Login(ctx, "admin@healthmate.dev", "Admin@123")
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceLocal, out.Source)
		require.NotEmpty(t, out.Warning)
	})
}

func TestRegister(t *testing.T) {
	ctx := t.Context()
	req := func(email, password string) healthsdk.RegisterRequest {
		return healthsdk.RegisterRequest{
			Name:      " Hoa ",
			Email:     email,
			Password:  password,
			Gender:    "female",
			BirthDate: "2000-05-05",
		}
	}

	t.Run("validation happens before any request", func(t *testing.T) {
		f := newFixture(t)
		before := f.api.Calls()

		_, _, err := f.mgr.Register(ctx, req("hoa@example.com", "password1"))
		require.ErrorIs(t, err, session.ErrWeakPassword)

		_, _, err = f.mgr.Register(ctx, req("hoa@example.com", "short1"))
		require.ErrorIs(t, err, healthx.ErrWeakPassword)

		missing := req("hoa@example.com", "Strong#2024")
		missing.BirthDate = ""
		_, _, err = f.mgr.Register(ctx, missing)
		require.ErrorIs(t, err, healthx.ErrValidation)

		_, _, err = f.mgr.Register(ctx, req("not-an-email", "Strong#2024"))
		require.ErrorIs(t, err, healthx.ErrValidation)

		require.Equal(t, before, f.api.Calls())
	})

	t.Run("remote", func(t *testing.T) {
		f := newFixture(t)

		u, out, err := f.mgr.Register(ctx, req("Hoa@Example.com", "Strong#2024"))
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceRemote, out.Source)
		require.Equal(t, "Hoa", u.Name)
		require.Equal(t, "hoa@example.com", u.Email)
		require.Equal(t, healthsdk.PlanFree, u.Plan)
		require.NotEmpty(t, f.gateway.Token())

		taken, err := f.mgr.Roster().EmailTaken(ctx, "hoa@example.com", "")
		require.NoError(t, err)
		require.True(t, taken)
	})

	t.Run("local fallback rejects duplicates", func(t *testing.T) {
		f := newFixture(t)
		f.api.SetDown(true)

		u, out, err := f.mgr.Register(ctx, req("hoa@example.com", "Strong#2024"))
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceLocal, out.Source)
		require.Len(t, u.ID, 26)
		require.NotNil(t, u.Age)
		require.Equal(t, 26, *u.Age)

		_, _, err = f.mgr.Register(ctx, req("HOA@example.com", "Strong#2024"))
		require.ErrorIs(t, err, session.ErrEmailTaken)

		_, _, err = f.mgr.Register(ctx, req("lan@example.com", "Strong#2024"))
		require.ErrorIs(t, err, session.ErrEmailTaken)
	})
}

func TestLogout(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)

	_, _, err := f.mgr.Login(ctx, "lan@example.com", "Health@123")
	require.NoError(t, err)
	f.events = nil

	require.NoError(t, f.mgr.Logout(ctx))

	_, ok := f.mgr.Current()
	require.False(t, ok)
	require.Equal(t, session.Anonymous, f.mgr.State())
	require.Empty(t, f.gateway.Token())
	require.Equal(t, 1, f.resets)
	require.Equal(t, []bus.Topic{bus.TopicSession}, f.topics())

	for _, key := range []string{localstore.KeySession, localstore.KeyAPIToken} {
		_, err := f.store.Get(ctx, key)
		require.ErrorIs(t, err, localstore.ErrNotFound, key)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := t.Context()
	str := func(s string) *string { return &s }

	t.Run("requires a session", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.mgr.UpdateProfile(ctx, healthsdk.ProfileUpdateRequest{Name: str("X")})
		require.ErrorIs(t, err, session.ErrNotAuthenticated)
	})

	t.Run("remote", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.mgr.Login(ctx, "lan@example.com", "Health@123")
		require.NoError(t, err)

		u, out, err := f.mgr.UpdateProfile(ctx, healthsdk.ProfileUpdateRequest{Name: str("Lan Tran")})
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceRemote, out.Source)
		require.Equal(t, "Lan Tran", u.Name)

		var stored session.Account
		require.NoError(t, localstore.GetJSON(ctx, f.store, localstore.KeySession, &stored))
		require.Equal(t, "Lan Tran", stored.Name)
		require.Empty(t, stored.PasswordSecret)
	})

	t.Run("remote email collision", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.mgr.Login(ctx, "lan@example.com", "Health@123")
		require.NoError(t, err)

		// The API rejects the change, the local path re-checks the roster.
		_, _, err = f.mgr.UpdateProfile(ctx, healthsdk.ProfileUpdateRequest{Email: str("minh@example.com")})
		require.ErrorIs(t, err, session.ErrEmailTaken)
	})

	t.Run("local", func(t *testing.T) {
		f := newFixture(t)
		f.api.SetDown(true)
		_, _, err := f.mgr.Login(ctx, "lan@example.com", "Health@123")
		require.NoError(t, err)

		_, _, err = f.mgr.UpdateProfile(ctx, healthsdk.ProfileUpdateRequest{Email: str(" MINH@example.com")})
		require.ErrorIs(t, err, session.ErrEmailTaken)

		u, out, err := f.mgr.UpdateProfile(ctx, healthsdk.ProfileUpdateRequest{
			Email:     str("Lan.New@Example.com"),
			BirthDate: str("2000-01-01"),
		})
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceLocal, out.Source)
		require.Equal(t, "lan.new@example.com", u.Email)
		require.Equal(t, 26, *u.Age)

		age := 40
		u, _, err = f.mgr.UpdateProfile(ctx, healthsdk.ProfileUpdateRequest{Age: &age})
		require.NoError(t, err)
		require.Equal(t, 40, *u.Age)

		acc, ok, err := f.mgr.Roster().ByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "lan.new@example.com", acc.Email)
		require.NotEmpty(t, acc.PasswordSecret)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := t.Context()

	t.Run("policy applies before anything else", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.mgr.ChangePassword(ctx, "Health@123", "qwerty12")
		require.ErrorIs(t, err, session.ErrWeakPassword)

		_, err = f.mgr.ChangePassword(ctx, "Health@123", "Better#2025")
		require.ErrorIs(t, err, session.ErrNotAuthenticated)
	})

	t.Run("remote", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.mgr.Login(ctx, "minh@example.com", "Health@123")
		require.NoError(t, err)

		out, err := f.mgr.ChangePassword(ctx, "Health@123", "Better#2025")
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceRemote, out.Source)

		require.NoError(t, f.mgr.Logout(ctx))
		_, out, err = f.mgr.Login(ctx, "minh@example.com", "Better#2025")
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceRemote, out.Source)
	})

	t.Run("local checks the current password", func(t *testing.T) {
		f := newFixture(t)
		f.api.SetDown(true)
		_, _, err := f.mgr.Login(ctx, "an@example.com", "Health@123")
		require.NoError(t, err)

		_, err = f.mgr.ChangePassword(ctx, "Nope@1234", "Better#2025")
		require.ErrorIs(t, err, session.ErrWrongPassword)

		out, err := f.mgr.ChangePassword(ctx, "Health@123", "Better#2025")
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceLocal, out.Source)

		require.NoError(t, f.mgr.Logout(ctx))
		_, _, err = f.mgr.Login(ctx, "an@example.com", "Health@123")
		require.ErrorIs(t, err, session.ErrInvalidCredentials)
		_, _, err = f.mgr.Login(ctx, "an@example.com", "Better#2025")
		require.NoError(t, err)
	})
}

func TestAdmin(t *testing.T) {
	ctx := t.Context()

	loginAdmin := func(t *testing.T, f *fixture) healthsdk.User {
		t.Helper()
		u, _, err := f.mgr.Login(ctx, "admin@healthmate.dev", "Admin@123")
		require.NoError(t, err)
		return u
	}
	find := func(t *testing.T, users []healthsdk.User, email string) healthsdk.User {
		t.Helper()
		for _, u := range users {
			if u.Email == email {
				return u
			}
		}
		t.Fatalf("%s not in roster", email)
		return healthsdk.User{}
	}

	t.Run("requires the admin role", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.mgr.Users(ctx)
		require.ErrorIs(t, err, session.ErrNotAuthenticated)

		_, _, err = f.mgr.Login(ctx, "lan@example.com", "Health@123")
		require.NoError(t, err)
		_, err = f.mgr.Users(ctx)
		require.ErrorIs(t, err, session.ErrForbidden)
		_, err = f.mgr.DeleteUser(ctx, "seed-minh")
		require.ErrorIs(t, err, session.ErrForbidden)
	})

	t.Run("refresh replaces the roster and keeps secrets", func(t *testing.T) {
		f := newFixture(t)
		loginAdmin(t, f)

		users, out, err := f.mgr.RefreshUsers(ctx)
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceRemote, out.Source)
		require.Len(t, users, 3)

		acc, ok, err := f.mgr.Roster().ByEmail(ctx, "admin@healthmate.dev")
		require.NoError(t, err)
		require.True(t, ok)
		require.NotEmpty(t, acc.PasswordSecret)

		f.api.SetDown(true)
		users, out, err = f.mgr.RefreshUsers(ctx)
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceLocal, out.Source)
		require.Len(t, users, 3)
	})

	t.Run("plan change remote", func(t *testing.T) {
		f := newFixture(t)
		loginAdmin(t, f)
		users, _, err := f.mgr.RefreshUsers(ctx)
		require.NoError(t, err)
		lan := find(t, users, "lan@example.com")

		u, out, err := f.mgr.SetUserPlan(ctx, lan.ID, healthsdk.PlanPro)
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceRemote, out.Source)
		require.Equal(t, healthsdk.PlanPro, u.Plan)

		_, _, err = f.mgr.SetUserPlan(ctx, lan.ID, "Gold")
		require.ErrorIs(t, err, healthx.ErrValidation)
	})

	t.Run("local update", func(t *testing.T) {
		f := newFixture(t)
		f.api.SetDown(true)
		loginAdmin(t, f)

		role := healthsdk.RoleAdmin
		u, out, err := f.mgr.UpdateUserAdmin(ctx, "seed-an", healthsdk.AdminUserUpdateRequest{Role: &role})
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceLocal, out.Source)
		require.True(t, u.IsAdmin())

		email := "lan@example.com"
		_, _, err = f.mgr.UpdateUserAdmin(ctx, "seed-an", healthsdk.AdminUserUpdateRequest{Email: &email})
		require.ErrorIs(t, err, session.ErrEmailTaken)

		_, _, err = f.mgr.UpdateUserAdmin(ctx, "missing", healthsdk.AdminUserUpdateRequest{Role: &role})
		require.ErrorIs(t, err, session.ErrUserNotFound)
	})

	t.Run("delete falls back with a warning", func(t *testing.T) {
		f := newFixture(t)
		f.api.SetDown(true)
		loginAdmin(t, f)
		require.NoError(t, localstore.SetJSON(ctx, f.store, localstore.OwnerKey(localstore.PrefixBMILogs, "seed-minh"), []int{1}))

		out, err := f.mgr.DeleteUser(ctx, "seed-minh")
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceLocal, out.Source)
		require.NotEmpty(t, out.Warning)

		_, ok, err := f.mgr.Roster().ByID(ctx, "seed-minh")
		require.NoError(t, err)
		require.False(t, ok)

		_, err = f.store.Get(ctx, localstore.OwnerKey(localstore.PrefixBMILogs, "seed-minh"))
		require.ErrorIs(t, err, localstore.ErrNotFound)

		_, err = f.mgr.DeleteUser(ctx, "seed-minh")
		require.ErrorIs(t, err, session.ErrUserNotFound)
	})

	t.Run("deleting yourself signs you out", func(t *testing.T) {
		f := newFixture(t)
		admin := loginAdmin(t, f)

		out, err := f.mgr.DeleteUser(ctx, admin.ID)
		require.NoError(t, err)
		require.Equal(t, healthsdk.SourceRemote, out.Source)

		_, ok := f.mgr.Current()
		require.False(t, ok)
		require.Empty(t, f.gateway.Token())
	})
}

func TestRoster(t *testing.T) {
	ctx := context.Background()
	r := &session.Roster{Store: clienttest.Store(t), Now: func() time.Time { return fixedNow }}

	list, err := r.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	base := session.Account{User: healthsdk.User{ID: "a", Name: " A ", Email: " A@X.io ", BirthDate: "2000-06-02"}, PasswordSecret: "s1"}
	require.NoError(t, r.Merge(ctx, base))

	got, ok, err := r.ByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "A", got.Name)
	require.Equal(t, healthsdk.PlanFree, got.Plan)
	require.Equal(t, 25, *got.Age)

	t.Run("merge keeps the secret", func(t *testing.T) {
		next := session.Account{User: healthsdk.User{ID: "a", Name: "A2", Email: "a@x.io"}}
		require.NoError(t, r.Merge(ctx, next))
		got, _, err := r.ByID(ctx, "a")
		require.NoError(t, err)
		require.Equal(t, "A2", got.Name)
		require.Equal(t, "s1", got.PasswordSecret)
	})

	t.Run("replace keeps secrets by email", func(t *testing.T) {
		age := 50
		require.NoError(t, r.Replace(ctx, []healthsdk.User{
			{ID: "server-a", Name: "A", Email: "a@x.io", Age: &age},
			{ID: "server-b", Name: "B", Email: "b@x.io"},
		}))
		list, err := r.Load(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "s1", list[0].PasswordSecret)
		require.Equal(t, 50, *list[0].Age)
		require.Empty(t, list[1].PasswordSecret)
	})

	t.Run("remove and email checks", func(t *testing.T) {
		taken, err := r.EmailTaken(ctx, "B@x.io", "server-a")
		require.NoError(t, err)
		require.True(t, taken)

		taken, err = r.EmailTaken(ctx, "b@x.io", "server-b")
		require.NoError(t, err)
		require.False(t, taken)

		removed, err := r.Remove(ctx, "server-b")
		require.NoError(t, err)
		require.True(t, removed)

		removed, err = r.Remove(ctx, "server-b")
		require.NoError(t, err)
		require.False(t, removed)
	})
}
