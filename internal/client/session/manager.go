// Package session owns the signed-in identity and the local roster of known
// accounts. Every operation tries the remote API first and falls back to
// the local store when the gateway reports a failure.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/idx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

type State int32

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Outcome reports which side served a mutation. Warning carries the
// gateway error when the local path ran.
type Outcome struct {
	Source  healthsdk.Source
	Warning string
}

func remote() Outcome { return Outcome{Source: healthsdk.SourceRemote} }

func local(res healthsdk.Result) Outcome {
	return Outcome{Source: healthsdk.SourceLocal, Warning: res.Error}
}

type Config struct {
	Gateway *healthsdk.Client
	Store   localstore.Store
	Bus     *bus.Bus
	// Policy defaults to healthx.DefaultPasswordPolicy.
	Policy *healthx.PasswordPolicy
	// Seeds are installed into an empty roster by Hydrate.
	Seeds []Seed
	Now   func() time.Time
	// OnReset runs after logout so front-ends can drop their view state.
	OnReset func()
}

type Manager struct {
	gw      *healthsdk.Client
	store   localstore.Store
	bus     *bus.Bus
	roster  *Roster
	policy  healthx.PasswordPolicy
	seeds   []Seed
	now     func() time.Time
	onReset func()

	// mu serialises operations. Events are published after it is released.
	mu      sync.Mutex
	current *Account
	state   atomic.Int32
}

func NewManager(cfg Config) *Manager {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	policy := healthx.DefaultPasswordPolicy
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}
	return &Manager{
		gw:      cfg.Gateway,
		store:   cfg.Store,
		bus:     cfg.Bus,
		roster:  &Roster{Store: cfg.Store, Now: cfg.Now},
		policy:  policy,
		seeds:   cfg.Seeds,
		now:     cfg.Now,
		onReset: cfg.OnReset,
	}
}

// Roster exposes the account repository.
func (m *Manager) Roster() *Roster { return m.roster }

func (m *Manager) State() State { return State(m.state.Load()) }

// Current returns the signed-in identity.
func (m *Manager) Current() (healthsdk.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return healthsdk.User{}, false
	}
	return m.current.User, true
}

// Hydrate restores the token and session from the store, seeds an empty
// roster and, when a token exists, refreshes the identity from the API.
func (m *Manager) Hydrate(ctx context.Context) error {
	if err := m.hydrate(ctx); err != nil {
		return err
	}
	m.publish("", bus.TopicSession, bus.TopicUsers)
	return nil
}

func (m *Manager) hydrate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	log := slogx.FromContext(ctx)

	if len(m.seeds) > 0 {
		n, err := seedRoster(ctx, m.roster, m.seeds)
		if err != nil {
			return fmt.Errorf("seed roster: %w", err)
		}
		if n > 0 {
			log.Info("local roster seeded", "accounts", n)
		}
	}

	token, err := m.store.Get(ctx, localstore.KeyAPIToken)
	switch {
	case err == nil:
		m.gw.SetToken(string(token))
	case !errors.Is(err, localstore.ErrNotFound):
		return fmt.Errorf("load token: %w", err)
	}

	var acc Account
	err = localstore.GetJSON(ctx, m.store, localstore.KeySession, &acc)
	switch {
	case err == nil:
		acc = acc.normalize(m.now())
		m.current = &acc
		m.state.Store(int32(Authenticated))
	case !errors.Is(err, localstore.ErrNotFound):
		return fmt.Errorf("load session: %w", err)
	}

	if m.gw.Token() == "" {
		return nil
	}

	me, res := m.gw.Me(ctx)
	if !res.OK {
		log.Debug("identity refresh skipped", "status", res.Status, "err", res.Error)
		return nil
	}

	fresh := fromRemote(me.User, m.now())
	if me.Users != nil {
		if err := m.roster.Replace(ctx, me.Users); err != nil {
			return err
		}
	}
	if err := m.roster.Merge(ctx, fresh); err != nil {
		return err
	}
	return m.commit(ctx, fresh, m.gw.Token())
}

// Register validates locally, then creates the account on the API or, if
// that fails, in the local roster.
func (m *Manager) Register(ctx context.Context, req healthsdk.RegisterRequest) (healthsdk.User, Outcome, error) {
	u, out, err := m.register(ctx, req)
	if err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	m.publish(u.ID, bus.TopicSession, bus.TopicUsers)
	return u, out, nil
}

func (m *Manager) register(ctx context.Context, req healthsdk.RegisterRequest) (healthsdk.User, Outcome, error) {
	if err := m.checkRegistration(&req); err != nil {
		slogx.FromContext(ctx).Debug("registration rejected", "err", err)
		return healthsdk.User{}, Outcome{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.settle()
	m.state.Store(int32(Authenticating))

	secret, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return healthsdk.User{}, Outcome{}, fmt.Errorf("hash password: %w", err)
	}

	resp, res := m.gw.Register(ctx, req)
	if res.OK {
		acc := fromRemote(resp.User, m.now())
		acc.PasswordSecret = secret
		if err := m.roster.Merge(ctx, acc); err != nil {
			return healthsdk.User{}, Outcome{}, err
		}
		if err := m.commit(ctx, acc, resp.Token); err != nil {
			return healthsdk.User{}, Outcome{}, err
		}
		return m.current.User, remote(), nil
	}

	slogx.FromContext(ctx).Warn("register saved locally", "status", res.Status, "err", res.Error)

	taken, err := m.roster.EmailTaken(ctx, req.Email, "")
	if err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	if taken {
		return healthsdk.User{}, Outcome{}, ErrEmailTaken
	}

	acc := Account{
		User: healthsdk.User{
			ID:        idx.NewAt(m.now()).String(),
			Name:      req.Name,
			Email:     req.Email,
			Gender:    req.Gender,
			BirthDate: req.BirthDate,
			Plan:      healthsdk.PlanFree,
			Role:      healthsdk.RoleUser,
		},
		PasswordSecret: secret,
	}
	if err := m.roster.Merge(ctx, acc); err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	if err := m.commit(ctx, acc, ""); err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	return m.current.User, local(res), nil
}

func (m *Manager) checkRegistration(req *healthsdk.RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = healthx.NormalizeEmail(req.Email)
	switch {
	case req.Name == "":
		return healthx.Invalid("name", "name is required")
	case req.Email == "":
		return healthx.Invalid("email", "email is required")
	case req.BirthDate == "":
		return healthx.Invalid("birthDate", "birth date is required")
	}

	if err := healthx.CheckEmail(req.Email); err != nil {
		return err
	}
	if err := healthx.CheckBirthDate(req.BirthDate, m.now()); err != nil {
		return err
	}
	if req.Gender != "" {
		if err := healthx.CheckGender(req.Gender); err != nil {
			return err
		}
	}
	return m.policy.Check(req.Password)
}

// Login signs in against the API, or against the local roster when the API
// call fails.
func (m *Manager) Login(ctx context.Context, email, password string) (healthsdk.User, Outcome, error) {
	u, out, err := m.login(ctx, email, password)
	if err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	m.publish(u.ID, bus.TopicSession, bus.TopicUsers)
	return u, out, nil
}

func (m *Manager) login(ctx context.Context, email, password string) (healthsdk.User, Outcome, error) {
	email = healthx.NormalizeEmail(email)
	if email == "" || password == "" {
		return healthsdk.User{}, Outcome{}, ErrInvalidCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.settle()
	m.state.Store(int32(Authenticating))

	resp, res := m.gw.Login(ctx, healthsdk.LoginRequest{Email: email, Password: password})
	if res.OK {
		secret, err := cryptox.HashPassword(password)
		if err != nil {
			return healthsdk.User{}, Outcome{}, fmt.Errorf("hash password: %w", err)
		}
		acc := fromRemote(resp.User, m.now())
		acc.PasswordSecret = secret
		if err := m.roster.Merge(ctx, acc); err != nil {
			return healthsdk.User{}, Outcome{}, err
		}
		if err := m.commit(ctx, acc, resp.Token); err != nil {
			return healthsdk.User{}, Outcome{}, err
		}
		return m.current.User, remote(), nil
	}

	slogx.FromContext(ctx).Warn("login falling back to local roster", "status", res.Status, "err", res.Error)

	acc, ok, err := m.roster.ByEmail(ctx, email)
	if err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	if !ok || !acc.checkSecret(password) {
		return healthsdk.User{}, Outcome{}, ErrInvalidCredentials
	}
	if err := m.commit(ctx, acc, ""); err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	return m.current.User, local(res), nil
}

// Logout drops the token and session, tells the API on a best-effort basis
// and then runs the reset hook.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.logout(ctx); err != nil {
		return err
	}
	m.publish("", bus.TopicSession)
	if m.onReset != nil {
		m.onReset()
	}
	return nil
}

func (m *Manager) logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gw.Token() != "" {
		if res := m.gw.Logout(ctx); !res.OK {
			slogx.FromContext(ctx).Debug("server logout failed", "status", res.Status, "err", res.Error)
		}
	}
	return m.clear(ctx)
}

// commit makes acc the current identity and persists it with token. An
// empty token removes any stored one, since a local sign-in has none.
func (m *Manager) commit(ctx context.Context, acc Account, token string) error {
	acc = acc.normalize(m.now())
	acc.PasswordSecret = ""

	if err := localstore.SetJSON(ctx, m.store, localstore.KeySession, acc); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if token != "" {
		if err := m.store.Set(ctx, localstore.KeyAPIToken, []byte(token)); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
	} else if err := m.store.Delete(ctx, localstore.KeyAPIToken); err != nil {
		return fmt.Errorf("drop token: %w", err)
	}

	m.gw.SetToken(token)
	m.current = &acc
	m.state.Store(int32(Authenticated))
	return nil
}

// clear forgets the identity and its token together.
func (m *Manager) clear(ctx context.Context) error {
	m.gw.SetToken("")
	m.current = nil
	m.state.Store(int32(Anonymous))

	for _, key := range []string{localstore.KeySession, localstore.KeyAPIToken} {
		if err := m.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("drop %s: %w", key, err)
		}
	}
	return nil
}

// settle leaves the Authenticating state once an attempt finishes.
func (m *Manager) settle() {
	if m.current != nil {
		m.state.Store(int32(Authenticated))
		return
	}
	m.state.Store(int32(Anonymous))
}

func (m *Manager) publish(ownerID string, topics ...bus.Topic) {
	if m.bus == nil {
		return
	}
	for _, t := range topics {
		m.bus.Publish(bus.Event{Topic: t, OwnerID: ownerID})
	}
}
