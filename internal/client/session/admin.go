package session

import (
	"context"

	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

// requireAdmin must be called with mu held.
func (m *Manager) requireAdmin() error {
	switch {
	case m.current == nil:
		return ErrNotAuthenticated
	case !m.current.IsAdmin():
		return ErrForbidden
	}
	return nil
}

// Users lists the cached roster without contacting the API.
func (m *Manager) Users(ctx context.Context) ([]healthsdk.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireAdmin(); err != nil {
		return nil, err
	}

	list, err := m.roster.Load(ctx)
	if err != nil {
		return nil, err
	}
	return publicUsers(list), nil
}

// RefreshUsers replaces the roster with the API's list. When the API is not
// available the cached roster is returned unchanged.
func (m *Manager) RefreshUsers(ctx context.Context) ([]healthsdk.User, Outcome, error) {
	users, out, err := m.refreshUsers(ctx)
	if err != nil {
		return nil, Outcome{}, err
	}
	if out.Source == healthsdk.SourceRemote {
		m.publish("", bus.TopicUsers)
	}
	return users, out, nil
}

func (m *Manager) refreshUsers(ctx context.Context) ([]healthsdk.User, Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireAdmin(); err != nil {
		return nil, Outcome{}, err
	}

	out := remote()
	resp, res := m.gw.ListUsers(ctx)
	if res.OK {
		if err := m.roster.Replace(ctx, resp.Users); err != nil {
			return nil, Outcome{}, err
		}
	} else {
		slogx.FromContext(ctx).Warn("user refresh failed, using local roster", "status", res.Status, "err", res.Error)
		out = local(res)
	}

	list, err := m.roster.Load(ctx)
	if err != nil {
		return nil, Outcome{}, err
	}
	return publicUsers(list), out, nil
}

// SetUserPlan changes the subscription plan of any account.
func (m *Manager) SetUserPlan(ctx context.Context, id string, plan healthsdk.Plan) (healthsdk.User, Outcome, error) {
	return m.UpdateUserAdmin(ctx, id, healthsdk.AdminUserUpdateRequest{Plan: &plan})
}

// UpdateUserAdmin edits any account. On API failure the roster entry is
// edited in place.
func (m *Manager) UpdateUserAdmin(ctx context.Context, id string, req healthsdk.AdminUserUpdateRequest) (healthsdk.User, Outcome, error) {
	u, self, out, err := m.updateUserAdmin(ctx, id, req)
	if err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	m.publish(u.ID, bus.TopicUsers)
	if self {
		m.publish(u.ID, bus.TopicSession)
	}
	return u, out, nil
}

func (m *Manager) updateUserAdmin(ctx context.Context, id string, req healthsdk.AdminUserUpdateRequest) (healthsdk.User, bool, Outcome, error) {
	if err := checkProfile(req.Name, req.Email, req.Gender, req.BirthDate, m.now()); err != nil {
		return healthsdk.User{}, false, Outcome{}, err
	}
	if req.Plan != nil && !req.Plan.Valid() {
		return healthsdk.User{}, false, Outcome{}, healthx.Invalid("plan", "plan must be %q or %q", healthsdk.PlanFree, healthsdk.PlanPro)
	}
	if req.Role != nil && !req.Role.Valid() {
		return healthsdk.User{}, false, Outcome{}, healthx.Invalid("role", "role must be %q or %q", healthsdk.RoleUser, healthsdk.RoleAdmin)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireAdmin(); err != nil {
		return healthsdk.User{}, false, Outcome{}, err
	}

	var acc Account
	out := remote()
	resp, res := m.gw.UpdateUser(ctx, id, req)
	if res.OK {
		acc = fromRemote(resp.User, m.now())
	} else {
		slogx.FromContext(ctx).Warn("admin update saved locally", "target_id", id, "status", res.Status, "err", res.Error)
		out = local(res)

		found, ok, err := m.roster.ByID(ctx, id)
		if err != nil {
			return healthsdk.User{}, false, Outcome{}, err
		}
		if !ok {
			return healthsdk.User{}, false, Outcome{}, ErrUserNotFound
		}
		if req.Email != nil {
			taken, err := m.roster.EmailTaken(ctx, *req.Email, id)
			if err != nil {
				return healthsdk.User{}, false, Outcome{}, err
			}
			if taken {
				return healthsdk.User{}, false, Outcome{}, ErrEmailTaken
			}
		}
		acc = applyProfile(found, req.Name, req.Email, req.Gender, req.BirthDate)
		if req.Plan != nil {
			acc.Plan = *req.Plan
		}
		if req.Role != nil {
			acc.Role = *req.Role
		}
	}

	if err := m.roster.Merge(ctx, acc); err != nil {
		return healthsdk.User{}, false, Outcome{}, err
	}

	self := m.current.ID == acc.ID
	if self {
		if err := m.commit(ctx, acc, m.gw.Token()); err != nil {
			return healthsdk.User{}, false, Outcome{}, err
		}
	}
	return acc.normalize(m.now()).User, self, out, nil
}

// DeleteUser removes an account and its cached data. If the API call fails
// the account is still removed locally and the Outcome carries a warning.
// Deleting the signed-in account signs it out.
func (m *Manager) DeleteUser(ctx context.Context, id string) (Outcome, error) {
	out, self, err := m.deleteUser(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	m.publish(id, bus.TopicUsers)
	if self {
		m.publish("", bus.TopicSession)
	}
	return out, nil
}

func (m *Manager) deleteUser(ctx context.Context, id string) (Outcome, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireAdmin(); err != nil {
		return Outcome{}, false, err
	}
	log := slogx.FromContext(ctx)

	out := remote()
	res := m.gw.DeleteUser(ctx, id)
	if !res.OK {
		log.Warn("admin delete fell back to local roster", "target_id", id, "status", res.Status, "err", res.Error)
		out = local(res)
	}

	removed, err := m.roster.Remove(ctx, id)
	if err != nil {
		return Outcome{}, false, err
	}
	if !removed && !res.OK {
		return Outcome{}, false, ErrUserNotFound
	}

	for _, key := range localstore.OwnerKeys(id) {
		if err := m.store.Delete(ctx, key); err != nil {
			return Outcome{}, false, err
		}
	}

	self := m.current.ID == id
	if self {
		if err := m.clear(ctx); err != nil {
			return Outcome{}, false, err
		}
	}
	log.Info("user deleted", "target_id", id, "source", out.Source)
	return out, self, nil
}

func publicUsers(list []Account) []healthsdk.User {
	out := make([]healthsdk.User, 0, len(list))
	for _, a := range list {
		out = append(out, a.User)
	}
	return out
}
