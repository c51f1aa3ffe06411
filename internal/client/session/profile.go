package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

// UpdateProfile changes the signed-in identity. A new email must not belong
// to any other account.
func (m *Manager) UpdateProfile(ctx context.Context, req healthsdk.ProfileUpdateRequest) (healthsdk.User, Outcome, error) {
	u, out, err := m.updateProfile(ctx, req)
	if err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	m.publish(u.ID, bus.TopicSession, bus.TopicUsers)
	return u, out, nil
}

func (m *Manager) updateProfile(ctx context.Context, req healthsdk.ProfileUpdateRequest) (healthsdk.User, Outcome, error) {
	if err := checkProfile(req.Name, req.Email, req.Gender, req.BirthDate, m.now()); err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	if req.Age != nil {
		if err := healthx.CheckAge(*req.Age); err != nil {
			return healthsdk.User{}, Outcome{}, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return healthsdk.User{}, Outcome{}, ErrNotAuthenticated
	}

	resp, res := m.gw.UpdateProfile(ctx, req)
	if res.OK {
		acc := fromRemote(resp.User, m.now())
		if err := m.roster.Merge(ctx, acc); err != nil {
			return healthsdk.User{}, Outcome{}, err
		}
		if err := m.commit(ctx, acc, m.gw.Token()); err != nil {
			return healthsdk.User{}, Outcome{}, err
		}
		return m.current.User, remote(), nil
	}

	slogx.FromContext(ctx).Warn("profile saved locally", "status", res.Status, "err", res.Error)

	acc, ok, err := m.roster.ByID(ctx, m.current.ID)
	if err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	if !ok {
		acc = *m.current
	}
	if req.Email != nil {
		taken, err := m.roster.EmailTaken(ctx, *req.Email, acc.ID)
		if err != nil {
			return healthsdk.User{}, Outcome{}, err
		}
		if taken {
			return healthsdk.User{}, Outcome{}, ErrEmailTaken
		}
	}

	acc = applyProfile(acc, req.Name, req.Email, req.Gender, req.BirthDate)
	if req.Age != nil {
		age := *req.Age
		acc.AgeOverride = &age
	}
	if err := m.roster.Merge(ctx, acc); err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	if err := m.commit(ctx, acc, m.gw.Token()); err != nil {
		return healthsdk.User{}, Outcome{}, err
	}
	return m.current.User, local(res), nil
}

// ChangePassword sets a new password. The API verifies the current one;
// the local path checks it against the roster.
func (m *Manager) ChangePassword(ctx context.Context, current, next string) (Outcome, error) {
	out, err := m.changePassword(ctx, current, next)
	if err != nil {
		return Outcome{}, err
	}
	m.publish("", bus.TopicUsers)
	return out, nil
}

func (m *Manager) changePassword(ctx context.Context, current, next string) (Outcome, error) {
	if err := m.policy.Check(next); err != nil {
		return Outcome{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Outcome{}, ErrNotAuthenticated
	}

	secret, err := cryptox.HashPassword(next)
	if err != nil {
		return Outcome{}, fmt.Errorf("hash password: %w", err)
	}

	acc, ok, err := m.roster.ByID(ctx, m.current.ID)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		acc = *m.current
	}

	res := m.gw.ChangePassword(ctx, healthsdk.PasswordChangeRequest{CurrentPassword: current, NewPassword: next})
	out := remote()
	if !res.OK {
		slogx.FromContext(ctx).Warn("password change saved locally", "status", res.Status, "err", res.Error)
		if !acc.checkSecret(current) {
			return Outcome{}, ErrWrongPassword
		}
		out = local(res)
	}

	acc.PasswordSecret = secret
	if err := m.roster.Merge(ctx, acc); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// checkProfile validates the fields that are present.
func checkProfile(name, email, gender, birthDate *string, now time.Time) error {
	if name != nil && strings.TrimSpace(*name) == "" {
		return healthx.Invalid("name", "name is required")
	}
	if email != nil {
		if err := healthx.CheckEmail(*email); err != nil {
			return err
		}
	}
	if gender != nil && *gender != "" {
		if err := healthx.CheckGender(*gender); err != nil {
			return err
		}
	}
	if birthDate != nil && *birthDate != "" {
		if err := healthx.CheckBirthDate(*birthDate, now); err != nil {
			return err
		}
	}
	return nil
}

// applyProfile copies the present fields onto acc. A new birth date drops
// any age override so the age follows it again.
func applyProfile(acc Account, name, email, gender, birthDate *string) Account {
	if name != nil {
		acc.Name = strings.TrimSpace(*name)
	}
	if email != nil {
		acc.Email = healthx.NormalizeEmail(*email)
	}
	if gender != nil {
		acc.Gender = *gender
	}
	if birthDate != nil && *birthDate != acc.BirthDate {
		acc.BirthDate = *birthDate
		acc.AgeOverride = nil
	}
	return acc
}
