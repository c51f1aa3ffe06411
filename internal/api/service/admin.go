package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
	"github.com/aussiebroadwan/healthmate/internal/api/store"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

// AdminService manages other users' accounts. Callers must already have
// checked the admin role.
type AdminService struct {
	Store  store.Store
	Tokens *TokenService
	Now    func() time.Time
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// UpdateUser applies profile, plan and role changes to the target user.
func (s *AdminService) UpdateUser(ctx context.Context, id string, req healthsdk.AdminUserUpdateRequest) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if err := applyProfile(&u, req.Name, req.Email, req.Gender, req.BirthDate, now); err != nil {
		return domain.User{}, err
	}
	if req.Plan != nil {
		if !req.Plan.Valid() {
			return domain.User{}, healthx.Invalid("plan", "plan must be Free or Pro")
		}
		u.Plan = domain.Plan(*req.Plan)
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return domain.User{}, healthx.Invalid("role", "role must be user or admin")
		}
		u.Role = domain.Role(*req.Role)
	}

	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return u, nil
}

// DeleteUser removes the user along with every log and goal they own, then
// revokes their tokens.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	err := s.Store.WithTx(ctx, func(tx store.Repos) error {
		if _, err := tx.Users().GetUserByID(ctx, id); err != nil {
			return err
		}
		if err := tx.BMILogs().DeleteBMILogsForUser(ctx, id); err != nil {
			return err
		}
		if err := tx.BMRLogs().DeleteBMRLogsForUser(ctx, id); err != nil {
			return err
		}
		if err := tx.HeartRateLogs().DeleteHeartRateLogsForUser(ctx, id); err != nil {
			return err
		}
		if err := tx.WaterLogs().DeleteWaterLogsForUser(ctx, id); err != nil {
			return err
		}
		if err := tx.WaterGoals().DeleteWaterGoal(ctx, id); err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	revoked := s.Tokens.RevokeUser(id)
	slogx.FromContext(ctx).Info("user deleted", "user_id", id, "revoked_tokens", revoked)
	return nil
}
