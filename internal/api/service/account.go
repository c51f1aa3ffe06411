package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
	"github.com/aussiebroadwan/healthmate/internal/api/store"
	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/idx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

// AccountService covers self-service identity operations.
type AccountService struct {
	Store  store.Store
	Tokens *TokenService
	Policy healthx.PasswordPolicy
	Now    func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates a Free user account and signs it in.
func (s *AccountService) Register(ctx context.Context, req healthsdk.RegisterRequest) (domain.User, string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = healthx.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return domain.User{}, "", ErrMissingFields
	}
	if err := healthx.CheckEmail(req.Email); err != nil {
		return domain.User{}, "", err
	}
	if err := s.Policy.Check(req.Password); err != nil {
		return domain.User{}, "", err
	}
	if req.BirthDate != "" {
		if err := healthx.CheckBirthDate(req.BirthDate, s.now()); err != nil {
			return domain.User{}, "", err
		}
	}
	if req.Gender != "" {
		if err := healthx.CheckGender(req.Gender); err != nil {
			return domain.User{}, "", err
		}
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Gender:       req.Gender,
		BirthDate:    req.BirthDate,
		Plan:         domain.PlanFree,
		Role:         domain.RoleUser,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailTaken
		}
		return domain.User{}, "", err
	}

	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u, token, nil
}

// Login verifies credentials and issues a token.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = healthx.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, "", ErrInvalidCredentials
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			slogx.FromContext(ctx).Error("stored password hash unusable", "user_id", u.ID, "err", err)
		}
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return u, token, nil
}

// Logout revokes the presented token.
func (s *AccountService) Logout(_ context.Context, token string) {
	s.Tokens.Revoke(token)
}

// Me returns the caller and, for admins, the full roster.
func (s *AccountService) Me(ctx context.Context, userID string) (domain.User, []domain.User, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.User{}, nil, err
	}
	if !u.IsAdmin() {
		return u, nil, nil
	}

	all, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return domain.User{}, nil, err
	}
	return u, all, nil
}

// UpdateProfile applies the non-nil fields of req to the caller.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, req healthsdk.ProfileUpdateRequest) (domain.User, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if err := applyProfile(&u, req.Name, req.Email, req.Gender, req.BirthDate, s.now()); err != nil {
		return domain.User{}, err
	}
	if req.Age != nil {
		if err := healthx.CheckAge(*req.Age); err != nil {
			return domain.User{}, err
		}
		u.AgeOverride = req.Age
	}

	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return u, nil
}

// ChangePassword verifies the current password and stores a new one.
func (s *AccountService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" || next == "" {
		return ErrMissingFields
	}

	u, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(current, u.PasswordHash); err != nil {
		return ErrWrongPassword
	}
	if err := s.Policy.Check(next); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Store.Users().UpdatePasswordHash(ctx, u.ID, hash)
}

func (s *AccountService) getUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// applyProfile validates and copies optional profile fields. Email
// collisions are left to the unique index.
func applyProfile(u *domain.User, name, email, gender, birthDate *string, now time.Time) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return healthx.Invalid("name", "name is required")
		}
		u.Name = n
	}
	if email != nil {
		e := healthx.NormalizeEmail(*email)
		if err := healthx.CheckEmail(e); err != nil {
			return err
		}
		u.Email = e
	}
	if gender != nil {
		if *gender != "" {
			if err := healthx.CheckGender(*gender); err != nil {
				return err
			}
		}
		u.Gender = *gender
	}
	if birthDate != nil {
		if *birthDate != "" {
			if err := healthx.CheckBirthDate(*birthDate, now); err != nil {
				return err
			}
		}
		if *birthDate != u.BirthDate {
			// A new birth date supersedes any explicit age.
			u.AgeOverride = nil
		}
		u.BirthDate = *birthDate
	}
	return nil
}
