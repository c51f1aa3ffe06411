package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
	"github.com/aussiebroadwan/healthmate/internal/api/store"
	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/idx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

// SeedAccount is a demo account created on first start.
type SeedAccount struct {
	Name     string
	Email    string
	Password string
	Gender   string
	Plan     domain.Plan
	Role     domain.Role
}

// DefaultSeeds are the demo accounts shipped with the API.
var DefaultSeeds = []SeedAccount{
	{Name: "Lan", Email: "lan@example.com", Password: "Health@123", Gender: "female", Plan: domain.PlanFree, Role: domain.RoleUser},
	{Name: "Minh", Email: "minh@example.com", Password: "Health@123", Gender: "male", Plan: domain.PlanPro, Role: domain.RoleUser},
	{Name: "Admin", Email: "admin@healthmate.dev", Password: "Admin@123", Plan: domain.PlanPro, Role: domain.RoleAdmin},
}

// SeedService inserts missing seed accounts. Existing emails are left alone.
type SeedService struct {
	Store store.Store
	Seeds []SeedAccount
}

// Run reports how many accounts were created.
func (s *SeedService) Run(ctx context.Context) (int, error) {
	seeds := s.Seeds
	if seeds == nil {
		seeds = DefaultSeeds
	}

	log := slogx.FromContext(ctx)
	var created int
	for _, seed := range seeds {
		_, err := s.Store.Users().GetUserByEmail(ctx, seed.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return created, fmt.Errorf("lookup seed %s: %w", seed.Email, err)
		}

		hash, err := cryptox.HashPassword(seed.Password)
		if err != nil {
			return created, fmt.Errorf("hash seed password: %w", err)
		}

		err = s.Store.Users().CreateUser(ctx, domain.User{
			ID:           idx.New().String(),
			Name:         seed.Name,
			Email:        seed.Email,
			PasswordHash: hash,
			Gender:       seed.Gender,
			Plan:         seed.Plan,
			Role:         seed.Role,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("create seed %s: %w", seed.Email, err)
		}
		created++
		log.Info("seeded user", "email", seed.Email, "role", seed.Role)
	}
	return created, nil
}
