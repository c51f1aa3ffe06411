package session

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
)

// Seed is an account installed into an empty roster so the client can be
// used with no server at all.
type Seed struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Gender    string
	BirthDate string
	Plan      healthsdk.Plan
	Role      healthsdk.Role
}

var DefaultSeeds = []Seed{
	{ID: "seed-lan", Name: "Lan", Email: "lan@example.com", Password: "Health@123", Gender: "female", BirthDate: "1995-01-01", Plan: healthsdk.PlanFree, Role: healthsdk.RoleUser},
	{ID: "seed-minh", Name: "Minh", Email: "minh@example.com", Password: "Health@123", Gender: "male", BirthDate: "1992-02-02", Plan: healthsdk.PlanPro, Role: healthsdk.RoleUser},
	{ID: "seed-an", Name: "An", Email: "an@example.com", Password: "Health@123", Gender: "female", BirthDate: "1998-03-03", Plan: healthsdk.PlanFree, Role: healthsdk.RoleUser},
	{ID: "seed-admin", Name: "Admin", Email: "admin@healthmate.dev", Password: "Admin@123", Gender: "male", BirthDate: "1990-01-01", Plan: healthsdk.PlanPro, Role: healthsdk.RoleAdmin},
}

// seedRoster fills an empty roster. It returns the number of accounts
// written, which is zero when the roster already has entries.
func seedRoster(ctx context.Context, r *Roster, seeds []Seed) (int, error) {
	list, err := r.Load(ctx)
	if err != nil {
		return 0, err
	}
	if len(list) > 0 {
		return 0, nil
	}

	for _, s := range seeds {
		hash, err := cryptox.HashPassword(s.Password)
		if err != nil {
			return 0, fmt.Errorf("hash seed %s: %w", s.Email, err)
		}
		list = append(list, Account{
			User: healthsdk.User{
				ID:        s.ID,
				Name:      s.Name,
				Email:     s.Email,
				Gender:    s.Gender,
				BirthDate: s.BirthDate,
				Plan:      s.Plan,
				Role:      s.Role,
			},
			PasswordSecret: hash,
		})
	}
	return len(seeds), r.Save(ctx, list)
}
