package domain

import "time"

type Plan string

const (
	PlanFree Plan = "Free"
	PlanPro  Plan = "Pro"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string
	Name         string
	Email        string // normalized: trimmed + lowercase
	PasswordHash string // argon2 encoded
	Gender       string
	BirthDate    string // YYYY-MM-DD, may be empty
	AgeOverride  *int   // explicit age when no birth date is known
	Plan         Plan
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
