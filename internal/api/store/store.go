package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Repos groups the per-table repositories. Both the Store and the view
// passed to WithTx satisfy it.
type Repos interface {
	Users() Users
	BMILogs() BMILogs
	BMRLogs() BMRLogs
	HeartRateLogs() HeartRateLogs
	WaterLogs() WaterLogs
	WaterGoals() WaterGoals
}

// Store is the root data access interface implemented by each driver.
type Store interface {
	Repos

	ApplyMigrations() error

	// WithTx runs fn against repos bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Repos) error) error

	Close() error
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up a normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns every user, oldest first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user. Returns ErrAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser rewrites the profile, plan and role columns and bumps
	// updated_at. Returns ErrAlreadyExists on a duplicate email.
	UpdateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser removes the user row.
	DeleteUser(ctx context.Context, userID string) error

	// CountUsers returns the number of users.
	CountUsers(ctx context.Context) (int, error)
}

type BMILogs interface {
	CreateBMILog(ctx context.Context, l domain.BMILog) error
	// ListBMILogs returns up to limit entries, newest first.
	ListBMILogs(ctx context.Context, userID string, limit int) ([]domain.BMILog, error)
	DeleteBMILogsForUser(ctx context.Context, userID string) error
	// TrimBMILogs keeps the newest keep entries per user and reports how
	// many rows were removed.
	TrimBMILogs(ctx context.Context, keep int) (int64, error)
}

type BMRLogs interface {
	CreateBMRLog(ctx context.Context, l domain.BMRLog) error
	// ListBMRLogs returns up to limit entries, newest first.
	ListBMRLogs(ctx context.Context, userID string, limit int) ([]domain.BMRLog, error)
	DeleteBMRLogsForUser(ctx context.Context, userID string) error
	// TrimBMRLogs keeps the newest keep entries per user and reports how
	// many rows were removed.
	TrimBMRLogs(ctx context.Context, keep int) (int64, error)
}

type HeartRateLogs interface {
	CreateHeartRateLog(ctx context.Context, l domain.HeartRateLog) error
	// ListHeartRateLogs returns up to limit entries, newest first.
	ListHeartRateLogs(ctx context.Context, userID string, limit int) ([]domain.HeartRateLog, error)
	DeleteHeartRateLogsForUser(ctx context.Context, userID string) error
	// TrimHeartRateLogs keeps the newest keep entries per user and reports how
	// many rows were removed.
	TrimHeartRateLogs(ctx context.Context, keep int) (int64, error)
}

type WaterLogs interface {
	CreateWaterLog(ctx context.Context, l domain.WaterLog) error
	// ListWaterLogs returns up to limit entries, newest first.
	ListWaterLogs(ctx context.Context, userID string, limit int) ([]domain.WaterLog, error)
	DeleteWaterLogsForUser(ctx context.Context, userID string) error
	// TrimWaterLogs keeps the newest keep entries per user and reports how
	// many rows were removed.
	TrimWaterLogs(ctx context.Context, keep int) (int64, error)
}

type WaterGoals interface {
	// GetWaterGoal returns ErrNotFound when the user never set a goal.
	GetWaterGoal(ctx context.Context, userID string) (domain.WaterGoal, error)
	UpsertWaterGoal(ctx context.Context, g domain.WaterGoal) error
	DeleteWaterGoal(ctx context.Context, userID string) error
}
