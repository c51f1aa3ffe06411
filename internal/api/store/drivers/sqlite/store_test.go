package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
	"github.com/aussiebroadwan/healthmate/internal/api/store"
	"github.com/aussiebroadwan/healthmate/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/healthmate/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "api.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newUser(email string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Name:         "Lan",
		Email:        email,
		PasswordHash: "$argon2id$stub",
		Gender:       "female",
		BirthDate:    "1995-01-01",
		Plan:         domain.PlanFree,
		Role:         domain.RoleUser,
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	lan := newUser("lan@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, lan))

	t.Run("duplicate email", func(t *testing.T) {
		err := s.Users().CreateUser(ctx, newUser("lan@example.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookup", func(t *testing.T) {
		got, err := s.Users().GetUserByEmail(ctx, "lan@example.com")
		require.NoError(t, err)
		require.Equal(t, lan.ID, got.ID)
		require.Equal(t, domain.PlanFree, got.Plan)
		require.Nil(t, got.AgeOverride)
		require.False(t, got.CreatedAt.IsZero())

		_, err = s.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		age := 31
		lan.Plan = domain.PlanPro
		lan.AgeOverride = &age
		require.NoError(t, s.Users().UpdateUser(ctx, lan))

		got, err := s.Users().GetUserByID(ctx, lan.ID)
		require.NoError(t, err)
		require.Equal(t, domain.PlanPro, got.Plan)
		require.Equal(t, 31, *got.AgeOverride)

		other := newUser("minh@example.com")
		require.NoError(t, s.Users().CreateUser(ctx, other))
		other.Email = "lan@example.com"
		require.ErrorIs(t, s.Users().UpdateUser(ctx, other), store.ErrAlreadyExists)

		ghost := newUser("ghost@example.com")
		require.ErrorIs(t, s.Users().UpdateUser(ctx, ghost), store.ErrNotFound)
	})

	t.Run("password and count", func(t *testing.T) {
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, lan.ID, "$argon2id$other"))
		got, err := s.Users().GetUserByID(ctx, lan.ID)
		require.NoError(t, err)
		require.Equal(t, "$argon2id$other", got.PasswordHash)

		n, err := s.Users().CountUsers(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, n)

		all, err := s.Users().ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})
}

func TestLogsNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := newUser("lan@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := range 5 {
		at := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.BMILogs().CreateBMILog(ctx, domain.BMILog{
			ID: idx.NewAt(at).String(), UserID: u.ID, Height: 170, Weight: 60 + float64(i), BMI: 20.8, CreatedAt: at,
		}))
		require.NoError(t, s.WaterLogs().CreateWaterLog(ctx, domain.WaterLog{
			ID: idx.NewAt(at).String(), UserID: u.ID, Amount: 100 * (i + 1), CreatedAt: at,
		}))
	}

	bmi, err := s.BMILogs().ListBMILogs(ctx, u.ID, 3)
	require.NoError(t, err)
	require.Len(t, bmi, 3)
	require.Equal(t, 64.0, bmi[0].Weight)
	require.True(t, bmi[0].CreatedAt.After(bmi[1].CreatedAt))

	water, err := s.WaterLogs().ListWaterLogs(ctx, u.ID, 200)
	require.NoError(t, err)
	require.Len(t, water, 5)
	require.Equal(t, 500, water[0].Amount)

	empty, err := s.BMRLogs().ListBMRLogs(ctx, u.ID, 30)
	require.NoError(t, err)
	require.Empty(t, empty)
	require.NotNil(t, empty)
}

func TestWaterGoalUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := newUser("lan@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	_, err := s.WaterGoals().GetWaterGoal(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WaterGoals().UpsertWaterGoal(ctx, domain.WaterGoal{UserID: u.ID, Goal: 2500}))
	require.NoError(t, s.WaterGoals().UpsertWaterGoal(ctx, domain.WaterGoal{UserID: u.ID, Goal: 1800}))

	g, err := s.WaterGoals().GetWaterGoal(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 1800, g.Goal)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Repos) error {
		require.NoError(t, tx.Users().CreateUser(ctx, newUser("rollback@example.com")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByEmail(ctx, "rollback@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Repos) error {
		return tx.Users().CreateUser(ctx, newUser("commit@example.com"))
	}))
	_, err = s.Users().GetUserByEmail(ctx, "commit@example.com")
	require.NoError(t, err)
}

func TestTrimPerUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a := newUser("a@example.com")
	b := newUser("b@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, a))
	require.NoError(t, s.Users().CreateUser(ctx, b))

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := range 6 {
		at := base.Add(time.Duration(i) * time.Minute)
		for _, u := range []domain.User{a, b} {
			require.NoError(t, s.WaterLogs().CreateWaterLog(ctx, domain.WaterLog{
				ID: idx.NewAt(at).String(), UserID: u.ID, Amount: i + 1, CreatedAt: at,
			}))
		}
	}

	removed, err := s.WaterLogs().TrimWaterLogs(ctx, 4)
	require.NoError(t, err)
	require.EqualValues(t, 4, removed)

	for _, u := range []domain.User{a, b} {
		logs, err := s.WaterLogs().ListWaterLogs(ctx, u.ID, 100)
		require.NoError(t, err)
		require.Len(t, logs, 4)
		require.Equal(t, 6, logs[0].Amount)
		require.Equal(t, 3, logs[3].Amount)
	}
}
