package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
)

type waterLogsRepo struct {
	db DBTX
}

func (r *waterLogsRepo) CreateWaterLog(ctx context.Context, l domain.WaterLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO water_logs (id, user_id, amount, created_at) VALUES (?, ?, ?, ?)`,
		l.ID, l.UserID, l.Amount, l.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *waterLogsRepo) ListWaterLogs(ctx context.Context, userID string, limit int) ([]domain.WaterLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, amount, created_at
		FROM water_logs WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.WaterLog{}
	for rows.Next() {
		var l domain.WaterLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Amount, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *waterLogsRepo) DeleteWaterLogsForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM water_logs WHERE user_id = ?`, userID)
	return err
}

type waterGoalsRepo struct {
	db DBTX
}

func (r *waterGoalsRepo) GetWaterGoal(ctx context.Context, userID string) (domain.WaterGoal, error) {
	var g domain.WaterGoal
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, goal, updated_at FROM water_goals WHERE user_id = ?`, userID,
	).Scan(&g.UserID, &g.Goal, &g.UpdatedAt)
	if err != nil {
		return domain.WaterGoal{}, mapNotFound(err)
	}
	return g, nil
}

func (r *waterGoalsRepo) UpsertWaterGoal(ctx context.Context, g domain.WaterGoal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO water_goals (user_id, goal, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET goal = excluded.goal, updated_at = excluded.updated_at`,
		g.UserID, g.Goal, time.Now().UTC(),
	)
	return err
}

func (r *waterGoalsRepo) DeleteWaterGoal(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM water_goals WHERE user_id = ?`, userID)
	return err
}

func (r *waterLogsRepo) TrimWaterLogs(ctx context.Context, keep int) (int64, error) {
	return trimPerUser(ctx, r.db, "water_logs", keep)
}
