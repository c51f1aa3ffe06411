package sqlite

import (
	"context"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
)

type bmiLogsRepo struct {
	db DBTX
}

func (r *bmiLogsRepo) CreateBMILog(ctx context.Context, l domain.BMILog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bmi_logs (id, user_id, height, weight, bmi, age, gender, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Height, l.Weight, l.BMI, l.Age, l.Gender, l.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *bmiLogsRepo) ListBMILogs(ctx context.Context, userID string, limit int) ([]domain.BMILog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, height, weight, bmi, age, gender, created_at
		FROM bmi_logs WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.BMILog{}
	for rows.Next() {
		var l domain.BMILog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Height, &l.Weight, &l.BMI, &l.Age, &l.Gender, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *bmiLogsRepo) DeleteBMILogsForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bmi_logs WHERE user_id = ?`, userID)
	return err
}

type bmrLogsRepo struct {
	db DBTX
}

func (r *bmrLogsRepo) CreateBMRLog(ctx context.Context, l domain.BMRLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bmr_logs (id, user_id, height, weight, age, gender, activity, bmr, tdee, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Height, l.Weight, l.Age, l.Gender, l.Activity, l.BMR, l.TDEE, l.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *bmrLogsRepo) ListBMRLogs(ctx context.Context, userID string, limit int) ([]domain.BMRLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, height, weight, age, gender, activity, bmr, tdee, created_at
		FROM bmr_logs WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.BMRLog{}
	for rows.Next() {
		var l domain.BMRLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Height, &l.Weight, &l.Age, &l.Gender,
			&l.Activity, &l.BMR, &l.TDEE, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *bmrLogsRepo) DeleteBMRLogsForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bmr_logs WHERE user_id = ?`, userID)
	return err
}

type heartRateLogsRepo struct {
	db DBTX
}

func (r *heartRateLogsRepo) CreateHeartRateLog(ctx context.Context, l domain.HeartRateLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO heart_rate_logs (id, user_id, age, resting_bpm, max_bpm, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Age, l.RestingBPM, l.MaxBPM, l.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *heartRateLogsRepo) ListHeartRateLogs(ctx context.Context, userID string, limit int) ([]domain.HeartRateLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, age, resting_bpm, max_bpm, created_at
		FROM heart_rate_logs WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.HeartRateLog{}
	for rows.Next() {
		var l domain.HeartRateLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Age, &l.RestingBPM, &l.MaxBPM, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *heartRateLogsRepo) DeleteHeartRateLogsForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM heart_rate_logs WHERE user_id = ?`, userID)
	return err
}

func (r *bmiLogsRepo) TrimBMILogs(ctx context.Context, keep int) (int64, error) {
	return trimPerUser(ctx, r.db, "bmi_logs", keep)
}

func (r *bmrLogsRepo) TrimBMRLogs(ctx context.Context, keep int) (int64, error) {
	return trimPerUser(ctx, r.db, "bmr_logs", keep)
}

func (r *heartRateLogsRepo) TrimHeartRateLogs(ctx context.Context, keep int) (int64, error) {
	return trimPerUser(ctx, r.db, "heart_rate_logs", keep)
}
