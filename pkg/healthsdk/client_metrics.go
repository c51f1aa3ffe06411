package healthsdk

import (
	"context"
	"net/http"
)

// RecordBMI stores a BMI reading and returns the caller's updated log.
func (c *Client) RecordBMI(ctx context.Context, req BMIRequest) (LogResponse[BMIEntry], Result) {
	return Call[LogResponse[BMIEntry]](ctx, c, http.MethodPost, PathBMI, req)
}

// ListBMI returns the caller's BMI log, newest first.
func (c *Client) ListBMI(ctx context.Context) (LogResponse[BMIEntry], Result) {
	return Call[LogResponse[BMIEntry]](ctx, c, http.MethodGet, PathBMI, nil)
}

// RecordBMR stores a BMR calculation and returns the caller's updated log.
func (c *Client) RecordBMR(ctx context.Context, req BMRRequest) (LogResponse[BMREntry], Result) {
	return Call[LogResponse[BMREntry]](ctx, c, http.MethodPost, PathBMR, req)
}

// ListBMR returns the caller's BMR log, newest first.
func (c *Client) ListBMR(ctx context.Context) (LogResponse[BMREntry], Result) {
	return Call[LogResponse[BMREntry]](ctx, c, http.MethodGet, PathBMR, nil)
}

// RecordHeartRate stores a heart rate calculation and returns the updated log.
func (c *Client) RecordHeartRate(ctx context.Context, req HeartRateRequest) (LogResponse[HeartRateEntry], Result) {
	return Call[LogResponse[HeartRateEntry]](ctx, c, http.MethodPost, PathHeartRate, req)
}

// ListHeartRate returns the caller's heart rate log, newest first.
func (c *Client) ListHeartRate(ctx context.Context) (LogResponse[HeartRateEntry], Result) {
	return Call[LogResponse[HeartRateEntry]](ctx, c, http.MethodGet, PathHeartRate, nil)
}

// WaterSummary returns the goal, recent logs and totals.
func (c *Client) WaterSummary(ctx context.Context) (WaterSummary, Result) {
	return Call[WaterSummary](ctx, c, http.MethodGet, PathWaterSummary, nil)
}

// AddWater logs one drink.
func (c *Client) AddWater(ctx context.Context, req WaterLogRequest) (WaterLogResponse, Result) {
	return Call[WaterLogResponse](ctx, c, http.MethodPost, PathWaterLogs, req)
}

// SetWaterGoal upserts the daily goal.
func (c *Client) SetWaterGoal(ctx context.Context, req WaterGoalRequest) (WaterGoalResponse, Result) {
	return Call[WaterGoalResponse](ctx, c, http.MethodPut, PathWaterGoal, req)
}
