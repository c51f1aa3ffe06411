package healthsdk

import (
	"context"
	"net/http"
)

// Health checks whether the API is up.
func (c *Client) Health(ctx context.Context) (HealthResponse, Result) {
	return Call[HealthResponse](ctx, c, http.MethodGet, PathHealth, nil)
}

// Tools returns the tool listing.
func (c *Client) Tools(ctx context.Context) (ToolsResponse, Result) {
	return Call[ToolsResponse](ctx, c, http.MethodGet, PathTools, nil)
}

// DefaultTools is shown when the tools listing cannot be fetched.
var DefaultTools = []Tool{
	{
		Icon:        "/data/BMI_new.png.webp",
		Title:       "BMI check",
		Description: "Instant BMI with WHO based classification and a suggested next step.",
		Link:        "/health-tracker",
		Badge:       "Weight",
	},
	{
		Icon:        "/data/BMR_new.png.webp",
		Title:       "BMR & TDEE",
		Description: "Mifflin-St Jeor energy needs with a daily calorie target for your goal.",
		Link:        "/bmr",
		Badge:       "Energy",
	},
	{
		Icon:        "/data/Target-Heart-Rate.png.webp",
		Title:       "Target heart rate",
		Description: "Training zones by age and intensity.",
		Link:        "/heart-rate",
		Badge:       "Cardio",
	},
}
