package healthsdk

import "time"

// ============================================================================
// Internal Response Types
// ============================================================================

// ErrorResponse is the superset of error bodies the gateway understands.
type ErrorResponse struct {
	Error            string `json:"error"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Identity Types
// ============================================================================

// Plan is the subscription tier of an account.
type Plan string

const (
	PlanFree Plan = "Free"
	PlanPro  Plan = "Pro"
)

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool { return p == PlanFree || p == PlanPro }

// Role gates admin operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// User is an identity as the API exposes it. Secrets never appear here.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	// Age is derived from BirthDate unless an explicit override was given.
	Age  *int `json:"age,omitempty"`
	Plan Plan `json:"plan"`
	Role Role `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// MeResponse is returned by GET /api/auth/me. Users is only populated for
// admins.
type MeResponse struct {
	User  User   `json:"user"`
	Users []User `json:"users,omitempty"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User User `json:"user"`
}

// UsersResponse wraps the admin roster.
type UsersResponse struct {
	Users []User `json:"users"`
}

// ProfileUpdateRequest carries only the fields being changed.
type ProfileUpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
	Age       *int    `json:"age,omitempty"`
}

// PasswordChangeRequest is the body of PUT /api/security/password.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AdminUserUpdateRequest is the body of PUT /api/admin/users/{id}.
type AdminUserUpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
	Plan      *Plan   `json:"plan,omitempty"`
	Role      *Role   `json:"role,omitempty"`
}

// ============================================================================
// Metric Types
// ============================================================================

// BMIRequest is one BMI measurement.
type BMIRequest struct {
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Age    int     `json:"age,omitempty"`
	Gender string  `json:"gender,omitempty"`
}

// BMIEntry is a stored BMI reading.
type BMIEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	BMI       float64   `json:"bmi"`
	Height    float64   `json:"height"`
	Weight    float64   `json:"weight"`
	Age       int       `json:"age,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Date      string    `json:"date"`
}

// BMRRequest is one BMR/TDEE calculation.
type BMRRequest struct {
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	Activity float64 `json:"activity"`
}

// BMREntry is a stored BMR calculation.
type BMREntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	BMR           int       `json:"bmr"`
	TDEE          int       `json:"tdee"`
	Age           int       `json:"age"`
	Height        float64   `json:"height"`
	Weight        float64   `json:"weight"`
	Gender        string    `json:"gender"`
	Activity      float64   `json:"activity"`
	ActivityLabel string    `json:"activityLabel"`
	CreatedAt     time.Time `json:"createdAt"`
	Date          string    `json:"date"`
}

// HeartRateRequest is one target heart rate calculation.
type HeartRateRequest struct {
	Age              int `json:"age"`
	RestingHeartRate int `json:"restingHeartRate"`
}

// HeartRateEntry is a stored heart rate calculation.
type HeartRateEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Age       int       `json:"age"`
	BPM       int       `json:"bpm"`
	Max       int       `json:"max"`
	Moderate  string    `json:"moderate"`
	Vigorous  string    `json:"vigorous"`
	Zone      string    `json:"zone"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"createdAt"`
	Date      string    `json:"date"`
}

// LogResponse is returned by the metric endpoints. Latest is set on writes.
type LogResponse[E any] struct {
	Latest *E  `json:"latest,omitempty"`
	Logs   []E `json:"logs"`
}

// ============================================================================
// Water Types
// ============================================================================

// WaterLogRequest is the body of POST /api/water/logs.
type WaterLogRequest struct {
	Amount int `json:"amount"`
}

// WaterEntry is one drink.
type WaterEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Amount    int       `json:"amount"`
	Time      string    `json:"time"` // HH:MM
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"createdAt"`
}

// WaterTotals are intake sums for the current day, week and month.
type WaterTotals struct {
	Day   int `json:"day"`
	Week  int `json:"week"`
	Month int `json:"month"`
}

// WaterSummary is returned by GET /api/water/summary.
type WaterSummary struct {
	Goal   int          `json:"goal"`
	Logs   []WaterEntry `json:"logs"`
	Totals WaterTotals  `json:"totals"`
}

// WaterLogResponse is returned by POST /api/water/logs.
type WaterLogResponse struct {
	Entry WaterEntry   `json:"entry"`
	Logs  []WaterEntry `json:"logs"`
}

// WaterGoalRequest is the body of PUT /api/water/goal.
type WaterGoalRequest struct {
	Goal int `json:"goal"`
}

// WaterGoalResponse echoes the stored goal.
type WaterGoalResponse struct {
	Goal int `json:"goal"`
}

// ============================================================================
// Misc Types
// ============================================================================

// Tool is one entry of the tools listing.
type Tool struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Badge       string `json:"badge"`
}

// ToolsResponse is returned by GET /api/tools.
type ToolsResponse struct {
	Tools []Tool `json:"tools"`
}

// HealthResponse is returned by the health probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports dependency state on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
