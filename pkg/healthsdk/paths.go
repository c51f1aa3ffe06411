package healthsdk

import "net/url"

// API routes.
const (
	PathHealth        = "/api/health"
	PathTools         = "/api/tools"
	PathRegister      = "/api/auth/register"
	PathLogin         = "/api/auth/login"
	PathLogout        = "/api/auth/logout"
	PathMe            = "/api/auth/me"
	PathProfile       = "/api/profile"
	PathPassword      = "/api/security/password"
	PathBMI           = "/api/metrics/bmi"
	PathBMR           = "/api/metrics/bmr"
	PathHeartRate     = "/api/metrics/heart-rate"
	PathWaterSummary  = "/api/water/summary"
	PathWaterLogs     = "/api/water/logs"
	PathWaterGoal     = "/api/water/goal"
	PathAdminUsers    = "/api/admin/users"
	PathAdminUserByID = "/api/admin/users/{id}"
)

// AdminUserPath returns the route for one user.
func AdminUserPath(id string) string {
	return PathAdminUsers + "/" + url.PathEscape(id)
}
