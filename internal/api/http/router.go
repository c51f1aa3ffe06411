package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
	"github.com/aussiebroadwan/healthmate/internal/api/service"
	"github.com/aussiebroadwan/healthmate/internal/api/store"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/httpx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"

	_ "github.com/aussiebroadwan/healthmate/api/healthmate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// Limits must be set before ApplyRoutes.
	Limits httpx.Limits

	store          store.Store
	TokenService   *service.TokenService
	AccountService *service.AccountService
	MetricService  *service.MetricService
	WaterService   *service.WaterService
	AdminService   *service.AdminService
	ToolService    *service.ToolService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits:       httpx.DefaultLimits(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerMetrics()
	r.registerWater()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			HealthMate API
//	@version		0.1.0
//	@description	Accounts, BMI/BMR/heart rate history and hydration tracking for the HealthMate client.
//	@description
//	@description				Tokens are opaque and held in memory by the server. They do not expire but are lost on restart.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/healthmate
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication and a per-user rate limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimit, extra ...httpx.Middleware) http.Handler {
	mws := append([]httpx.Middleware{
		httpx.AuthnMiddleware(r.TokenService),
	}, extra...)
	mws = append(mws, httpx.PerAccount(limit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AccountService: r.AccountService}

	// Login is keyed by address and email so one noisy caller cannot lock out others.
	r.Mux.Handle("POST "+healthsdk.PathRegister,
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.PerIP(r.Limits.Credential),
		),
	)
	r.Mux.Handle("POST "+healthsdk.PathLogin,
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.PerIPAndEmail(r.Limits.Credential),
		),
	)

	r.Mux.Handle("POST "+healthsdk.PathLogout, r.secured(h.HandleLogout, r.Limits.Write))
	r.Mux.Handle("GET "+healthsdk.PathMe, r.secured(h.HandleMe, r.Limits.Read))
}

func (r *Router) registerProfile() {
	h := &AuthHandler{AccountService: r.AccountService}

	r.Mux.Handle("PUT "+healthsdk.PathProfile, r.secured(h.HandleUpdateProfile, r.Limits.Write))
	r.Mux.Handle("PUT "+healthsdk.PathPassword, r.secured(h.HandleChangePassword, r.Limits.Credential))
}

func (r *Router) registerMetrics() {
	h := &MetricsHandler{MetricService: r.MetricService, Location: r.WaterService.Location}

	r.Mux.Handle("POST "+healthsdk.PathBMI, r.secured(h.HandleRecordBMI, r.Limits.Write))
	r.Mux.Handle("GET "+healthsdk.PathBMI, r.secured(h.HandleListBMI, r.Limits.Read))
	r.Mux.Handle("POST "+healthsdk.PathBMR, r.secured(h.HandleRecordBMR, r.Limits.Write))
	r.Mux.Handle("GET "+healthsdk.PathBMR, r.secured(h.HandleListBMR, r.Limits.Read))
	r.Mux.Handle("POST "+healthsdk.PathHeartRate, r.secured(h.HandleRecordHeartRate, r.Limits.Write))
	r.Mux.Handle("GET "+healthsdk.PathHeartRate, r.secured(h.HandleListHeartRate, r.Limits.Read))
}

func (r *Router) registerWater() {
	h := &WaterHandler{WaterService: r.WaterService}

	r.Mux.Handle("GET "+healthsdk.PathWaterSummary, r.secured(h.HandleSummary, r.Limits.Read))
	r.Mux.Handle("POST "+healthsdk.PathWaterLogs, r.secured(h.HandleAddLog, r.Limits.Write))
	r.Mux.Handle("PUT "+healthsdk.PathWaterGoal, r.secured(h.HandleSetGoal, r.Limits.Write))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}
	admin := httpx.RequireRole(string(domain.RoleAdmin))

	r.Mux.Handle("GET "+healthsdk.PathAdminUsers, r.secured(h.HandleList, r.Limits.Read, admin))
	r.Mux.Handle("PUT "+healthsdk.PathAdminUserByID, r.secured(h.HandleUpdate, r.Limits.Write, admin))
	r.Mux.Handle("DELETE "+healthsdk.PathAdminUserByID, r.secured(h.HandleDelete, r.Limits.Write, admin))
}

func (r *Router) registerSystem() {
	// Probes may be polled frequently.
	livez := LivezHandler(r.startTime, r.buildVersion)
	r.Mux.Handle("GET /livez", httpx.Chain(livez, httpx.PerIP(r.Limits.Probe)))
	r.Mux.Handle("GET "+healthsdk.PathHealth, httpx.Chain(livez, httpx.PerIP(r.Limits.Probe)))
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.PerIP(r.Limits.Probe),
		),
	)

	r.Mux.Handle("GET "+healthsdk.PathTools,
		httpx.Chain(ToolsHandler(r.ToolService),
			httpx.PerIP(r.Limits.Probe),
		),
	)
}
