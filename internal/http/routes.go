package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions *service.SessionManager
	Queries  *service.QueryService
	Renderer *TemplateRenderer

	CookieName   string
	CookieDomain string
	IsDev        bool
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router. Every screen route is
// wrapped in a guard that re-evaluates the session and role on each request.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	guardOpts := GuardOptions{
		Sessions:   services.Sessions,
		CookieName: services.CookieName,
	}

	authHandlers := &AuthHandlers{
		Svc:           services.Sessions,
		Renderer:      services.Renderer,
		CookieName:    services.CookieName,
		CookieDomain:  services.CookieDomain,
		SecureCookies: !services.IsDev,
		Logger:        logger,
	}
	ui := &UIHandlers{
		Queries:  services.Queries,
		Renderer: services.Renderer,
		Logger:   logger,
	}

	// Auth screens are only for signed-out visitors.
	guest := RedirectIfAuthenticated(guardOpts)
	mux.Handle("GET /auth/login", guest(http.HandlerFunc(authHandlers.LoginForm)))
	mux.Handle("POST /auth/login", guest(http.HandlerFunc(authHandlers.Login)))
	mux.Handle("GET /auth/register", guest(http.HandlerFunc(authHandlers.RegisterForm)))
	mux.Handle("POST /auth/register", guest(http.HandlerFunc(authHandlers.Register)))
	mux.Handle("POST /auth/logout", http.HandlerFunc(authHandlers.Logout))

	// Screen routes, each behind its role gate.
	anyRole := RequireRoles(guardOpts)
	managerOnly := RequireRoles(guardOpts, domainauth.RoleManager)
	adminOnly := RequireRoles(guardOpts, domainauth.RoleAdmin)
	selfAttendance := RequireRoles(guardOpts, domainauth.RoleManager, domainauth.RoleEmployee)
	attendance := RequireRoles(guardOpts,
		domainauth.RoleAdmin, domainauth.RoleManager, domainauth.RoleHR, domainauth.RoleEmployee)

	mux.Handle("GET /dashboard", anyRole(http.HandlerFunc(ui.Dashboard)))
	mux.Handle("GET /team", managerOnly(http.HandlerFunc(ui.TeamList)))
	mux.Handle("POST /team", managerOnly(http.HandlerFunc(ui.TeamAdd)))
	mux.Handle("GET /attendance", attendance(http.HandlerFunc(ui.AttendanceList)))
	mux.Handle("GET /self-attendance", selfAttendance(http.HandlerFunc(ui.SelfAttendance)))
	mux.Handle("POST /self-attendance", selfAttendance(http.HandlerFunc(ui.SelfAttendanceSubmit)))
	mux.Handle("GET /admin/employees", adminOnly(http.HandlerFunc(ui.EmployeeList)))
	mux.Handle("POST /admin/employees", adminOnly(http.HandlerFunc(ui.EmployeeCreate)))
	mux.Handle("GET /roles", adminOnly(http.HandlerFunc(ui.RoleList)))
	mux.Handle("POST /roles", adminOnly(http.HandlerFunc(ui.RoleAssign)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Unknown paths land on the dashboard; the guard sorts out whether that
	// means the screen or the login page.
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
	}))

	return mux
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
