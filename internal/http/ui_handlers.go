package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/domain/model"
	apperrors "github.com/staffdesk/ui-gateway/internal/errors"
	"github.com/staffdesk/ui-gateway/internal/service"
)

// QueriesService defines the cached backend operations the screens need.
type QueriesService interface {
	Employees(ctx context.Context) ([]model.Employee, error)
	TeamMembers(ctx context.Context, managerID int64) ([]model.Employee, error)
	AllAttendance(ctx context.Context) ([]model.AttendanceRecord, error)
	OwnAttendance(ctx context.Context, userID int64) ([]model.AttendanceRecord, error)
	CreateEmployee(ctx context.Context, req model.CreateEmployeeRequest) error
	AddTeamMember(ctx context.Context, managerID, employeeID int64) error
	SubmitAttendance(ctx context.Context, userID int64, sub model.AttendanceSubmission) error
	AssignRole(ctx context.Context, req model.AssignRoleRequest) error
}

var _ QueriesService = (*service.QueryService)(nil)

// UIHandlers provides the server-rendered screens behind the session guard.
type UIHandlers struct {
	Queries  QueriesService
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// sessionUser returns the guarded request's user. The guard guarantees both
// session and user are present on these routes.
func sessionUser(r *http.Request) (*domainauth.Session, *domainauth.User) {
	sess := GetSessionFromContext(r.Context())
	return sess, sess.User
}

// loadError maps a failed backend read to a presentable message.
// Unauthorized errors are left for the guard to catch on the redirect that
// follows the forced logout.
func (h *UIHandlers) loadError(err error) string {
	return apperrors.UserMessage(err, "Could not load data from the employee service")
}

type dashboardData struct {
	basePageData
	Role string
}

// Dashboard renders the landing screen every authenticated role shares.
// GET /dashboard.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, user := sessionUser(r)
	data := dashboardData{
		basePageData: newBasePageData("Dashboard", sess),
		Role:         user.Role.Label(),
	}
	_ = h.Renderer.Render(w, "dashboard.tmpl", data)
}
