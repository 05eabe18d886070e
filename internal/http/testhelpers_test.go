package httpx

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	domainauth "github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/domain/model"
	"github.com/staffdesk/ui-gateway/internal/ports"
	"github.com/staffdesk/ui-gateway/internal/service"
)

// newTestRenderer parses the real templates from disk.
func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS("../../web/templates"),
		Logger:     slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)
	return renderer
}

// fakeSessions is a hand-written AuthService and SessionResolver double.
type fakeSessions struct {
	sessions map[string]domainauth.Session

	loginResult    service.LoginResult
	registerResult service.Result
	loggedOut      []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]domainauth.Session)}
}

func (f *fakeSessions) add(sess domainauth.Session) {
	f.sessions[sess.ID] = sess
}

func (f *fakeSessions) Login(_ context.Context, _, _ string) service.LoginResult {
	return f.loginResult
}

func (f *fakeSessions) Register(_ context.Context, _, _, _ string) service.Result {
	return f.registerResult
}

func (f *fakeSessions) Logout(_ context.Context, sessionID string) {
	f.loggedOut = append(f.loggedOut, sessionID)
	delete(f.sessions, sessionID)
}

func (f *fakeSessions) Resolve(_ context.Context, sessionID string) (domainauth.Session, error) {
	sess, ok := f.sessions[sessionID]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

// fakeQueries is a hand-written QueriesService double.
type fakeQueries struct {
	employees  []model.Employee
	team       []model.Employee
	attendance []model.AttendanceRecord
	own        []model.AttendanceRecord
	err        error

	created     []model.CreateEmployeeRequest
	teamAdds    [][2]int64
	submissions []model.AttendanceSubmission
	assignments []model.AssignRoleRequest
}

func (f *fakeQueries) Employees(_ context.Context) ([]model.Employee, error) {
	return f.employees, f.err
}

func (f *fakeQueries) TeamMembers(_ context.Context, _ int64) ([]model.Employee, error) {
	return f.team, f.err
}

func (f *fakeQueries) AllAttendance(_ context.Context) ([]model.AttendanceRecord, error) {
	return f.attendance, f.err
}

func (f *fakeQueries) OwnAttendance(_ context.Context, _ int64) ([]model.AttendanceRecord, error) {
	return f.own, f.err
}

func (f *fakeQueries) CreateEmployee(_ context.Context, req model.CreateEmployeeRequest) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, req)
	return nil
}

func (f *fakeQueries) AddTeamMember(_ context.Context, managerID, employeeID int64) error {
	if f.err != nil {
		return f.err
	}
	f.teamAdds = append(f.teamAdds, [2]int64{managerID, employeeID})
	return nil
}

func (f *fakeQueries) SubmitAttendance(_ context.Context, _ int64, sub model.AttendanceSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.submissions = append(f.submissions, sub)
	return nil
}

func (f *fakeQueries) AssignRole(_ context.Context, req model.AssignRoleRequest) error {
	if f.err != nil {
		return f.err
	}
	f.assignments = append(f.assignments, req)
	return nil
}

func sessionFor(role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		ID:    "sess-" + string(role),
		Token: "tok",
		User:  &domainauth.User{ID: 7, Name: "Ada Park", Email: "ada@example.com", Role: role},
	}
}
