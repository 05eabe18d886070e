package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/ui-gateway/internal/adapters/memcache"
	"github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/domain/model"
	apperrors "github.com/staffdesk/ui-gateway/internal/errors"
)

// fakeBackend is a hand-written double covering all three backend surfaces.
type fakeBackend struct {
	employees  []model.Employee
	team       []model.Employee
	attendance []model.AttendanceRecord
	own        []model.AttendanceRecord
	err        error

	listEmployeesCalls int
	listTeamCalls      int
	listAllCalls       int
	listOwnCalls       int
	created            []model.CreateEmployeeRequest
	teamAdds           [][2]int64
	submissions        []model.AttendanceSubmission
	assignments        []model.AssignRoleRequest
}

func (f *fakeBackend) ListEmployees(_ context.Context) ([]model.Employee, error) {
	f.listEmployeesCalls++
	return f.employees, f.err
}

func (f *fakeBackend) CreateEmployee(_ context.Context, req model.CreateEmployeeRequest) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, req)
	return nil
}

func (f *fakeBackend) AddTeamMember(_ context.Context, managerID, employeeID int64) error {
	if f.err != nil {
		return f.err
	}
	f.teamAdds = append(f.teamAdds, [2]int64{managerID, employeeID})
	return nil
}

func (f *fakeBackend) ListTeam(_ context.Context) ([]model.Employee, error) {
	f.listTeamCalls++
	return f.team, f.err
}

func (f *fakeBackend) SubmitAttendance(_ context.Context, sub model.AttendanceSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.submissions = append(f.submissions, sub)
	return nil
}

func (f *fakeBackend) ListAllAttendance(_ context.Context) ([]model.AttendanceRecord, error) {
	f.listAllCalls++
	return f.attendance, f.err
}

func (f *fakeBackend) ListOwnAttendance(_ context.Context) ([]model.AttendanceRecord, error) {
	f.listOwnCalls++
	return f.own, f.err
}

func (f *fakeBackend) AssignRole(_ context.Context, req model.AssignRoleRequest) error {
	if f.err != nil {
		return f.err
	}
	f.assignments = append(f.assignments, req)
	return nil
}

func newTestQueries(backend *fakeBackend) *QueryService {
	return NewQueryService(QueryServiceOptions{
		Admin:    backend,
		Employee: backend,
		Roles:    backend,
		Cache:    memcache.New(),
		TTL:      time.Minute,
		Logger:   slog.New(slog.DiscardHandler),
	})
}

func TestEmployeesCachesSecondRead(t *testing.T) {
	backend := &fakeBackend{employees: []model.Employee{
		{UserID: 1, Name: "Ada Park", Role: auth.RoleManager},
	}}
	svc := newTestQueries(backend)
	ctx := context.Background()

	first, err := svc.Employees(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Employees(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.listEmployeesCalls)
}

func TestEmployeesErrorNotCached(t *testing.T) {
	backend := &fakeBackend{err: apperrors.Transport("down")}
	svc := newTestQueries(backend)
	ctx := context.Background()

	_, err := svc.Employees(ctx)
	require.Error(t, err)

	backend.err = nil
	backend.employees = []model.Employee{{UserID: 1}}

	got, err := svc.Employees(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, backend.listEmployeesCalls)
}

func TestTeamCacheScopedPerManager(t *testing.T) {
	backend := &fakeBackend{team: []model.Employee{{UserID: 9}}}
	svc := newTestQueries(backend)
	ctx := context.Background()

	_, err := svc.TeamMembers(ctx, 4)
	require.NoError(t, err)
	_, err = svc.TeamMembers(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.listTeamCalls)

	// A different manager's roster is a different key.
	_, err = svc.TeamMembers(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.listTeamCalls)
}

func TestCreateEmployeeInvalidatesDirectory(t *testing.T) {
	backend := &fakeBackend{employees: []model.Employee{{UserID: 1}}}
	svc := newTestQueries(backend)
	ctx := context.Background()

	_, err := svc.Employees(ctx)
	require.NoError(t, err)

	req := model.CreateEmployeeRequest{Name: "Sam", Email: "sam@example.com", Password: "pw", Role: auth.RoleEmployee}
	require.NoError(t, svc.CreateEmployee(ctx, req))
	assert.Equal(t, []model.CreateEmployeeRequest{req}, backend.created)

	_, err = svc.Employees(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.listEmployeesCalls, "directory refetched after create")
}

func TestAddTeamMemberInvalidatesRoster(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestQueries(backend)
	ctx := context.Background()

	_, err := svc.TeamMembers(ctx, 4)
	require.NoError(t, err)

	require.NoError(t, svc.AddTeamMember(ctx, 4, 9))
	assert.Equal(t, [][2]int64{{4, 9}}, backend.teamAdds)

	_, err = svc.TeamMembers(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.listTeamCalls)
}

func TestSubmitAttendanceInvalidatesBothViews(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestQueries(backend)
	ctx := context.Background()

	_, err := svc.AllAttendance(ctx)
	require.NoError(t, err)
	_, err = svc.OwnAttendance(ctx, 7)
	require.NoError(t, err)

	sub := model.AttendanceSubmission{Date: "2025-06-02", Status: model.AttendancePresent}
	require.NoError(t, svc.SubmitAttendance(ctx, 7, sub))

	_, err = svc.AllAttendance(ctx)
	require.NoError(t, err)
	_, err = svc.OwnAttendance(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.listAllCalls)
	assert.Equal(t, 2, backend.listOwnCalls)
}

func TestSubmitAttendanceFailureKeepsCache(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestQueries(backend)
	ctx := context.Background()

	_, err := svc.OwnAttendance(ctx, 7)
	require.NoError(t, err)

	backend.err = apperrors.BackendRejected("Attendance already marked")
	sub := model.AttendanceSubmission{Date: "2025-06-02", Status: model.AttendancePresent}
	err = svc.SubmitAttendance(ctx, 7, sub)
	require.Error(t, err)

	backend.err = nil
	_, err = svc.OwnAttendance(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.listOwnCalls, "failed mutation left cache intact")
}

func TestAssignRoleInvalidatesDirectory(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestQueries(backend)
	ctx := context.Background()

	_, err := svc.Employees(ctx)
	require.NoError(t, err)

	req := model.AssignRoleRequest{AdminID: 1, UserID: 9, NewRole: auth.RoleHR}
	require.NoError(t, svc.AssignRole(ctx, req))
	assert.Equal(t, []model.AssignRoleRequest{req}, backend.assignments)

	_, err = svc.Employees(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.listEmployeesCalls)
}
