package ports

import (
	"context"

	"github.com/staffdesk/ui-gateway/internal/domain/model"
)

// AdminAPI covers the backend's employee-directory administration surface.
type AdminAPI interface {
	// ListEmployees fetches the full directory.
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	// CreateEmployee provisions a new account with an initial role.
	CreateEmployee(ctx context.Context, req model.CreateEmployeeRequest) error
}

// EmployeeAPI covers team rosters and attendance.
type EmployeeAPI interface {
	// AddTeamMember attaches an employee to a manager's roster.
	AddTeamMember(ctx context.Context, managerID, employeeID int64) error
	// ListTeam fetches the calling manager's roster.
	ListTeam(ctx context.Context) ([]model.Employee, error)
	// SubmitAttendance records one day's status for the caller.
	SubmitAttendance(ctx context.Context, sub model.AttendanceSubmission) error
	// ListAllAttendance fetches the aggregate attendance view.
	ListAllAttendance(ctx context.Context) ([]model.AttendanceRecord, error)
	// ListOwnAttendance fetches the caller's own history.
	ListOwnAttendance(ctx context.Context) ([]model.AttendanceRecord, error)
}

// RoleAPI covers role administration.
type RoleAPI interface {
	// AssignRole changes a user's role on behalf of an admin.
	AssignRole(ctx context.Context, req model.AssignRoleRequest) error
}
