package backendapi

import (
	"context"

	"github.com/staffdesk/ui-gateway/internal/domain/model"
	"github.com/staffdesk/ui-gateway/internal/ports"
)

// AddTeamMember attaches an employee to a manager's roster. The capitalized
// "Employee_id" key is what the backend actually accepts.
func (c *Client) AddTeamMember(ctx context.Context, managerID, employeeID int64) error {
	body := map[string]any{
		"manager_id":  managerID,
		"Employee_id": employeeID,
	}
	return c.call(ctx, "POST", "/add-team-employee", body, nil)
}

// ListTeam fetches the calling manager's roster.
func (c *Client) ListTeam(ctx context.Context) ([]model.Employee, error) {
	var envelope listEnvelope
	if err := c.call(ctx, "GET", "/team-employees", nil, &envelope); err != nil {
		return nil, err
	}
	return model.EmployeesFromPayloads(envelope.Data), nil
}

// SubmitAttendance records one day's status for the calling user.
func (c *Client) SubmitAttendance(ctx context.Context, sub model.AttendanceSubmission) error {
	body := map[string]any{
		"date":   sub.Date,
		"status": sub.Status,
	}
	return c.call(ctx, "POST", "/add-attendance", body, nil)
}

// ListAllAttendance fetches the aggregate attendance view.
func (c *Client) ListAllAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	var envelope listEnvelope
	if err := c.call(ctx, "GET", "/view-attendance", nil, &envelope); err != nil {
		return nil, err
	}
	return model.AttendanceFromPayloads(envelope.Data), nil
}

// ListOwnAttendance fetches the calling user's own history.
func (c *Client) ListOwnAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	var envelope listEnvelope
	if err := c.call(ctx, "GET", "/view-own-attendance", nil, &envelope); err != nil {
		return nil, err
	}
	return model.AttendanceFromPayloads(envelope.Data), nil
}

var _ ports.EmployeeAPI = (*Client)(nil)
