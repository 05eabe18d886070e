package backendapi

import (
	"context"

	"github.com/staffdesk/ui-gateway/internal/domain/model"
	"github.com/staffdesk/ui-gateway/internal/ports"
)

// ListEmployees fetches the full employee directory.
func (c *Client) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var envelope listEnvelope
	if err := c.call(ctx, "GET", "/admin/employees", nil, &envelope); err != nil {
		return nil, err
	}
	return model.EmployeesFromPayloads(envelope.Data), nil
}

// CreateEmployee provisions a new account with an initial role.
func (c *Client) CreateEmployee(ctx context.Context, req model.CreateEmployeeRequest) error {
	body := map[string]any{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
		"role":     req.Role,
	}
	return c.call(ctx, "POST", "/admin/employees", body, nil)
}

var _ ports.AdminAPI = (*Client)(nil)
