package backendapi

import (
	"context"

	"github.com/staffdesk/ui-gateway/internal/domain/model"
	"github.com/staffdesk/ui-gateway/internal/ports"
)

// AssignRole changes a user's role on behalf of an admin.
func (c *Client) AssignRole(ctx context.Context, req model.AssignRoleRequest) error {
	body := map[string]any{
		"admin_id": req.AdminID,
		"user_id":  req.UserID,
		"new_role": req.NewRole,
	}
	return c.call(ctx, "POST", "/assign-role", body, nil)
}

var _ ports.RoleAPI = (*Client)(nil)
