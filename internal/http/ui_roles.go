package httpx

import (
	"net/http"
	"strconv"

	domainauth "github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/domain/model"
	apperrors "github.com/staffdesk/ui-gateway/internal/errors"
)

type rolesPageData struct {
	basePageData
	Employees []model.Employee
	Roles     []domainauth.Role
}

func (h *UIHandlers) rolesPage(r *http.Request) rolesPageData {
	sess, _ := sessionUser(r)
	return rolesPageData{
		basePageData: newBasePageData("Role Assignment", sess),
		Roles:        domainauth.AssignableRoles(),
	}
}

// RoleList renders the role-assignment screen over the directory.
// GET /roles.
func (h *UIHandlers) RoleList(w http.ResponseWriter, r *http.Request) {
	data := h.rolesPage(r)
	if r.URL.Query().Get("assigned") == "1" {
		data.Notice = "Role updated"
	}

	employees, err := h.Queries.Employees(r.Context())
	if err != nil {
		h.logger().Warn("role list failed", "error", err)
		data.Error = h.loadError(err)
	}
	data.Employees = employees

	_ = h.Renderer.Render(w, "roles.tmpl", data)
}

// RoleAssign changes a user's role. The acting admin's ID comes from the
// session, never from the form.
// POST /roles.
func (h *UIHandlers) RoleAssign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, admin := sessionUser(r)

	userID, err := strconv.ParseInt(r.PostFormValue("user_id"), 10, 64)
	newRole := domainauth.NormalizeRole(r.PostFormValue("new_role"))
	if err != nil || userID <= 0 || !newRole.Valid() {
		h.renderRolesError(w, r, "A valid user and role are required")
		return
	}

	req := model.AssignRoleRequest{AdminID: admin.ID, UserID: userID, NewRole: newRole}
	if assignErr := h.Queries.AssignRole(r.Context(), req); assignErr != nil {
		h.logger().Warn("role assign failed",
			"admin_id", admin.ID, "user_id", userID, "error", assignErr)
		h.renderRolesError(w, r, apperrors.UserMessage(assignErr, "Could not assign role"))
		return
	}

	http.Redirect(w, r, "/roles?assigned=1", http.StatusSeeOther)
}

func (h *UIHandlers) renderRolesError(w http.ResponseWriter, r *http.Request, message string) {
	data := h.rolesPage(r)
	data.Error = message

	if employees, err := h.Queries.Employees(r.Context()); err == nil {
		data.Employees = employees
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = h.Renderer.Render(w, "roles.tmpl", data)
}
