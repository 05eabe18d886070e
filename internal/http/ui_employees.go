package httpx

import (
	"net/http"

	domainauth "github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/domain/model"
	apperrors "github.com/staffdesk/ui-gateway/internal/errors"
)

type employeesPageData struct {
	basePageData
	Employees []model.Employee
	Roles     []domainauth.Role
	FormName  string
	FormEmail string
}

func (h *UIHandlers) employeesPage(r *http.Request) employeesPageData {
	sess, _ := sessionUser(r)
	return employeesPageData{
		basePageData: newBasePageData("Employees", sess),
		Roles:        domainauth.AssignableRoles(),
	}
}

// EmployeeList renders the directory with the create form.
// GET /admin/employees.
func (h *UIHandlers) EmployeeList(w http.ResponseWriter, r *http.Request) {
	data := h.employeesPage(r)
	if r.URL.Query().Get("created") == "1" {
		data.Notice = "Employee created"
	}

	employees, err := h.Queries.Employees(r.Context())
	if err != nil {
		h.logger().Warn("employee list failed", "error", err)
		data.Error = h.loadError(err)
	}
	data.Employees = employees

	_ = h.Renderer.Render(w, "employees.tmpl", data)
}

// EmployeeCreate handles the create-employee form submission.
// POST /admin/employees.
func (h *UIHandlers) EmployeeCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	req := model.CreateEmployeeRequest{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     domainauth.NormalizeRole(r.PostFormValue("role")),
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || !req.Role.Valid() {
		h.renderEmployeesError(w, r, req, "All fields are required and the role must be valid")
		return
	}

	if err := h.Queries.CreateEmployee(r.Context(), req); err != nil {
		h.logger().Warn("employee create failed", "email", req.Email, "error", err)
		h.renderEmployeesError(w, r, req, apperrors.UserMessage(err, "Could not create employee"))
		return
	}

	http.Redirect(w, r, "/admin/employees?created=1", http.StatusSeeOther)
}

func (h *UIHandlers) renderEmployeesError(w http.ResponseWriter, r *http.Request, req model.CreateEmployeeRequest, message string) {
	data := h.employeesPage(r)
	data.Error = message
	data.FormName = req.Name
	data.FormEmail = req.Email

	if employees, err := h.Queries.Employees(r.Context()); err == nil {
		data.Employees = employees
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = h.Renderer.Render(w, "employees.tmpl", data)
}
