package httpx

import (
	"net/http"
	"strconv"
	"strings"

	domainauth "github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/domain/model"
	apperrors "github.com/staffdesk/ui-gateway/internal/errors"
)

type teamPageData struct {
	basePageData
	Members []model.Employee
	Query   string
}

// TeamList renders the manager's roster, optionally filtered by a name or
// email substring.
// GET /team?q=<filter>.
func (h *UIHandlers) TeamList(w http.ResponseWriter, r *http.Request) {
	sess, user := sessionUser(r)
	data := teamPageData{
		basePageData: newBasePageData("My Team", sess),
		Query:        strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if r.URL.Query().Get("added") == "1" {
		data.Notice = "Team member added"
	}

	members, err := h.Queries.TeamMembers(r.Context(), user.ID)
	if err != nil {
		h.logger().Warn("team list failed", "manager_id", user.ID, "error", err)
		data.Error = h.loadError(err)
	}
	data.Members = filterEmployees(members, data.Query)

	_ = h.Renderer.Render(w, "team.tmpl", data)
}

// filterEmployees keeps entries whose name or email contains the query,
// case-insensitively. An empty query keeps everything.
func filterEmployees(members []model.Employee, query string) []model.Employee {
	if query == "" {
		return members
	}
	q := strings.ToLower(query)
	out := make([]model.Employee, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Email), q) {
			out = append(out, m)
		}
	}
	return out
}

// TeamAdd attaches an employee to the calling manager's roster.
// POST /team.
func (h *UIHandlers) TeamAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sess, user := sessionUser(r)

	employeeID, err := strconv.ParseInt(r.PostFormValue("employee_id"), 10, 64)
	if err != nil || employeeID <= 0 {
		h.renderTeamError(w, r, sess, user.ID, "A valid employee ID is required")
		return
	}

	if addErr := h.Queries.AddTeamMember(r.Context(), user.ID, employeeID); addErr != nil {
		h.logger().Warn("team add failed",
			"manager_id", user.ID, "employee_id", employeeID, "error", addErr)
		h.renderTeamError(w, r, sess, user.ID, apperrors.UserMessage(addErr, "Could not add team member"))
		return
	}

	http.Redirect(w, r, "/team?added=1", http.StatusSeeOther)
}

func (h *UIHandlers) renderTeamError(w http.ResponseWriter, r *http.Request, sess *domainauth.Session, managerID int64, message string) {
	data := teamPageData{basePageData: newBasePageData("My Team", sess)}
	data.Error = message

	if members, err := h.Queries.TeamMembers(r.Context(), managerID); err == nil {
		data.Members = members
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = h.Renderer.Render(w, "team.tmpl", data)
}
