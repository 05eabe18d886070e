package httpx

import (
	"net/http"
	"time"

	"github.com/staffdesk/ui-gateway/internal/domain/model"
	apperrors "github.com/staffdesk/ui-gateway/internal/errors"
)

const dateLayout = "2006-01-02"

type selfAttendancePageData struct {
	basePageData
	Records  []model.AttendanceRecord
	Statuses []model.AttendanceStatus
	Today    string
}

func (h *UIHandlers) selfAttendancePage(r *http.Request) selfAttendancePageData {
	sess, _ := sessionUser(r)
	return selfAttendancePageData{
		basePageData: newBasePageData("My Attendance", sess),
		Statuses:     model.AttendanceStatuses(),
		Today:        time.Now().Format(dateLayout),
	}
}

// SelfAttendance renders the user's own history with the submission form.
// GET /self-attendance.
func (h *UIHandlers) SelfAttendance(w http.ResponseWriter, r *http.Request) {
	_, user := sessionUser(r)
	data := h.selfAttendancePage(r)
	if r.URL.Query().Get("recorded") == "1" {
		data.Notice = "Attendance recorded"
	}

	records, err := h.Queries.OwnAttendance(r.Context(), user.ID)
	if err != nil {
		h.logger().Warn("own attendance failed", "user_id", user.ID, "error", err)
		data.Error = h.loadError(err)
	}
	data.Records = records

	_ = h.Renderer.Render(w, "self_attendance.tmpl", data)
}

// SelfAttendanceSubmit records one day's status for the calling user.
// POST /self-attendance.
func (h *UIHandlers) SelfAttendanceSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, user := sessionUser(r)
	sub := model.AttendanceSubmission{
		Date:   r.PostFormValue("date"),
		Status: model.AttendanceStatus(r.PostFormValue("status")),
	}

	if msg := validateSubmission(sub); msg != "" {
		h.renderSelfAttendanceError(w, r, user.ID, msg)
		return
	}

	if err := h.Queries.SubmitAttendance(r.Context(), user.ID, sub); err != nil {
		h.logger().Warn("attendance submit failed", "user_id", user.ID, "error", err)
		h.renderSelfAttendanceError(w, r, user.ID, apperrors.UserMessage(err, "Could not record attendance"))
		return
	}

	http.Redirect(w, r, "/self-attendance?recorded=1", http.StatusSeeOther)
}

// validateSubmission rejects malformed dates, future dates, and statuses
// outside the closed set. Returns an empty string when the submission is
// acceptable.
func validateSubmission(sub model.AttendanceSubmission) string {
	if !sub.Status.Valid() {
		return "Status must be present, absent or leave"
	}
	day, err := time.Parse(dateLayout, sub.Date)
	if err != nil {
		return "A valid date is required"
	}
	today, _ := time.Parse(dateLayout, time.Now().Format(dateLayout))
	if day.After(today) {
		return "Attendance cannot be recorded for a future date"
	}
	return ""
}

func (h *UIHandlers) renderSelfAttendanceError(w http.ResponseWriter, r *http.Request, userID int64, message string) {
	data := h.selfAttendancePage(r)
	data.Error = message

	if records, err := h.Queries.OwnAttendance(r.Context(), userID); err == nil {
		data.Records = records
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = h.Renderer.Render(w, "self_attendance.tmpl", data)
}
