package httpx

import (
	"net/http"

	"github.com/staffdesk/ui-gateway/internal/domain/model"
)

type attendancePageData struct {
	basePageData
	Records []model.AttendanceRecord
}

// AttendanceList renders the aggregate attendance view.
// GET /attendance.
func (h *UIHandlers) AttendanceList(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionUser(r)
	data := attendancePageData{basePageData: newBasePageData("Attendance", sess)}

	records, err := h.Queries.AllAttendance(r.Context())
	if err != nil {
		h.logger().Warn("attendance list failed", "error", err)
		data.Error = h.loadError(err)
	}
	data.Records = records

	_ = h.Renderer.Render(w, "attendance.tmpl", data)
}
