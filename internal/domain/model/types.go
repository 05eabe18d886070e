// Package model contains domain entities served by the employee-management
// backend. Entities arrive as loosely-shaped JSON documents; the FromPayload
// constructors apply the same declared fallback chains as the auth package.
package model

import (
	"time"

	"github.com/staffdesk/ui-gateway/internal/domain/auth"
)

// AttendanceStatus is the closed set of attendance states.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
)

// AttendanceStatuses lists the valid states in display order.
func AttendanceStatuses() []AttendanceStatus {
	return []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLeave}
}

// Valid reports whether the status belongs to the closed set.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	}
	return false
}

// Employee is a directory entry: the backend's user record as seen by list
// and roster views.
type Employee struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// JoinedOn formats the creation date for roster tables, or empty when the
// backend omitted it.
func (e Employee) JoinedOn() string {
	if e.CreatedAt.IsZero() {
		return ""
	}
	return e.CreatedAt.Format("Jan 2, 2006")
}

// AttendanceRecord is one attendance entry. Name and Email are populated
// only in aggregate views; self views carry just date and status.
type AttendanceRecord struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name,omitempty"`
	Email     string           `json:"email,omitempty"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// CreateEmployeeRequest is the payload for the admin create-employee
// operation.
type CreateEmployeeRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

// AttendanceSubmission is a self-service attendance entry for a single day.
type AttendanceSubmission struct {
	Date   string           `json:"date"`
	Status AttendanceStatus `json:"status"`
}

// AssignRoleRequest changes a user's role on behalf of an admin.
type AssignRoleRequest struct {
	AdminID int64     `json:"admin_id"`
	UserID  int64     `json:"user_id"`
	NewRole auth.Role `json:"new_role"`
}
