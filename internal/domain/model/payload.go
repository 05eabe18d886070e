package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/staffdesk/ui-gateway/internal/domain/auth"
)

// Accepted alternate key spellings for list payloads. As with user
// normalization, these are contract, not guesswork: the backend has emitted
// each spelling from at least one endpoint.
var (
	createdAtKeys = []string{"createdAt", "created_at"}
	dateKeys      = []string{"date", "attendance_date"}
	recordIDKeys  = []string{"id", "attendance_id"}
)

// EmployeeFromPayload maps a loosely-shaped directory document to an
// Employee. The mapping is total; absent fields degrade to zero values.
func EmployeeFromPayload(payload map[string]any) Employee {
	user := auth.NormalizeUser(payload)
	return Employee{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: firstTime(payload, createdAtKeys),
	}
}

// EmployeesFromPayloads maps a list payload, preserving order.
func EmployeesFromPayloads(payloads []map[string]any) []Employee {
	out := make([]Employee, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, EmployeeFromPayload(p))
	}
	return out
}

// AttendanceFromPayload maps a loosely-shaped attendance document.
func AttendanceFromPayload(payload map[string]any) AttendanceRecord {
	user := auth.NormalizeUser(payload)
	return AttendanceRecord{
		ID:        firstID(payload, recordIDKeys),
		Name:      user.Name,
		Email:     user.Email,
		Date:      firstString(payload, dateKeys),
		Status:    normalizeStatus(payload["status"]),
		CreatedAt: firstTime(payload, createdAtKeys),
	}
}

// AttendanceFromPayloads maps a list payload, preserving order.
func AttendanceFromPayloads(payloads []map[string]any) []AttendanceRecord {
	out := make([]AttendanceRecord, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, AttendanceFromPayload(p))
	}
	return out
}

// normalizeStatus lower-cases a status value; non-string inputs degrade to
// the empty status.
func normalizeStatus(raw any) AttendanceStatus {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	return AttendanceStatus(strings.ToLower(strings.TrimSpace(s)))
}

func firstString(payload map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := payload[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstID(payload map[string]any, keys []string) int64 {
	for _, k := range keys {
		switch n := payload[k].(type) {
		case float64:
			return int64(n)
		case json.Number:
			if id, err := n.Int64(); err == nil {
				return id
			}
		case string:
			if id, err := strconv.ParseInt(n, 10, 64); err == nil {
				return id
			}
		}
	}
	return 0
}

// firstTime parses the first present timestamp key, accepting RFC 3339 or a
// bare date. Unparseable values degrade to the zero time.
func firstTime(payload map[string]any, keys []string) time.Time {
	raw := firstString(payload, keys)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
