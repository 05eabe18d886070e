// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Kept in string form for easy persistence and comparison.
// Valid values are defined as constants below; comparisons always run on
// normalized (lower-cased) values.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// roleLabels maps normalized roles to their display labels.
var roleLabels = map[Role]string{
	RoleAdmin:    "Admin",
	RoleManager:  "Manager",
	RoleHR:       "HR",
	RoleEmployee: "Employee",
}

// genericRoleLabel is used for any role outside the closed set.
const genericRoleLabel = "User"

// NormalizeRole lower-cases and trims a candidate role value. Non-string
// inputs normalize to the empty role, which matches no real role.
func NormalizeRole(raw any) Role {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether the role belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the display label for the role. Unknown roles format to a
// generic label; this never fails.
func (r Role) Label() string {
	if label, ok := roleLabels[NormalizeRole(string(r))]; ok {
		return label
	}
	return genericRoleLabel
}

// AssignableRoles lists the roles an admin may hand out through the role
// management screen. Admin itself is excluded from the form.
func AssignableRoles() []Role {
	return []Role{RoleManager, RoleHR, RoleEmployee}
}

// User is the canonical internal representation of an authenticated user,
// produced by NormalizeUser from either a login response payload or decoded
// bearer-token claims.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the record persisted in the session store for one browser
// session. Token and User are always written and cleared together; the
// record is replaced wholesale, never partially updated.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAuthenticated reports whether the session holds both a token and a user.
// One without the other never counts as authenticated.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the session user's role, or the empty role when no user is
// attached.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// HasRole reports whether the normalized candidate equals the user's role.
func (s Session) HasRole(candidate any) bool {
	r := NormalizeRole(candidate)
	return r != "" && s.User != nil && s.User.Role == r
}

// HasAnyRole reports whether the user's role matches any entry after
// normalization. An empty list is the open-access sentinel and always
// matches.
func (s Session) HasAnyRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	if s.User == nil {
		return false
	}
	for _, role := range roles {
		if NormalizeRole(string(role)) == s.User.Role {
			return true
		}
	}
	return false
}
