package httpx

import (
	domainauth "github.com/staffdesk/ui-gateway/internal/domain/auth"
)

// navData drives which navigation entries the base layout shows. Each flag
// mirrors the role gate on the corresponding route, so the menu never offers
// a screen the guard would bounce.
type navData struct {
	ShowTeam           bool
	ShowAttendance     bool
	ShowSelfAttendance bool
	ShowEmployees      bool
	ShowRoles          bool
}

// basePageData is embedded by every page's data struct.
type basePageData struct {
	Title  string
	User   *domainauth.User
	Nav    navData
	Error  string
	Notice string
}

func newBasePageData(title string, sess *domainauth.Session) basePageData {
	data := basePageData{Title: title}
	if sess == nil || sess.User == nil {
		return data
	}
	data.User = sess.User

	role := sess.User.Role
	data.Nav = navData{
		ShowTeam:           role == domainauth.RoleManager,
		ShowAttendance:     true,
		ShowSelfAttendance: role == domainauth.RoleManager || role == domainauth.RoleEmployee,
		ShowEmployees:      role == domainauth.RoleAdmin,
		ShowRoles:          role == domainauth.RoleAdmin,
	}
	return data
}
