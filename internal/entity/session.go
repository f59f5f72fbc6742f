package entity

import "strings"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Storage keys for the persisted session fields.
const (
	TokenKey = "token"
	RoleKey  = "role"
)

type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Authenticated reports whether a bearer token is present.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

func (s Session) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(s.Role), RoleAdmin)
}

// NormalizeRole maps a server-provided role onto RoleAdmin or RoleUser.
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}
