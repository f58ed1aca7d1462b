package users

import "time"

// Roles a user may hold. Role gates every non-public operation.
const (
	RoleAdmin  = "Admin"
	RoleEditor = "Editor"
	RoleViewer = "Viewer"
)

// ValidRole reports whether raw is one of the defined roles.
func ValidRole(raw string) bool {
	switch raw {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// User represents a registered account. PasswordHash is a bcrypt hash and
// never leaves the process.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
