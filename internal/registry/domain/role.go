package domain

import "time"

// Base role names created at startup. Policy files may reference any role
// that exists in the store; these two always do.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Role is a named permission tag. Membership is many-to-many with User and
// evaluated live at authorization time - it is never baked into tokens.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
