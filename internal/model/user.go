package model

import "time"

// Staff roles. Every signed-in user is staff; clients never log in to
// this service.
const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// User represents a staff account that can sign in to the portal.
// Permissions is a free-form set of capability keys attached at
// account creation (e.g. "clients.write", "exports.run"); role gates
// the coarse route groups while permissions allow finer checks in
// handlers that need them.
//
// Fields:
//  ID          – primary key identifier.
//  Email       – login email, unique, stored lower-cased.
//  Name        – display name shown in the dashboard header.
//  Role        – "admin" or "superadmin".
//  Permissions – capability keys granted to this account.
type User struct {
	ID          uint64   `json:"id"`          // users.id
	Email       string   `json:"email"`       // users.email
	Name        string   `json:"name"`        // users.name
	Role        string   `json:"role"`        // users.role
	Permissions []string `json:"permissions"` // users.permissions (comma-joined column)
}

// StaffAccount is the full row including credential fields; it never
// leaves the repository/handler boundary.
type StaffAccount struct {
	User
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
