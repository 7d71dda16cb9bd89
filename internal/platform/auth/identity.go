// Package auth provides the credential service (password hashing and session
// tokens), the per-request Identity, and the access control engine.
package auth

import (
	"fmt"
	"time"
)

// Role is the set of user roles known to the system.
type Role string

const (
	RoleProvider Role = "provider"
	RoleScribe   Role = "scribe"
	RoleBiller   Role = "biller"
	RoleAdmin    Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleProvider, RoleScribe, RoleBiller, RoleAdmin}

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if Role(s) == r {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role: %q", s)
}

// Identity is the authenticated actor derived from a verified token. It is
// immutable for the life of a request and never persisted.
type Identity struct {
	SubjectID int64
	Role      Role
	Email     string
	ExpiresAt time.Time
}
