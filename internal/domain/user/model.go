package user

import (
	"time"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/auth"
)

// User maps to the users table. The password hash never serializes.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         auth.Role `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Patch carries a partial update. Nil fields are left unchanged.
type Patch struct {
	Name  *string    `json:"name"`
	Email *string    `json:"email"`
	Role  *auth.Role `json:"role"`
}

// ChangesRole reports whether the patch asks for a role change.
func (p Patch) ChangesRole() bool {
	return p.Role != nil && *p.Role != ""
}
