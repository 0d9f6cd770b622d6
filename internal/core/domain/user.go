package domain

import "time"

// Role is the closed set of account roles. There is no registration path for
// ADMIN; admin accounts are provisioned at startup (see cmd/api).
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleBroker Role = "BROKER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleBroker
}

// User models an authenticated actor: a broker onboarding customers, or an
// admin reading cross-broker views. Never mutated after creation.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
