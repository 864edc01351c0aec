package domain

import (
	"errors"
	"strings"
	"time"
)

// Role classifies a user for authorization decisions. The set is closed:
// anything outside it is rejected at the boundary.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleProjectManager Role = "PROJECT_MANAGER"
	RoleTeamLeader     Role = "TEAM_LEADER"
	RoleTeamMember     Role = "TEAM_MEMBER"
	RoleGuest          Role = "GUEST"
)

var roles = map[Role]struct{}{
	RoleAdmin:          {},
	RoleProjectManager: {},
	RoleTeamLeader:     {},
	RoleTeamMember:     {},
	RoleGuest:          {},
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMissingFields = errors.New("missing required fields")
var ErrInvalidRole = errors.New("invalid role")

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// ParseRole converts a raw string (case-insensitive) into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// User is the identity record behind authentication and user administration.
// PasswordHash holds only bcrypt output and is never serialized to clients.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
