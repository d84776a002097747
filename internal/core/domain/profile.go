package domain

import "time"

// Role is the access level resolved from the profiles table.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Profile represents an application login with an optional role.
// Admin-gated operations (write-back, transaction recording, payout advance)
// require the caller's profile to resolve to RoleAdmin.
type Profile struct {
	ProfileID    string `json:"profileID"` // Primary Key (UUID)
	Name         string `json:"name"`      // Login name, unique
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	// Refresh token state, hash only; the raw token never touches storage.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
}
