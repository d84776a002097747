package dto

import "time"

// LoginRequest defines the credentials for a password login.
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token and the caller's role.
// The refresh token travels in an HTTP-only cookie, not in the body.
type LoginResponse struct {
	ProfileID   string    `json:"profileID"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// RefreshRequest identifies the profile presenting a refresh-token cookie.
type RefreshRequest struct {
	ProfileID string `json:"profileID" binding:"required"`
}

// RegisterProfileRequest defines the data needed to create a login profile.
type RegisterProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin member"`
}
