package model

// Roles known to the service. Admin passes every role check.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleTechnicien = "technicien"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserInfo is the public identity returned on login.
type UserInfo struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// TokenResponse is the login response payload.
type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	UserInfo    UserInfo `json:"user_info"`
}

// AuthUser is the identity attached to the request context after
// token verification.
type AuthUser struct {
	Username string `json:"username"`
	UserID   int    `json:"user_id"`
	Role     string `json:"role"`
}
