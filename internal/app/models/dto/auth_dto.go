package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" example:"alumni"`
	Password string `json:"password" example:"alumni@123"`
}

// LoginResponse is returned after a successful login. The session token is
// set as a cookie, not returned in the body.
type LoginResponse struct {
	OK   bool   `json:"ok" example:"true"`
	Role string `json:"role" example:"alumni"`
}

// LogoutResponse is returned after logout
type LogoutResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Message string `json:"message" example:"Logged out successfully"`
}

// MeResponse describes the current session
type MeResponse struct {
	Role      string `json:"role" example:"alumni"`
	Username  string `json:"username" example:"alumni"`
	ExpiresAt string `json:"expiresAt,omitempty" example:"2025-01-22T12:00:00Z"`
}
