package auth

// Context keys set by Authenticate
const (
	LocalAuthenticated = "authenticated"
	LocalUserID        = "userID"
	LocalEmail         = "email"
	LocalRole          = "role"
)

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
