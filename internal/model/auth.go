package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccountClaims are the JWT claims of a logged-in user or admin. The account
// id travels in the registered "sub" claim and the token id in "jti".
type AccountClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller of a request
type Principal struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// LoginRequest is the request body for login. Kind selects the account
// namespace and defaults to user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Kind     Role   `json:"kind" validate:"omitempty,oneof=user admin"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Profile
	Role      Role      `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
