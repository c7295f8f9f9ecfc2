package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the authenticated identity carried by a bearer token.
// Token issuance is an external collaborator; this service only validates.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
