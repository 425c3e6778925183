package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenClaims are the JWT claims attached to authenticated requests.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
