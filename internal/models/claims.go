package models

import "github.com/golang-jwt/jwt"

// Claims is the access token payload issued by the identity provider.
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.StandardClaims
}
