package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims represents the custom claims in our JWT tokens
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

func (c *CustomClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Username: c.Username}
}
