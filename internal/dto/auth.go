package dto

import "expense-services/internal/models"

// Auth Request DTOs

// RegisterRequest contains user registration data
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max_bytes=72"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Auth Response DTOs

// UserResponse is the public view of a registered user; the secret is never echoed.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// TokenResponse contains the issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// VerifiedUser is the identity embedded in a verified token.
type VerifiedUser struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	IssuedAt  int64  `json:"iat,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

// VerifyResponse is returned by GET /api/verify and consumed by the other services.
type VerifyResponse struct {
	Valid bool         `json:"valid"`
	User  VerifiedUser `json:"user"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username}
}

func NewVerifyResponse(claims *models.CustomClaims) VerifyResponse {
	user := VerifiedUser{
		UserID:   claims.UserID,
		Username: claims.Username,
	}
	if claims.IssuedAt != nil {
		user.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		user.ExpiresAt = claims.ExpiresAt.Unix()
	}

	return VerifyResponse{Valid: true, User: user}
}

// ProfileResponse is returned by GET /api/profile.
type ProfileResponse struct {
	User UserResponse `json:"user"`
}
