package handlers

import (
	stderrors "errors"
	"net/http"

	"expense-services/internal/dto"
	"expense-services/internal/errors"
	"expense-services/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Root answers the liveness probe of the auth service
func (h *AuthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Auth service is running")
}

// Register handles user registration
// POST /register {username, password} -> 201 {id, username}
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrUserAlreadyExists):
			return SendError(c, errors.UserAlreadyExists)
		case stderrors.Is(err, services.ErrPasswordTooLong), stderrors.Is(err, services.ErrPasswordEmpty):
			return SendError(c, errors.ValidationGeneral, errors.WithDetails("password: "+passwordProblem(err)))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles user authentication
// POST /login {username, password} -> 200 {token}
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, token)
}

// Verify checks the bearer token for the other services
// GET /api/verify -> 200 {valid, user}
func (h *AuthHandler) Verify(c echo.Context) error {
	token, err := services.ExtractBearerToken(c.Request().Header.Get("Authorization"))
	if err != nil {
		if stderrors.Is(err, services.ErrEmptyToken) {
			return SendError(c, errors.AuthMissingToken)
		}
		return SendError(c, errors.AuthInvalidTokenFormat)
	}

	claims, err := h.authService.Verify(token)
	if err != nil {
		if stderrors.Is(err, services.ErrExpiredToken) {
			return SendError(c, errors.AuthExpiredToken)
		}
		return SendError(c, errors.AuthInvalidToken)
	}

	return c.JSON(http.StatusOK, dto.NewVerifyResponse(claims))
}

// Profile returns the caller's account
// GET /api/profile -> 200 {user}
func (h *AuthHandler) Profile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		if stderrors.Is(err, services.ErrUserNotFound) {
			// the token outlived its user
			return SendError(c, errors.AuthInvalidToken)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ProfileResponse{User: dto.NewUserResponse(user)})
}

func passwordProblem(err error) string {
	if stderrors.Is(err, services.ErrPasswordEmpty) {
		return services.ErrPasswordEmpty.Error()
	}
	return services.ErrPasswordTooLong.Error()
}
