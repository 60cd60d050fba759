package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"expense-services/internal/dto"
	"expense-services/internal/models"
	"expense-services/internal/services"
	"expense-services/internal/services/service_mocks"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

type AuthHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	authService *service_mocks.MockAuthServiceInterface
	handler     *AuthHandler
	e           *echo.Echo
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authService = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.handler = NewAuthHandler(s.authService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthHandlerSuite) TestRegister() {
	s.Run("successful registration", func() {
		s.authService.EXPECT().
			Register(gomock.Any(), &dto.RegisterRequest{Username: "alice", Password: "pw1"}).
			Return(&models.User{ID: 1, Username: "alice", PasswordHash: "secret-hash"}, nil)

		c, rec := newJSONContext(s.e, http.MethodPost, "/register", map[string]string{"username": "alice", "password": "pw1"})

		s.NoError(s.handler.Register(c))
		s.Equal(http.StatusCreated, rec.Code)
		s.JSONEq(`{"id":1,"username":"alice"}`, rec.Body.String())
	})

	s.Run("duplicate username", func() {
		s.authService.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(nil, services.ErrUserAlreadyExists)

		c, rec := newJSONContext(s.e, http.MethodPost, "/register", map[string]string{"username": "alice", "password": "pw2"})

		s.NoError(s.handler.Register(c))
		s.Equal(http.StatusConflict, rec.Code)
		s.Equal("USER_001", decodeErrorCode(s.T(), rec))
	})

	s.Run("missing password", func() {
		c, _ := newJSONContext(s.e, http.MethodPost, "/register", map[string]string{"username": "alice"})

		err := s.handler.Register(c)

		var validationErrs validator.ValidationErrors
		s.True(errors.As(err, &validationErrs))
	})

	s.Run("multibyte password over the bcrypt byte limit", func() {
		password := strings.Repeat("é", 40)
		c, _ := newJSONContext(s.e, http.MethodPost, "/register", map[string]string{"username": "alice", "password": password})

		err := s.handler.Register(c)

		var validationErrs validator.ValidationErrors
		s.Require().True(errors.As(err, &validationErrs))
		s.Equal("password", validationErrs[0].Field())
		s.Equal("max_bytes", validationErrs[0].Tag())
	})

	s.Run("password rejected by the hasher", func() {
		s.authService.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("failed to hash password: %w", services.ErrPasswordTooLong))

		c, rec := newJSONContext(s.e, http.MethodPost, "/register", map[string]string{"username": "alice", "password": "pw"})

		s.NoError(s.handler.Register(c))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("VALIDATION_001", decodeErrorCode(s.T(), rec))
		s.Contains(rec.Body.String(), "password: password must not exceed 72 bytes")
	})

	s.Run("malformed body", func() {
		c, rec := newJSONContext(s.e, http.MethodPost, "/register", `{"username":`)

		s.NoError(s.handler.Register(c))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("VALIDATION_001", decodeErrorCode(s.T(), rec))
	})

	s.Run("service failure", func() {
		s.authService.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("db down"))

		c, rec := newJSONContext(s.e, http.MethodPost, "/register", map[string]string{"username": "bob", "password": "pw"})

		s.NoError(s.handler.Register(c))
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.NotContains(rec.Body.String(), "db down")
	})
}

func (s *AuthHandlerSuite) TestLogin() {
	s.Run("valid credentials", func() {
		s.authService.EXPECT().
			Login(gomock.Any(), &dto.LoginRequest{Username: "alice", Password: "pw1"}).
			Return(&dto.TokenResponse{Token: "signed.jwt.token"}, nil)

		c, rec := newJSONContext(s.e, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "pw1"})

		s.NoError(s.handler.Login(c))
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"token":"signed.jwt.token"}`, rec.Body.String())
	})

	s.Run("invalid credentials", func() {
		s.authService.EXPECT().
			Login(gomock.Any(), gomock.Any()).
			Return(nil, services.ErrInvalidCredentials)

		c, rec := newJSONContext(s.e, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "wrong"})

		s.NoError(s.handler.Login(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Equal("AUTH_001", decodeErrorCode(s.T(), rec))
	})

	s.Run("missing fields", func() {
		c, _ := newJSONContext(s.e, http.MethodPost, "/login", map[string]string{})
		s.Error(s.handler.Login(c))
	})
}

func (s *AuthHandlerSuite) verifyRequest(header string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newJSONContext(s.e, http.MethodGet, "/api/verify", nil)
	if header != "" {
		c.Request().Header.Set("Authorization", header)
	}
	return c, rec
}

func (s *AuthHandlerSuite) TestVerify() {
	s.Run("valid token", func() {
		issuedAt := time.Unix(1700000000, 0)
		s.authService.EXPECT().Verify("good").Return(&models.CustomClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(issuedAt),
				ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
			},
			UserID:   1,
			Username: "alice",
		}, nil)

		c, rec := s.verifyRequest("Bearer good")

		s.NoError(s.handler.Verify(c))
		s.Equal(http.StatusOK, rec.Code)

		var body dto.VerifyResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.True(body.Valid)
		s.Equal(uint(1), body.User.UserID)
		s.Equal("alice", body.User.Username)
		s.Equal(int64(1700003600), body.User.ExpiresAt)
	})

	s.Run("expired token", func() {
		s.authService.EXPECT().Verify("old").Return(nil, services.ErrExpiredToken)

		c, rec := s.verifyRequest("Bearer old")

		s.NoError(s.handler.Verify(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Equal("AUTH_005", decodeErrorCode(s.T(), rec))
	})

	s.Run("forged token", func() {
		s.authService.EXPECT().Verify("forged").Return(nil, services.ErrInvalidToken)

		c, rec := s.verifyRequest("Bearer forged")

		s.NoError(s.handler.Verify(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Equal("AUTH_003", decodeErrorCode(s.T(), rec))
	})

	s.Run("missing header", func() {
		c, rec := s.verifyRequest("")

		s.NoError(s.handler.Verify(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Equal("AUTH_002", decodeErrorCode(s.T(), rec))
	})

	s.Run("wrong scheme", func() {
		c, rec := s.verifyRequest("Token abc")

		s.NoError(s.handler.Verify(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Equal("AUTH_004", decodeErrorCode(s.T(), rec))
	})
}

func (s *AuthHandlerSuite) TestProfile() {
	s.authService.EXPECT().Profile(gomock.Any(), uint(1)).Return(&models.User{ID: 1, Username: "alice"}, nil)

	c, rec := newJSONContext(s.e, http.MethodGet, "/api/profile", nil)
	c.Set("user_id", uint(1))

	s.NoError(s.handler.Profile(c))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"user":{"id":1,"username":"alice"}}`, rec.Body.String())
}

func (s *AuthHandlerSuite) TestProfile_NoIdentity() {
	c, rec := newJSONContext(s.e, http.MethodGet, "/api/profile", nil)

	s.NoError(s.handler.Profile(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthHandlerSuite) TestRoot() {
	c, rec := newJSONContext(s.e, http.MethodGet, "/", nil)

	s.NoError(s.handler.Root(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Auth service is running", rec.Body.String())
}
