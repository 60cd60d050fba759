package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"expense-services/internal/errors"
	"expense-services/internal/models"
	"expense-services/internal/services"
	"expense-services/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	authenticator *service_mocks.MockAuthenticator
	e             *echo.Echo
	nextCalled    bool
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authenticator = service_mocks.NewMockAuthenticator(s.ctrl)
	s.e = echo.New()
	s.nextCalled = false
}

func (s *AuthMiddlewareSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthMiddlewareSuite) serve(authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	handler := RequireBearer(s.authenticator)(func(c echo.Context) error {
		s.nextCalled = true
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set(TraceIDContextKey, "trace-1")

	s.NoError(handler(c))
	return rec, c
}

func (s *AuthMiddlewareSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func (s *AuthMiddlewareSuite) TestRequireBearer_ValidToken() {
	s.authenticator.EXPECT().
		Resolve(gomock.Any(), "good-token").
		Return(&models.Identity{UserID: 42, Username: "alice"}, nil)

	rec, c := s.serve("Bearer good-token")

	s.Equal(http.StatusOK, rec.Code)
	s.True(s.nextCalled)
	s.Equal(uint(42), c.Get(UserIDContextKey))
	s.Equal("alice", c.Get(UsernameContextKey))
}

func (s *AuthMiddlewareSuite) TestRequireBearer_MissingHeader() {
	rec, _ := s.serve("")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthMissingToken), s.errorCode(rec))
	s.False(s.nextCalled)
}

func (s *AuthMiddlewareSuite) TestRequireBearer_WrongScheme() {
	rec, _ := s.serve("Basic YWxpY2U6cHcx")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthInvalidTokenFormat), s.errorCode(rec))
	s.False(s.nextCalled)
}

func (s *AuthMiddlewareSuite) TestRequireBearer_ResolveFails() {
	s.authenticator.EXPECT().
		Resolve(gomock.Any(), "stale").
		Return(nil, services.ErrUnauthorized)

	rec, c := s.serve("Bearer stale")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthInvalidToken), s.errorCode(rec))
	s.Contains(rec.Body.String(), "trace-1")
	s.False(s.nextCalled)
	s.Nil(c.Get(UserIDContextKey))
}

func (s *AuthMiddlewareSuite) TestRequireBearer_StaticAuthenticator() {
	auth := services.NewStaticAuthenticator(map[string]models.Identity{
		"bob-token": {UserID: 2, Username: "bob"},
	})
	handler := RequireBearer(auth)(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(UsernameContextKey).(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bob-token")
	rec := httptest.NewRecorder()

	s.NoError(handler(s.e.NewContext(req, rec)))
	s.Equal("bob", rec.Body.String())
}
