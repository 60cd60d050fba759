package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceTestSuite defines the test suite for PasswordService
type PasswordServiceTestSuite struct {
	suite.Suite
	service PasswordServiceInterface
}

func (s *PasswordServiceTestSuite) SetupTest() {
	s.service = NewPasswordService(bcrypt.MinCost)
}

func TestPasswordServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordServiceTestSuite))
}

func (s *PasswordServiceTestSuite) TestValidatePassword() {
	s.NoError(s.service.ValidatePassword("pw1"))
	s.ErrorIs(s.service.ValidatePassword(""), ErrPasswordEmpty)
	s.ErrorIs(s.service.ValidatePassword(strings.Repeat("x", MaxPasswordLength+1)), ErrPasswordTooLong)
}

func (s *PasswordServiceTestSuite) TestHashAndCompare() {
	hash, err := s.service.HashPassword("pw1")
	s.Require().NoError(err)
	s.NotEqual("pw1", hash)

	s.True(s.service.ComparePassword("pw1", hash))
	s.False(s.service.ComparePassword("pw2", hash))
	s.False(s.service.ComparePassword("pw1", "not-a-hash"))
}

func (s *PasswordServiceTestSuite) TestHashPassword_Salted() {
	first, err := s.service.HashPassword("same")
	s.Require().NoError(err)
	second, err := s.service.HashPassword("same")
	s.Require().NoError(err)

	s.NotEqual(first, second)
}

func (s *PasswordServiceTestSuite) TestHashPassword_Empty() {
	_, err := s.service.HashPassword("")
	s.ErrorIs(err, ErrPasswordEmpty)
}

func (s *PasswordServiceTestSuite) TestNewPasswordService_InvalidCostFallsBack() {
	service := NewPasswordService(99).(*PasswordService)
	s.Equal(bcrypt.DefaultCost, service.cost)
}
