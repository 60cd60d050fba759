package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

const MaxUsernameLength = 50

// User is an identity owned by the auth service. Users are never updated or
// deleted once registered.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	return u.Validate()
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username is required")
	}

	if len(u.Username) > MaxUsernameLength {
		return errors.New("username is too long")
	}

	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}

	return nil
}

// Identity returns the public part of the user embedded in tokens.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username}
}

func (u *User) TableName() string {
	return "users"
}

// Identity is the caller identity resolved from a bearer token.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}
