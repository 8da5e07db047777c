package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// UserRole controls access to moderation endpoints
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User represents a registered account
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:50;uniqueIndex"`
	Email          string    `json:"email" gorm:"size:100;uniqueIndex"`
	Password       string    `json:"-"` // bcrypt hash, never serialized
	Fullname       string    `json:"fullname" gorm:"size:100"`
	Bio            string    `json:"bio" gorm:"size:500"`
	Role           UserRole  `json:"role" gorm:"size:20;default:'USER'"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Fullname string `json:"fullname" validate:"omitempty,max=100"`
}

// LoginRequest defines the request body for user login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest defines the request body for profile updates
type UpdateUserRequest struct {
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Fullname       string `json:"fullname,omitempty" validate:"omitempty,max=100"`
	Bio            string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// ChangePasswordRequest defines the request body for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ChangeUserRoleRequest defines the request body for role changes (admin only)
type ChangeUserRoleRequest struct {
	Role UserRole `json:"role" validate:"required,oneof=USER ADMIN"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
