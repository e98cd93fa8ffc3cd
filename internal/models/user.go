package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Staff roles
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents a staff account stored in PostgreSQL. Shoppers are not
// Users; they live in the customers collection and authenticate via Firebase.
type User struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all staff
	Password   string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Role       string `json:"role" gorm:"size:20;default:staff"`
}

// IsAdmin reports whether the account may perform admin-gated operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateStaffRequest defines the request body for registering a staff account
type CreateStaffRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin staff"`
}

// SignInRequest defines the request body for staff sign-in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
