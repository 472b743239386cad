package dto

import "github.com/okandemir/schoolhub/internal/app/models"

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"required"`
	Role        string `json:"role" binding:"omitempty,oneof=ADMIN TEACHER STUDENT PARENT"`
	ParentEmail string `json:"parentEmail" binding:"omitempty,email"`
}

// LoginRequest is the payload of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the payload of PUT /auth/profile.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName" binding:"omitempty,min=1"`
	Avatar   *string `json:"avatar"`
}

// AuthUser is the user block returned by register/login; ProfileID is the
// id of the role profile matching the user's role, when one exists.
type AuthUser struct {
	models.User
	ProfileID *int64 `json:"profileId"`
}

// AuthResponse is the success payload of register/login.
type AuthResponse struct {
	Message   string   `json:"message"`
	Token     string   `json:"token"`
	ExpiresIn int      `json:"expiresIn"`
	User      AuthUser `json:"user"`
}
