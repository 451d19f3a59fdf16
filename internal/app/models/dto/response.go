package dto

import "github.com/yigit/placement/internal/app/models"

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message" example:"Role of Jane Doe updated Successfully"`
}

// UsersResponse wraps a user listing
type UsersResponse struct {
	Users []*models.User `json:"users"`
}

// UserResponse wraps a single user
type UserResponse struct {
	User *models.User `json:"user"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Message string       `json:"message" example:"Registration successful"`
	User    *models.User `json:"user"`
}
