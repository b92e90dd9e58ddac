package dto

import "github.com/skillbridge/skillbridge/internal/app/models"

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TokenResponse is returned on successful registration or login
type TokenResponse struct {
	Token           string       `json:"token"`
	ExpiresIn       int          `json:"expiresIn"`
	User            UserResponse `json:"user"`
	HasSkillProfile bool         `json:"hasSkillProfile"`
}

// ToUserResponse converts a user model to its response shape
func ToUserResponse(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
