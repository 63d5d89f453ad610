package dto

import "reviewhub/internal/http-api/models"

// CreateUserDTO for admin-provisioned accounts
type CreateUserDTO struct {
	Username  string  `json:"username" binding:"required,max=150"`
	Email     string  `json:"email" binding:"required,email,max=254"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=40"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=40"`
	Bio       *string `json:"bio,omitempty"`
	Role      string  `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateUserDTO for partial updates; absent fields stay untouched
type UpdateUserDTO struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,max=150"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=40"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=40"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
}

// UserResponse for returning profile information
type UserResponse struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Role      string  `json:"role"`
	Active    bool    `json:"active"`
}

// UserFromModel converts a User model to UserResponse
func UserFromModel(user *models.User) UserResponse {
	return UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
		Active:    user.Active,
	}
}
