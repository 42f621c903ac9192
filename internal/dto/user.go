package dto

import (
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64         `json:"id"`
	Username     string         `json:"username"`
	Role         models.Role    `json:"role"`
	DepartmentID *uint64        `json:"department_id"`
	Department   *DepartmentDTO `json:"department,omitempty"`
}

// LoginRequest holds login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SetupRequest holds the credentials of the first administrator
type SetupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse is returned by the login endpoints
type LoginResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// SystemStatusResponse tells the UI whether the setup screen must be shown
type SystemStatusResponse struct {
	IsSetupMode bool `json:"is_setup_mode"`
}

// CreateUserRequest creates an account
type CreateUserRequest struct {
	Username     string      `json:"username" binding:"required"`
	Password     string      `json:"password" binding:"required"`
	Role         models.Role `json:"role"`
	DepartmentID *uint64     `json:"department_id"`
}

// UpdateUserRequest changes a username or password. A blank password is ignored.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password string  `json:"password"`
}

// UserListResponse is a page of users
type UserListResponse struct {
	Users      []UserDTO                `json:"users"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToUserDTO converts a user model
func ToUserDTO(user *models.User) UserDTO {
	dto := UserDTO{
		ID:           user.ID,
		Username:     user.Username,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
	}
	if user.Department != nil {
		dept := ToDepartmentDTO(user.Department)
		dto.Department = &dept
	}
	return dto
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	result := make([]UserDTO, len(users))
	for i := range users {
		result[i] = ToUserDTO(&users[i])
	}
	return result
}
