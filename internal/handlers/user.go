package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/dto"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/services"
	"github.com/yukikurage/timesheet-api/internal/utils"
)

// UserHandler manages accounts
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns one page of users
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.ParsePagination(c.Query("page"), c.Query("limit"))

	users, total, err := h.userService.ListUsers(params)
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		Users:      dto.ToUserDTOs(users),
		Pagination: params.Response(total),
	})
}

// CreateUser creates an account
func (h *UserHandler) CreateUser(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Username:     req.Username,
		Password:     req.Password,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		ActorID:      actorID,
	})
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(user))
}

// UpdateUser changes a username or password
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		return
	}

	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(targetID, services.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
		ActorID:  actorID,
	})
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// DeleteUser removes an account
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		return
	}

	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(targetID, actorID); err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
