package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/dto"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/middleware"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/services"
	"github.com/yukikurage/timesheet-api/internal/token"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	tokens      *token.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokens *token.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
	}
}

// Login authenticates any user.
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, h.authService.Login)
}

// AdminLogin authenticates ADMIN_TOTAL and ADMIN_DEPT users only.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, h.authService.AdminLogin)
}

func (h *AuthHandler) login(c *gin.Context, authenticate func(services.LoginInput) (*models.User, error)) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := authenticate(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	h.respondWithSession(c, http.StatusOK, user)
}

// Setup creates the first company administrator and logs them in.
func (h *AuthHandler) Setup(c *gin.Context) {
	var req dto.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Username must be 3-50 characters and password at least 6")
		return
	}

	user, err := h.authService.Setup(services.SetupInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	h.respondWithSession(c, http.StatusCreated, user)
}

func (h *AuthHandler) respondWithSession(c *gin.Context, status int, user *models.User) {
	signed, err := h.tokens.Generate(user)
	if err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	if err := middleware.SaveSession(c, user); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(status, dto.LoginResponse{
		User:  dto.ToUserDTO(user),
		Token: signed,
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// CheckSystemStatus reports whether the first administrator still has to be created.
func (h *AuthHandler) CheckSystemStatus(c *gin.Context) {
	setupMode, err := h.authService.IsSetupMode()
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SystemStatusResponse{IsSetupMode: setupMode})
}
