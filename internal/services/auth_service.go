package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/timesheet-api/internal/constants"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// AdminLogin is Login restricted to the administrator roles.
func (s *AuthService) AdminLogin(input LoginInput) (*models.User, error) {
	user, err := s.Login(input)
	if err != nil {
		return nil, err
	}
	if !user.Role.IsAdmin() {
		return nil, ErrAdminRequired
	}
	return user, nil
}

// SetupInput holds the credentials of the first company administrator.
type SetupInput struct {
	Username string
	Password string
}

// Setup creates the first ADMIN_TOTAL account. It fails once any exists.
func (s *AuthService) Setup(input SetupInput) (*models.User, error) {
	username, err := validateCredentials(input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUsernameFree(username); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdminTotal,
	}
	if err := s.userRepo.CreateFirstAdmin(user); err != nil {
		if errors.Is(err, repository.ErrAdminAlreadyExists) {
			return nil, ErrSystemAlreadySetUp
		}
		return nil, fmt.Errorf("failed to create administrator: %w", err)
	}

	return user, nil
}

// IsSetupMode reports whether no ADMIN_TOTAL account exists yet.
func (s *AuthService) IsSetupMode() (bool, error) {
	count, err := s.userRepo.CountByRole(models.RoleAdminTotal)
	if err != nil {
		return false, fmt.Errorf("failed to count administrators: %w", err)
	}
	return count == 0, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (s *AuthService) ensureUsernameFree(username string) error {
	return usernameFree(s.userRepo, username)
}

func usernameFree(repo repository.UserRepository, username string) error {
	if _, err := repo.FindByUsername(username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

func validateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	n := utf8.RuneCountInString(username)
	if n < constants.MinUsernameLength || n > constants.MaxUsernameLength {
		return "", ErrUsernameInvalid
	}
	return username, nil
}

func validateCredentials(username, password string) (string, error) {
	username, err := validateUsername(username)
	if err != nil {
		return "", err
	}
	if len(password) < constants.MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	return username, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
