package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/timesheet-api/internal/constants"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"github.com/yukikurage/timesheet-api/internal/utils"
	"gorm.io/gorm"
)

// UserService handles account management
type UserService struct {
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, deptRepo repository.DepartmentRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		deptRepo: deptRepo,
	}
}

// CreateUserInput represents input for creating an account
type CreateUserInput struct {
	Username     string
	Password     string
	Role         models.Role
	DepartmentID *uint64
	ActorID      uint64
}

// UpdateUserInput represents input for updating an account. A blank password
// keeps the stored hash.
type UpdateUserInput struct {
	Username *string
	Password string
	ActorID  uint64
}

// ListUsers returns one page of users ordered by username
func (s *UserService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// CreateUser creates an account on behalf of an administrator
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	actor, err := s.findActor(input.ActorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsAdmin() {
		return nil, ErrAdminRequired
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	deptID := input.DepartmentID
	if actor.Role == models.RoleAdminDept {
		if role != models.RoleUser {
			return nil, ErrRoleNotAllowed
		}
		if actor.DepartmentID == nil {
			return nil, ErrForeignDepartment
		}
		if deptID != nil && *deptID != *actor.DepartmentID {
			return nil, ErrForeignDepartment
		}
		deptID = actor.DepartmentID
	}

	if deptID == nil && role != models.RoleAdminTotal {
		return nil, ErrDepartmentRequired
	}
	if deptID != nil {
		if _, err := s.deptRepo.FindByID(*deptID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, fmt.Errorf("failed to find department: %w", err)
		}
	}

	username, err := validateCredentials(input.Username, input.Password)
	if err != nil {
		return nil, err
	}
	if err := usernameFree(s.userRepo, username); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		DepartmentID: deptID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.userRepo.FindByID(user.ID)
}

// UpdateUser changes a username or password. Users may edit themselves;
// ADMIN_TOTAL may edit anyone and ADMIN_DEPT anyone in its department.
func (s *UserService) UpdateUser(targetID uint64, input UpdateUserInput) (*models.User, error) {
	actor, err := s.findActor(input.ActorID)
	if err != nil {
		return nil, err
	}

	target, err := s.findUser(targetID)
	if err != nil {
		return nil, err
	}

	if !canManage(actor, target) {
		return nil, ErrCannotEditUser
	}

	if input.Username != nil {
		username, err := validateUsername(*input.Username)
		if err != nil {
			return nil, err
		}
		if username != target.Username {
			if err := usernameFree(s.userRepo, username); err != nil {
				return nil, err
			}
			target.Username = username
		}
	}

	if input.Password != "" {
		if len(input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = hash
	}

	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.userRepo.FindByID(target.ID)
}

// DeleteUser removes an account. The user's tasks are kept for reporting.
func (s *UserService) DeleteUser(targetID, actorID uint64) error {
	if targetID == actorID {
		return ErrCannotDeleteSelf
	}

	actor, err := s.findActor(actorID)
	if err != nil {
		return err
	}
	if !actor.Role.IsAdmin() {
		return ErrAdminRequired
	}

	target, err := s.findUser(targetID)
	if err != nil {
		return err
	}
	if !canManage(actor, target) {
		return ErrForeignDepartment
	}

	if err := s.userRepo.Delete(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func canManage(actor, target *models.User) bool {
	switch {
	case actor.ID == target.ID:
		return true
	case actor.Role == models.RoleAdminTotal:
		return true
	case actor.Role == models.RoleAdminDept:
		return target.Role == models.RoleUser &&
			actor.DepartmentID != nil && target.DepartmentID != nil &&
			*actor.DepartmentID == *target.DepartmentID
	}
	return false
}

func (s *UserService) findUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// findActor loads the caller. A caller whose account vanished is unauthenticated.
func (s *UserService) findActor(id uint64) (*models.User, error) {
	user, err := s.findUser(id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrAccountGone
	}
	return user, err
}
