package services

import (
	"errors"
	"fmt"
)

// Error categories. Every concrete service error wraps exactly one of these
// so the HTTP layer can map it to a status code with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrPolicyViolation  = errors.New("policy violation")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrUnauthenticated  = errors.New("unauthenticated")
)

func newError(category error, msg string) error {
	return fmt.Errorf("%w: %s", category, msg)
}

var (
	// Tasks
	ErrTaskNotFound            = newError(ErrNotFound, "task not found")
	ErrTaskPermissionDenied    = newError(ErrPermissionDenied, "task belongs to another user")
	ErrOutsideDeclarationHours = newError(ErrPolicyViolation, "tasks cannot be declared between 23:00 and 06:00")
	ErrInvalidTimeFormat       = newError(ErrValidation, "invalid time format")
	ErrEndNotAfterStart        = newError(ErrValidation, "end time must be after start time")
	ErrInvalidDate             = newError(ErrValidation, "invalid date")
	ErrJobCodeRequired         = newError(ErrValidation, "job code is required")
	ErrDepartmentRequired      = newError(ErrValidation, "department is required")

	// Reports
	ErrInvalidPeriod = newError(ErrValidation, "month must be 1-12 and year must be positive")

	// Users and auth
	ErrUserNotFound       = newError(ErrNotFound, "user not found")
	ErrUsernameTaken      = newError(ErrConflict, "username already exists")
	ErrUsernameInvalid    = newError(ErrValidation, "username must be between 3 and 50 characters")
	ErrPasswordTooShort   = newError(ErrValidation, "password must be at least 6 characters")
	ErrInvalidRole        = newError(ErrValidation, "invalid role")
	ErrInvalidCredentials = newError(ErrUnauthenticated, "invalid username or password")
	ErrAdminRequired      = newError(ErrPermissionDenied, "administrator access required")
	ErrRoleNotAllowed     = newError(ErrPermissionDenied, "role not allowed to create this account")
	ErrForeignDepartment  = newError(ErrPermissionDenied, "department administrators may only manage their own department")
	ErrCannotDeleteSelf   = newError(ErrPermissionDenied, "you cannot delete your own account")
	ErrCannotEditUser     = newError(ErrPermissionDenied, "you may only edit your own account")
	ErrSystemAlreadySetUp = newError(ErrConflict, "system already has an administrator")
	ErrAccountGone        = newError(ErrUnauthenticated, "account no longer exists")

	// Departments
	ErrDepartmentNotFound  = newError(ErrNotFound, "department not found")
	ErrDepartmentCodeTaken = newError(ErrConflict, "department code already exists")
	ErrDepartmentInUse     = newError(ErrConflict, "cannot delete a department that is still referenced")
	ErrDepartmentNameEmpty = newError(ErrValidation, "department name is required")
	ErrDepartmentCodeEmpty = newError(ErrValidation, "department code is required")

	// Job codes
	ErrJobCodeNotFound = newError(ErrNotFound, "job code not found")
	ErrJobCodeTaken    = newError(ErrConflict, "job code already exists in this department")
)
