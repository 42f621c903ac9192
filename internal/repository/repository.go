package repository

import (
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByUser returns a user's tasks with from <= date < to, ordered by start time
	ListByUser(userID uint64, from, to time.Time) ([]models.Task, error)

	// ListInRange returns tasks with from <= date < to, ordered by date then start time.
	// A nil userID returns every user's tasks.
	ListInRange(from, to time.Time, userID *uint64) ([]models.Task, error)

	// LockAndUpdate loads the task under a row lock, runs check against the
	// stored row and, if it passes, applies mutate and saves, all in one transaction.
	LockAndUpdate(id uint64, check func(existing *models.Task) error, mutate func(task *models.Task)) (*models.Task, error)

	// LockAndDelete loads the task under a row lock, runs check and deletes it in one transaction.
	LockAndDelete(id uint64, check func(existing *models.Task) error) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateFirstAdmin creates user only while no ADMIN_TOTAL account exists
	CreateFirstAdmin(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns one page of users ordered by username, with the total count
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// ListAll returns every user
	ListAll() ([]models.User, error)

	// Update saves a user's mutable columns
	Update(user *models.User) error

	// Delete removes a user; their tasks are kept
	Delete(id uint64) error

	// CountByRole counts users holding role
	CountByRole(role models.Role) (int64, error)
}

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	// Create creates a new department
	Create(dept *models.Department) error

	// FindByID finds a department by ID
	FindByID(id uint64) (*models.Department, error)

	// FindByCode finds a department by its immutable code
	FindByCode(code string) (*models.Department, error)

	// List returns all departments ordered by name
	List() ([]models.Department, error)

	// UpdateName renames a department
	UpdateName(id uint64, name string) error

	// CountReferences counts users, tasks and job codes (including deleted ones) pointing at a department
	CountReferences(id uint64) (int64, error)

	// Delete removes a department
	Delete(id uint64) error
}

// JobCodeRepository defines the interface for job code data access
type JobCodeRepository interface {
	// Create creates a new job code
	Create(job *models.JobCode) error

	// FindByID finds an active job code by ID
	FindByID(id uint64) (*models.JobCode, error)

	// FindByCode finds a job code of a department, soft-deleted ones included
	FindByCode(departmentID uint64, code string) (*models.JobCode, error)

	// ListActiveByDepartment returns the non-deleted job codes of a department
	ListActiveByDepartment(departmentID uint64) ([]models.JobCode, error)

	// ListAll returns every job code, soft-deleted ones included
	ListAll() ([]models.JobCode, error)

	// Restore clears the deleted flag and replaces the description
	Restore(id uint64, description string) error

	// SoftDelete flags a job code as deleted
	SoftDelete(id uint64) error
}
