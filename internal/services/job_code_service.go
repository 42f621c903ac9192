package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"gorm.io/gorm"
)

// JobCodeService manages the job codes of each department
type JobCodeService struct {
	jobRepo  repository.JobCodeRepository
	deptRepo repository.DepartmentRepository
	userRepo repository.UserRepository
}

// NewJobCodeService creates a new JobCodeService
func NewJobCodeService(jobRepo repository.JobCodeRepository, deptRepo repository.DepartmentRepository, userRepo repository.UserRepository) *JobCodeService {
	return &JobCodeService{
		jobRepo:  jobRepo,
		deptRepo: deptRepo,
		userRepo: userRepo,
	}
}

// CreateJobCodeInput represents input for creating a job code
type CreateJobCodeInput struct {
	DepartmentID    uint64
	Code            string
	TaskDescription string
	ActorID         uint64
}

// ListByDepartment returns the active job codes of a department
func (s *JobCodeService) ListByDepartment(departmentID uint64) ([]models.JobCode, error) {
	jobs, err := s.jobRepo.ListActiveByDepartment(departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job codes: %w", err)
	}
	return jobs, nil
}

// CreateJobCode adds a job code to a department. Re-creating a soft-deleted
// code restores it with the new description.
func (s *JobCodeService) CreateJobCode(input CreateJobCodeInput) (*models.JobCode, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrJobCodeRequired
	}

	if err := s.authorize(input.ActorID, input.DepartmentID); err != nil {
		return nil, err
	}

	if _, err := s.deptRepo.FindByID(input.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}

	existing, err := s.jobRepo.FindByCode(input.DepartmentID, code)
	switch {
	case err == nil && !existing.Deleted():
		return nil, ErrJobCodeTaken
	case err == nil:
		if err := s.jobRepo.Restore(existing.ID, input.TaskDescription); err != nil {
			return nil, fmt.Errorf("failed to restore job code: %w", err)
		}
		return s.jobRepo.FindByID(existing.ID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to check job code: %w", err)
	}

	job := &models.JobCode{
		DepartmentID:    input.DepartmentID,
		Code:            code,
		TaskDescription: input.TaskDescription,
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job code: %w", err)
	}
	return job, nil
}

// DeleteJobCode soft-deletes a job code
func (s *JobCodeService) DeleteJobCode(id, actorID uint64) error {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobCodeNotFound
		}
		return fmt.Errorf("failed to find job code: %w", err)
	}

	if err := s.authorize(actorID, job.DepartmentID); err != nil {
		return err
	}

	if err := s.jobRepo.SoftDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobCodeNotFound
		}
		return fmt.Errorf("failed to delete job code: %w", err)
	}
	return nil
}

// authorize lets ADMIN_TOTAL manage every department and ADMIN_DEPT its own.
func (s *JobCodeService) authorize(actorID, departmentID uint64) error {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountGone
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	switch actor.Role {
	case models.RoleAdminTotal:
		return nil
	case models.RoleAdminDept:
		if actor.DepartmentID != nil && *actor.DepartmentID == departmentID {
			return nil
		}
		return ErrForeignDepartment
	}
	return ErrAdminRequired
}
