package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"gorm.io/gorm"
)

// DepartmentService manages departments
type DepartmentService struct {
	deptRepo repository.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(deptRepo repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{deptRepo: deptRepo}
}

// CreateDepartmentInput represents input for creating a department
type CreateDepartmentInput struct {
	Name string
	Code string
}

// ListDepartments returns all departments ordered by name
func (s *DepartmentService) ListDepartments() ([]models.Department, error) {
	depts, err := s.deptRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

// CreateDepartment creates a department. The code is stored upper-cased and never changes.
func (s *DepartmentService) CreateDepartment(input CreateDepartmentInput) (*models.Department, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrDepartmentNameEmpty
	}
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrDepartmentCodeEmpty
	}

	if _, err := s.deptRepo.FindByCode(code); err == nil {
		return nil, ErrDepartmentCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check department code: %w", err)
	}

	dept := &models.Department{Name: name, Code: code}
	if err := s.deptRepo.Create(dept); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return dept, nil
}

// RenameDepartment changes a department's display name
func (s *DepartmentService) RenameDepartment(id uint64, name string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrDepartmentNameEmpty
	}

	if err := s.deptRepo.UpdateName(id, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to rename department: %w", err)
	}

	return s.findDepartment(id)
}

// DeleteDepartment removes a department nothing refers to
func (s *DepartmentService) DeleteDepartment(id uint64) error {
	if _, err := s.findDepartment(id); err != nil {
		return err
	}

	refs, err := s.deptRepo.CountReferences(id)
	if err != nil {
		return fmt.Errorf("failed to count department references: %w", err)
	}
	if refs > 0 {
		return ErrDepartmentInUse
	}

	if err := s.deptRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return nil
}

func (s *DepartmentService) findDepartment(id uint64) (*models.Department, error) {
	dept, err := s.deptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return dept, nil
}
