package repository

import (
	"github.com/yukikurage/timesheet-api/internal/models"
	"gorm.io/gorm"
)

// GormDepartmentRepository is a GORM implementation of DepartmentRepository
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Create creates a new department
func (r *GormDepartmentRepository) Create(dept *models.Department) error {
	return r.db.Create(dept).Error
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(id uint64) (*models.Department, error) {
	var dept models.Department
	if err := r.db.First(&dept, id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

// FindByCode finds a department by code
func (r *GormDepartmentRepository) FindByCode(code string) (*models.Department, error) {
	var dept models.Department
	if err := r.db.Where("code = ?", code).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

// List returns all departments ordered by name
func (r *GormDepartmentRepository) List() ([]models.Department, error) {
	var depts []models.Department
	if err := r.db.Order("name ASC").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

// UpdateName renames a department; the code never changes
func (r *GormDepartmentRepository) UpdateName(id uint64, name string) error {
	result := r.db.Model(&models.Department{ID: id}).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountReferences counts rows in users, tasks and job_codes that point at the department
func (r *GormDepartmentRepository) CountReferences(id uint64) (int64, error) {
	var total int64
	for _, model := range []interface{}{&models.User{}, &models.Task{}, &models.JobCode{}} {
		var count int64
		if err := r.db.Unscoped().Model(model).Where("department_id = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

// Delete removes a department
func (r *GormDepartmentRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
