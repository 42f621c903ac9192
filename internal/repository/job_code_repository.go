package repository

import (
	"github.com/yukikurage/timesheet-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobCodeRepository is a GORM implementation of JobCodeRepository
type GormJobCodeRepository struct {
	db *gorm.DB
}

// NewJobCodeRepository creates a new JobCodeRepository
func NewJobCodeRepository(db *gorm.DB) JobCodeRepository {
	return &GormJobCodeRepository{db: db}
}

// Create creates a new job code
func (r *GormJobCodeRepository) Create(job *models.JobCode) error {
	return r.db.Omit(clause.Associations).Create(job).Error
}

// FindByID finds an active job code by ID
func (r *GormJobCodeRepository) FindByID(id uint64) (*models.JobCode, error) {
	var job models.JobCode
	if err := r.db.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByCode finds a job code of a department, soft-deleted ones included
func (r *GormJobCodeRepository) FindByCode(departmentID uint64, code string) (*models.JobCode, error) {
	var job models.JobCode
	err := r.db.Unscoped().
		Where("department_id = ? AND job_code = ?", departmentID, code).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListActiveByDepartment returns the selectable job codes of a department
func (r *GormJobCodeRepository) ListActiveByDepartment(departmentID uint64) ([]models.JobCode, error) {
	var jobs []models.JobCode
	err := r.db.
		Where("department_id = ?", departmentID).
		Order("job_code ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListAll returns every job code, soft-deleted ones included
func (r *GormJobCodeRepository) ListAll() ([]models.JobCode, error) {
	var jobs []models.JobCode
	if err := r.db.Unscoped().Order("id ASC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Restore brings a soft-deleted job code back with a new description
func (r *GormJobCodeRepository) Restore(id uint64, description string) error {
	return r.db.Unscoped().
		Model(&models.JobCode{ID: id}).
		Updates(map[string]interface{}{
			"is_deleted":       0,
			"task_description": description,
		}).Error
}

// SoftDelete flags a job code as deleted
func (r *GormJobCodeRepository) SoftDelete(id uint64) error {
	result := r.db.Delete(&models.JobCode{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
