package repository

import (
	"time"

	"github.com/yukikurage/timesheet-api/internal/database"
	"github.com/yukikurage/timesheet-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser returns a user's tasks for a date window ordered by start time
func (r *GormTaskRepository) ListByUser(userID uint64, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Scopes(database.DateBetween(from, to)).
		Where("tasks.user_id = ?", userID).
		Order("tasks.start_time ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListInRange returns tasks for a date window, optionally for one user
func (r *GormTaskRepository) ListInRange(from, to time.Time, userID *uint64) ([]models.Task, error) {
	query := r.db.Scopes(database.DateBetween(from, to))
	if userID != nil {
		query = query.Where("tasks.user_id = ?", *userID)
	}

	var tasks []models.Task
	if err := query.Order("tasks.date ASC").Order("tasks.start_time ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// LockAndUpdate runs the ownership check and the write against the same locked row
func (r *GormTaskRepository) LockAndUpdate(id uint64, check func(existing *models.Task) error, mutate func(task *models.Task)) (*models.Task, error) {
	var task models.Task
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			return err
		}

		if err := check(&task); err != nil {
			return err
		}

		mutate(&task)
		task.ID = id

		return tx.Omit(clause.Associations).Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// LockAndDelete re-checks the stored row inside the deleting transaction
func (r *GormTaskRepository) LockAndDelete(id uint64, check func(existing *models.Task) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			return err
		}

		if err := check(&task); err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
