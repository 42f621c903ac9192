package models

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// JobCode is unique per department. Deletion only raises the IsDeleted flag so
// that historical tasks keep resolving their canonical description.
type JobCode struct {
	ID              uint64                `gorm:"primarykey" json:"id"`
	DepartmentID    uint64                `gorm:"not null;uniqueIndex:idx_job_codes_department_code" json:"department"`
	Code            string                `gorm:"column:job_code;type:varchar(50);not null;uniqueIndex:idx_job_codes_department_code" json:"job_code"`
	TaskDescription string                `gorm:"type:text" json:"task_description"`
	IsDeleted       soft_delete.DeletedAt `gorm:"softDelete:flag;default:0" json:"-"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`

	// Relations
	Department Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"-"`
}

// Deleted reports whether the job code has been soft-deleted.
func (j JobCode) Deleted() bool {
	return j.IsDeleted != 0
}
