package models

import "time"

// Task is one declared work interval. UserID, DepartmentID and JobCode are
// weak references: a deleted user leaves its tasks in place, and the job code
// is joined by (DepartmentID, JobCode) rather than by id.
type Task struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	UserID          uint64    `gorm:"not null;index:idx_tasks_user_date" json:"user_id"`
	DepartmentID    uint64    `gorm:"not null;index" json:"department"`
	JobCode         string    `gorm:"type:varchar(50);not null" json:"job_code"`
	TaskDescription string    `gorm:"type:text" json:"task_description"`
	Date            time.Time `gorm:"not null;index:idx_tasks_user_date;index" json:"date"`
	StartTime       time.Time `gorm:"not null" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Department Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"-"`
}

// Duration is the length of the declared interval.
func (t Task) Duration() time.Duration {
	return t.EndTime.Sub(t.StartTime)
}
