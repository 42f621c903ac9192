package dto

import (
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
)

// TaskDTO represents a task in API responses. TaskID duplicates ID for
// clients that address tasks by task_id.
type TaskDTO struct {
	ID              uint64 `json:"id"`
	TaskID          uint64 `json:"task_id"`
	UserID          uint64 `json:"user_id"`
	Department      uint64 `json:"department"`
	JobCode         string `json:"job_code"`
	TaskDescription string `json:"task_description"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Date            string `json:"date"`
}

// SaveTaskRequest creates a task, or updates one when TaskID is set
type SaveTaskRequest struct {
	TaskID          *uint64 `json:"task_id"`
	Department      uint64  `json:"department" binding:"required"`
	JobCode         string  `json:"job_code" binding:"required"`
	TaskDescription string  `json:"task_description"`
	StartTime       string  `json:"start_time" binding:"required"`
	EndTime         string  `json:"end_time" binding:"required"`
	Date            string  `json:"date" binding:"required"`
}

// CurfewResponse describes the declaration window
type CurfewResponse struct {
	Restricted bool   `json:"restricted"`
	ServerTime string `json:"server_time"`
	StartHour  int    `json:"start_hour"`
	EndHour    int    `json:"end_hour"`
}

// ToTaskDTO renders instants as RFC3339 and the date as a local calendar day
func ToTaskDTO(task *models.Task, loc *time.Location) TaskDTO {
	return TaskDTO{
		ID:              task.ID,
		TaskID:          task.ID,
		UserID:          task.UserID,
		Department:      task.DepartmentID,
		JobCode:         task.JobCode,
		TaskDescription: task.TaskDescription,
		StartTime:       task.StartTime.In(loc).Format(time.RFC3339),
		EndTime:         task.EndTime.In(loc).Format(time.RFC3339),
		Date:            task.Date.In(loc).Format("2006-01-02"),
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task, loc *time.Location) []TaskDTO {
	result := make([]TaskDTO, len(tasks))
	for i := range tasks {
		result[i] = ToTaskDTO(&tasks[i], loc)
	}
	return result
}
