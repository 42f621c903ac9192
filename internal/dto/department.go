package dto

import "github.com/yukikurage/timesheet-api/internal/models"

// DepartmentDTO represents a department in API responses
type DepartmentDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// CreateDepartmentRequest creates a department
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// UpdateDepartmentRequest renames a department
type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// JobCodeDTO represents a job code in API responses
type JobCodeDTO struct {
	ID              uint64 `json:"id"`
	Department      uint64 `json:"department"`
	JobCode         string `json:"job_code"`
	TaskDescription string `json:"task_description"`
}

// CreateJobCodeRequest creates or restores a job code
type CreateJobCodeRequest struct {
	Department      uint64 `json:"department" binding:"required"`
	JobCode         string `json:"job_code" binding:"required"`
	TaskDescription string `json:"task_description"`
}

// ToDepartmentDTO converts a department model
func ToDepartmentDTO(dept *models.Department) DepartmentDTO {
	return DepartmentDTO{ID: dept.ID, Name: dept.Name, Code: dept.Code}
}

// ToDepartmentDTOs converts a slice of departments
func ToDepartmentDTOs(depts []models.Department) []DepartmentDTO {
	result := make([]DepartmentDTO, len(depts))
	for i := range depts {
		result[i] = ToDepartmentDTO(&depts[i])
	}
	return result
}

// ToJobCodeDTO converts a job code model
func ToJobCodeDTO(job *models.JobCode) JobCodeDTO {
	return JobCodeDTO{
		ID:              job.ID,
		Department:      job.DepartmentID,
		JobCode:         job.Code,
		TaskDescription: job.TaskDescription,
	}
}

// ToJobCodeDTOs converts a slice of job codes
func ToJobCodeDTOs(jobs []models.JobCode) []JobCodeDTO {
	result := make([]JobCodeDTO, len(jobs))
	for i := range jobs {
		result[i] = ToJobCodeDTO(&jobs[i])
	}
	return result
}
