package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/dto"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/services"
)

// JobCodeHandler manages job codes
type JobCodeHandler struct {
	jobService *services.JobCodeService
}

// NewJobCodeHandler creates a new JobCodeHandler
func NewJobCodeHandler(jobService *services.JobCodeService) *JobCodeHandler {
	return &JobCodeHandler{jobService: jobService}
}

// ListByDepartment returns the selectable job codes of a department
func (h *JobCodeHandler) ListByDepartment(c *gin.Context) {
	deptID, ok := parseIDParam(c, "department")
	if !ok {
		return
	}

	jobs, err := h.jobService.ListByDepartment(deptID)
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobCodeDTOs(jobs))
}

// CreateJobCode creates or restores a job code
func (h *JobCodeHandler) CreateJobCode(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateJobCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.CreateJobCode(services.CreateJobCodeInput{
		DepartmentID:    req.Department,
		Code:            req.JobCode,
		TaskDescription: req.TaskDescription,
		ActorID:         actorID,
	})
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobCodeDTO(job))
}

// DeleteJobCode soft-deletes a job code
func (h *JobCodeHandler) DeleteJobCode(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.DeleteJobCode(id, actorID); err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job code deleted successfully"})
}
