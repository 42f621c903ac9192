package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/constants"
	"github.com/yukikurage/timesheet-api/internal/dto"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/middleware"
	"github.com/yukikurage/timesheet-api/internal/services"
)

// TaskHandler serves the caller's own timesheet
type TaskHandler struct {
	taskService *services.TaskService
	curfew      *services.CurfewPolicy
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService, curfew *services.CurfewPolicy) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		curfew:      curfew,
	}
}

// GetTasksByDate lists the caller's tasks for one day
func (h *TaskHandler) GetTasksByDate(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.GetTasksByDate(c.Param("date"), userID)
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks, h.curfew.Location()))
}

// SaveTask creates a task, or updates one when task_id is present
func (h *TaskHandler) SaveTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	role, _ := middleware.GetRole(c)

	var req dto.SaveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.SaveTask(services.SaveTaskInput{
		TaskID:          req.TaskID,
		DepartmentID:    req.Department,
		JobCode:         req.JobCode,
		TaskDescription: req.TaskDescription,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Date:            req.Date,
		CallerID:        userID,
		CallerRole:      role,
	})
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	status := http.StatusOK
	if req.TaskID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToTaskDTO(task, h.curfew.Location()))
}

// DeleteTask deletes one of the caller's tasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// GetCurfew tells the UI whether declarations are currently blocked
func (h *TaskHandler) GetCurfew(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CurfewResponse{
		Restricted: h.curfew.IsRestricted(),
		ServerTime: h.curfew.Now().Format(time.RFC3339),
		StartHour:  constants.CurfewStartHour,
		EndHour:    constants.CurfewEndHour,
	})
}
