package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/dto"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/services"
)

// DepartmentHandler manages departments
type DepartmentHandler struct {
	deptService *services.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(deptService *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptService: deptService}
}

// ListDepartments returns all departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	depts, err := h.deptService.ListDepartments()
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTOs(depts))
}

// CreateDepartment creates a department
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dept, err := h.deptService.CreateDepartment(services.CreateDepartmentInput{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepartmentDTO(dept))
}

// UpdateDepartment renames a department
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dept, err := h.deptService.RenameDepartment(id, req.Name)
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(dept))
}

// DeleteDepartment removes an unreferenced department
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deptService.DeleteDepartment(id); err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}
