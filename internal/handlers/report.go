package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/middleware"
	"github.com/yukikurage/timesheet-api/internal/report"
	"github.com/yukikurage/timesheet-api/internal/services"
)

// ReportHandler streams the monthly Excel exports
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// UserReport exports one user's month. Non-admin callers may only export their own.
func (h *ReportHandler) UserReport(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	target := userID
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user_id")
			return
		}
		target = id
	}

	if role, _ := middleware.GetRole(c); target != userID && !role.IsAdmin() {
		apierrors.Forbidden(c, "You may only export your own report")
		return
	}

	doc, err := h.reportService.GenerateUserReport(target, month, year)
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	sendWorkbook(c, doc)
}

// JobReport exports the company-wide job code summary
func (h *ReportHandler) JobReport(c *gin.Context) {
	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	doc, err := h.reportService.GenerateJobReport(month, year)
	if err != nil {
		apierrors.FromServiceError(c, err)
		return
	}

	sendWorkbook(c, doc)
}

func parsePeriod(c *gin.Context) (int, int, bool) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid month")
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid year")
		return 0, 0, false
	}
	return month, year, true
}

func sendWorkbook(c *gin.Context, doc *services.ReportDocument) {
	c.Header("Content-Disposition", report.ContentDisposition(doc.Filename))
	c.Data(http.StatusOK, report.ContentType, doc.Content)
}
