package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/report"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"gorm.io/gorm"
)

func newReportService(db *gorm.DB) *ReportService {
	return NewReportService(
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
		repository.NewJobCodeRepository(db),
		repository.NewDepartmentRepository(db),
		testLoc,
	)
}

func saveTask(t *testing.T, db *gorm.DB, userID, deptID uint64, code, date, start, end string) {
	t.Helper()
	svc := NewTaskService(repository.NewTaskRepository(db), NewCurfewPolicy(fixedClock(12, 0), testLoc))
	_, err := svc.SaveTask(SaveTaskInput{
		DepartmentID: deptID,
		JobCode:      code,
		StartTime:    date + "T" + start + ":00+07:00",
		EndTime:      date + "T" + end + ":00+07:00",
		Date:         date,
		CallerID:     userID,
		CallerRole:   models.RoleUser,
	})
	require.NoError(t, err)
}

func TestReportService_UserReportUnknownUser(t *testing.T) {
	svc := newReportService(newTestDB(t))

	_, err := svc.GenerateUserReport(42, 3, 2024)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportService_InvalidPeriod(t *testing.T) {
	svc := newReportService(newTestDB(t))

	_, err := svc.GenerateJobReport(13, 2024)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.GenerateUserReport(1, 0, 2024)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReportService_EmptyMonthIsAllIdle(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "idle", models.RoleUser, nil)

	r, err := newReportService(db).BuildUserReport(user.ID, 4, 2024)
	require.NoError(t, err)

	assert.Len(t, r.Rows, 30)
	assert.Equal(t, 30, r.IdleDays)
	assert.Equal(t, "0.00", report.FormatHours(r.TotalHours()))
}

func TestReportService_UserReportIncludesLastDayAndDeletedJobs(t *testing.T) {
	db := newTestDB(t)
	dept := createDepartment(t, db, "Audit", "AUDIT")
	user := createUser(t, db, "an", models.RoleUser, &dept.ID)

	job := &models.JobCode{DepartmentID: dept.ID, Code: "A1", TaskDescription: "Fieldwork"}
	require.NoError(t, db.Create(job).Error)
	require.NoError(t, db.Delete(job).Error)

	saveTask(t, db, user.ID, dept.ID, "A1", "2024-03-31", "09:00", "11:30")
	saveTask(t, db, user.ID, dept.ID, "A1", "2024-04-01", "09:00", "10:00")

	r, err := newReportService(db).BuildUserReport(user.ID, 3, 2024)
	require.NoError(t, err)

	last := r.Rows[len(r.Rows)-1]
	assert.Equal(t, 31, last.Date.Day())
	assert.Equal(t, "Fieldwork", last.StaticDescription)
	assert.Equal(t, "2.50", report.FormatHours(last.Hours()))
	assert.Equal(t, "2.50", report.FormatHours(r.TotalHours()))
	assert.Equal(t, 30, r.IdleDays)
	assert.Equal(t, 1, r.JobEntries)
}

func TestReportService_GenerateJobReport(t *testing.T) {
	db := newTestDB(t)
	audit := createDepartment(t, db, "Audit", "AUDIT")
	tax := createDepartment(t, db, "Tax", "TAX")
	an := createUser(t, db, "an", models.RoleUser, &audit.ID)
	binh := createUser(t, db, "binh", models.RoleUser, &tax.ID)

	saveTask(t, db, an.ID, audit.ID, "A1", "2024-03-04", "09:00", "10:00")
	saveTask(t, db, binh.ID, tax.ID, "A1", "2024-03-05", "09:00", "10:00")
	saveTask(t, db, binh.ID, tax.ID, "T9", "2024-03-05", "13:00", "13:45")
	require.NoError(t, db.Delete(&models.User{}, binh.ID).Error)

	doc, err := newReportService(db).GenerateJobReport(3, 2024)
	require.NoError(t, err)
	assert.Equal(t, "REPORT_JOBCODE_MONTH_3_YEAR_2024.xlsx", doc.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.SummarySheetName, "Audit", "Tax"}, f.GetSheetList())

	rows, err := f.GetRows("Tax")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"A1", "", report.UnknownUser, "1.00"}, rows[1])
	assert.Equal(t, []string{"T9", "", report.UnknownUser, "0.75"}, rows[2])
}

func TestReportService_MonthBoundariesUseLocation(t *testing.T) {
	from, to := report.MonthRange(2, 2024, testLoc)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, testLoc), from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, testLoc), to)
}
