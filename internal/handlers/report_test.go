package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/report"
)

func seedTask(t *testing.T, env *testEnv, user *models.User, deptID uint64, code string, day, fromHour, toHour int) {
	t.Helper()
	date := time.Date(2024, 3, day, 12, 0, 0, 0, testLoc)
	task := &models.Task{
		UserID:       user.ID,
		DepartmentID: deptID,
		JobCode:      code,
		Date:         date.UTC(),
		StartTime:    time.Date(2024, 3, day, fromHour, 0, 0, 0, testLoc).UTC(),
		EndTime:      time.Date(2024, 3, day, toHour, 0, 0, 0, testLoc).UTC(),
	}
	require.NoError(t, env.db.Omit("Department").Create(task).Error)
}

func TestUserReportDownload(t *testing.T) {
	env := setupTestEnv(t, 10)
	dept := env.createDepartment(t, "Engineering", "ENG")
	user := env.createUser(t, "trần.đức", models.RoleUser, &dept.ID)
	require.NoError(t, env.db.Omit("Department").Create(&models.JobCode{DepartmentID: dept.ID, Code: "DEV", TaskDescription: "Development"}).Error)
	seedTask(t, env, user, dept.ID, "DEV", 4, 9, 12)
	seedTask(t, env, user, dept.ID, "DEV", 31, 13, 17)

	w := env.do(t, http.MethodGet, "/api/reports/user?month=3&year=2024", nil, user)
	expectStatus(t, w, http.StatusOK)

	assert.Equal(t, report.ContentType, w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, `filename="REPORT_USER_tran.duc_3_2024.xlsx"`)
	assert.Contains(t, disposition, "filename*=UTF-8''REPORT_USER_tr%E1%BA%A7n.%C4%91%E1%BB%A9c_3_2024.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.UserDetailSheetName}, f.GetSheetList())
	rows, err := f.GetRows(report.UserDetailSheetName)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, report.UserReportHeader[0], rows[0][0])
	// header plus one row for each of the 31 days
	assert.GreaterOrEqual(t, len(rows), 32)
}

func TestUserReportAccess(t *testing.T) {
	env := setupTestEnv(t, 10)
	dept := env.createDepartment(t, "Engineering", "ENG")
	alice := env.createUser(t, "alice", models.RoleUser, &dept.ID)
	bob := env.createUser(t, "bob", models.RoleUser, &dept.ID)
	admin := env.createUser(t, "root", models.RoleAdminTotal, nil)

	tests := []struct {
		name     string
		url      string
		caller   *models.User
		expected int
	}{
		{"anonymous", "/api/reports/user?month=3&year=2024", nil, http.StatusUnauthorized},
		{"own report", fmt.Sprintf("/api/reports/user?user_id=%d&month=3&year=2024", alice.ID), alice, http.StatusOK},
		{"someone else", fmt.Sprintf("/api/reports/user?user_id=%d&month=3&year=2024", bob.ID), alice, http.StatusForbidden},
		{"admin for anyone", fmt.Sprintf("/api/reports/user?user_id=%d&month=3&year=2024", bob.ID), admin, http.StatusOK},
		{"unknown user", "/api/reports/user?user_id=9999&month=3&year=2024", admin, http.StatusNotFound},
		{"bad user id", "/api/reports/user?user_id=abc&month=3&year=2024", admin, http.StatusBadRequest},
		{"missing month", "/api/reports/user?year=2024", alice, http.StatusBadRequest},
		{"month out of range", "/api/reports/user?month=13&year=2024", alice, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, tt.url, nil, tt.caller)
			expectStatus(t, w, tt.expected)
		})
	}
}

func TestJobReportDownload(t *testing.T) {
	env := setupTestEnv(t, 10)
	eng := env.createDepartment(t, "Engineering", "ENG")
	ops := env.createDepartment(t, "Operations", "OPS")
	alice := env.createUser(t, "alice", models.RoleUser, &eng.ID)
	admin := env.createUser(t, "root", models.RoleAdminTotal, nil)
	seedTask(t, env, alice, eng.ID, "DEV", 4, 9, 12)
	seedTask(t, env, alice, ops.ID, "SUP", 5, 9, 10)

	w := env.do(t, http.MethodGet, "/api/reports/jobs?month=3&year=2024", nil, alice)
	expectStatus(t, w, http.StatusForbidden)

	w = env.do(t, http.MethodGet, "/api/reports/jobs?month=3&year=2024", nil, admin)
	expectStatus(t, w, http.StatusOK)
	assert.Equal(t, report.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="REPORT_JOBCODE_MONTH_3_YEAR_2024.xlsx"`)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.SummarySheetName, "Engineering", "Operations"}, f.GetSheetList())
}

func TestJobReportEmptyMonth(t *testing.T) {
	env := setupTestEnv(t, 10)
	admin := env.createUser(t, "root", models.RoleAdminTotal, nil)

	w := env.do(t, http.MethodGet, "/api/reports/jobs?month=2&year=2024", nil, admin)
	expectStatus(t, w, http.StatusOK)
	assert.NotEmpty(t, w.Body.Bytes())
}
