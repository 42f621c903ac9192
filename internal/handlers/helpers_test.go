package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/timesheet-api/internal/database"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"github.com/yukikurage/timesheet-api/internal/services"
	"github.com/yukikurage/timesheet-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testLoc = time.FixedZone("ICT", 7*60*60)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *token.Manager
}

// setupTestEnv builds the full router over an in-memory database. The clock
// is pinned to the given local hour on 2024-03-15.
func setupTestEnv(t *testing.T, hour int) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	now := time.Date(2024, 3, 15, hour, 0, 0, 0, testLoc)
	curfew := services.NewCurfewPolicy(func() time.Time { return now }, testLoc)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	jobRepo := repository.NewJobCodeRepository(db)
	tokens := token.NewManager("test-secret", time.Hour)

	router := NewRouter(Dependencies{
		Auth:        services.NewAuthService(userRepo),
		Tasks:       services.NewTaskService(taskRepo, curfew),
		Reports:     services.NewReportService(taskRepo, userRepo, jobRepo, deptRepo, testLoc),
		Users:       services.NewUserService(userRepo, deptRepo),
		Departments: services.NewDepartmentService(deptRepo),
		JobCodes:    services.NewJobCodeService(jobRepo, deptRepo, userRepo),
		Curfew:      curfew,
		Tokens:      tokens,
		Sessions:    cookie.NewStore([]byte("secret")),
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &testEnv{db: db, router: router, tokens: tokens}
}

func (e *testEnv) createDepartment(t *testing.T, name, code string) *models.Department {
	t.Helper()
	dept := &models.Department{Name: name, Code: code}
	require.NoError(t, e.db.Create(dept).Error)
	return dept
}

func (e *testEnv) createUser(t *testing.T, username string, role models.Role, deptID *uint64) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, PasswordHash: string(hash), Role: role, DepartmentID: deptID}
	require.NoError(t, e.db.Omit("Department").Create(user).Error)
	return user
}

// do sends a JSON request. A nil user sends it anonymously.
func (e *testEnv) do(t *testing.T, method, url string, body interface{}, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		signed, err := e.tokens.Generate(user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+signed)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
