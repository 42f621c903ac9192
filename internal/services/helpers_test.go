package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/timesheet-api/internal/database"
	"github.com/yukikurage/timesheet-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testLoc = time.FixedZone("ICT", 7*60*60)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every new connection to :memory: opens an empty database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// fixedClock returns a clock stuck at hour:minute local time on 2024-03-15.
func fixedClock(hour, minute int) func() time.Time {
	at := time.Date(2024, 3, 15, hour, minute, 0, 0, testLoc)
	return func() time.Time { return at }
}

func createDepartment(t *testing.T, db *gorm.DB, name, code string) *models.Department {
	t.Helper()
	dept := &models.Department{Name: name, Code: code}
	require.NoError(t, db.Create(dept).Error)
	return dept
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role, deptID *uint64) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, PasswordHash: string(hash), Role: role, DepartmentID: deptID}
	require.NoError(t, db.Omit("Department").Create(user).Error)
	return user
}

func ptr[T any](v T) *T {
	return &v
}
