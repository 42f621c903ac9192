package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/timesheet-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every table owned by the application, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.Department{},
		&models.User{},
		&models.JobCode{},
		&models.Task{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	log.Info("running database migrations")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(db, log); err != nil {
		return err
	}
	log.Info("database migrations completed")
	return nil
}

// AddIndexes adds the lookup indexes used by the report queries.
func AddIndexes(db *gorm.DB, log *slog.Logger) error {
	indexes := []struct {
		model interface{}
		name  string
	}{
		{&models.Task{}, "idx_tasks_user_date"},
		{&models.Task{}, "idx_tasks_date"},
		{&models.Task{}, "idx_tasks_department_id"},
		{&models.User{}, "idx_users_department_id"},
		{&models.JobCode{}, "idx_job_codes_department_code"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Info("created index", "index", idx.name)
	}

	return nil
}

// DefaultDepartments is the department set a fresh installation starts with.
var DefaultDepartments = []models.Department{
	{Name: "Kế toán", Code: "KE_TOAN"},
	{Name: "Kiểm toán Báo cáo Tài chính", Code: "KIEM_TOAN_BCTC"},
	{Name: "Kiểm toán XDCB", Code: "KIEM_TOAN_XDCB"},
	{Name: "Thẩm định giá, Tư vấn thuế", Code: "THAM_DINH_GIA"},
	{Name: "Khác", Code: "KHAC"},
}

// SeedDepartments upserts DefaultDepartments by code, refreshing their names.
func SeedDepartments(db *gorm.DB) error {
	for _, dept := range DefaultDepartments {
		dept := dept
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).Create(&dept).Error
		if err != nil {
			return fmt.Errorf("failed to seed department %s: %w", dept.Code, err)
		}
	}
	return nil
}
