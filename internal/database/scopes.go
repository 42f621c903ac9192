package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/timesheet-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// DateBetween restricts tasks to from <= date < to. Bounds are compared in UTC,
// the zone every timestamp is stored in.
func DateBetween(from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.date >= ? AND tasks.date < ?", from.UTC(), to.UTC())
	}
}
