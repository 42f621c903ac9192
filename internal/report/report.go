// Package report turns a month of tasks into the tabular structures behind
// the Excel exports and serializes them with excelize.
package report

import (
	"fmt"
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
)

const millisPerHour = 3_600_000

// JobKey identifies a job code. Codes are only unique within a department.
type JobKey struct {
	DepartmentID uint64
	Code         string
}

// JobLookup maps a job code to its canonical description.
type JobLookup map[JobKey]string

// NewJobLookup indexes job codes, soft-deleted ones included, so historical
// tasks still resolve their description.
func NewJobLookup(jobs []models.JobCode) JobLookup {
	lookup := make(JobLookup, len(jobs))
	for _, j := range jobs {
		lookup[JobKey{DepartmentID: j.DepartmentID, Code: j.Code}] = j.TaskDescription
	}
	return lookup
}

// Describe returns the canonical description of a task's job code, or "".
func (l JobLookup) Describe(task models.Task) string {
	return l[JobKey{DepartmentID: task.DepartmentID, Code: task.JobCode}]
}

// MonthRange returns [first day 00:00, first day of next month 00:00) in loc.
func MonthRange(month, year int, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// DaysIn returns the number of days in the month.
func DaysIn(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Hours converts summed milliseconds to hours.
func Hours(ms int64) float64 {
	return float64(ms) / millisPerHour
}

// FormatHours renders hours with two decimals.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

func durationMillis(t models.Task) int64 {
	return t.Duration().Milliseconds()
}
