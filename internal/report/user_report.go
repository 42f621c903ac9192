package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
)

// Idle row markers.
const (
	IdleJobCode     = "---"
	IdlePlaceholder = "-"
	IdleDescription = "No job code declared (day off / no work)"
)

// UserReportHeader is the header row of the user report sheet.
var UserReportHeader = []string{"Date", "Job code", "Job description", "Details", "Time ranges", "Hours", "Jobs/day"}

// UserRow is one line of the user report: a job worked on a day, or an idle
// day. JobsPerDay is only rendered when FirstOfDay is set.
type UserRow struct {
	Date              time.Time
	JobCode           string
	StaticDescription string
	UserDescription   string
	TimeRange         string
	Millis            int64
	JobsPerDay        int
	FirstOfDay        bool
	Idle              bool
}

// Hours returns the row's duration in hours.
func (r UserRow) Hours() float64 {
	return Hours(r.Millis)
}

// UserReport is the monthly report of one employee.
type UserReport struct {
	Username string
	Month    int
	Year     int
	Rows     []UserRow

	TotalMillis int64
	IdleDays    int
	JobEntries  int
}

// TotalHours returns the hours worked over the month.
func (r *UserReport) TotalHours() float64 {
	return Hours(r.TotalMillis)
}

// Filename returns the canonical file name of the report.
func (r *UserReport) Filename() string {
	return fmt.Sprintf("REPORT_USER_%s_%d_%d.xlsx", r.Username, r.Month, r.Year)
}

type jobGroup struct {
	code       string
	staticDesc string
	userDescs  []string
	timeRanges []string
	millis     int64
}

// BuildUserReport emits one row per distinct job code per day, or one idle row
// for a day without tasks. tasks must be ordered by date then start time.
func BuildUserReport(username string, month, year int, tasks []models.Task, lookup JobLookup, loc *time.Location) *UserReport {
	report := &UserReport{Username: username, Month: month, Year: year}

	byDay := make(map[int][]models.Task)
	for _, t := range tasks {
		d := t.Date.In(loc)
		if int(d.Month()) != month || d.Year() != year {
			continue
		}
		byDay[d.Day()] = append(byDay[d.Day()], t)
	}

	for day := 1; day <= DaysIn(month, year); day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

		dayTasks := byDay[day]
		if len(dayTasks) == 0 {
			report.IdleDays++
			report.Rows = append(report.Rows, UserRow{
				Date:              date,
				JobCode:           IdleJobCode,
				StaticDescription: IdlePlaceholder,
				UserDescription:   IdleDescription,
				TimeRange:         IdlePlaceholder,
				FirstOfDay:        true,
				Idle:              true,
			})
			continue
		}

		groups := groupByJobCode(dayTasks, lookup, loc)
		for i, g := range groups {
			report.TotalMillis += g.millis
			report.JobEntries++
			row := UserRow{
				Date:              date,
				JobCode:           g.code,
				StaticDescription: g.staticDesc,
				UserDescription:   strings.Join(g.userDescs, "\n"),
				TimeRange:         strings.Join(g.timeRanges, "\n"),
				Millis:            g.millis,
				FirstOfDay:        i == 0,
			}
			if i == 0 {
				row.JobsPerDay = len(groups)
			}
			report.Rows = append(report.Rows, row)
		}
	}

	return report
}

// groupByJobCode keeps job codes in first-seen order.
func groupByJobCode(tasks []models.Task, lookup JobLookup, loc *time.Location) []*jobGroup {
	var groups []*jobGroup
	index := make(map[string]*jobGroup)

	for _, t := range tasks {
		g, ok := index[t.JobCode]
		if !ok {
			g = &jobGroup{code: t.JobCode, staticDesc: lookup.Describe(t)}
			index[t.JobCode] = g
			groups = append(groups, g)
		}
		g.millis += durationMillis(t)
		g.timeRanges = append(g.timeRanges, timeRange(t, loc))
		if t.TaskDescription != "" {
			g.userDescs = append(g.userDescs, t.TaskDescription)
		}
	}

	return groups
}

func timeRange(t models.Task, loc *time.Location) string {
	return t.StartTime.In(loc).Format("15:04") + "-" + t.EndTime.In(loc).Format("15:04")
}
