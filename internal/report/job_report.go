package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yukikurage/timesheet-api/internal/models"
)

// UnknownUser names tasks whose user no longer exists.
const UnknownUser = "Unknown"

// CompanyColor is the color of the company-wide table.
const CompanyColor = "000000"

// Palette cycles over departments by index.
var Palette = []string{"B22222", "2E8B57", "4169E1", "DAA520", "8E44AD", "F39C12"}

// NoDataLabel fills a table that has no rows.
const NoDataLabel = "(no data)"

// Column headers of the job report.
var (
	CompanyTableHeader    = []string{"Job code", "Job description", "Department", "Employees", "Total hours"}
	DepartmentTableHeader = []string{"Job code", "Job description", "Employees", "Total hours"}
	DetailSheetHeader     = []string{"Job code", "Job description", "Employee", "Total hours"}
)

// JobSummaryRow aggregates every task of one job code.
type JobSummaryRow struct {
	Code        string
	Description string
	Department  string
	Users       int
	Millis      int64
}

// JobTable is one titled table of the summary sheet.
type JobTable struct {
	Title          string
	Color          string
	ShowDepartment bool
	Rows           []JobSummaryRow
}

// DetailRow is the time one employee spent on one job code.
type DetailRow struct {
	Code        string
	Description string
	Username    string
	Millis      int64
}

// DepartmentSheet is the detail sheet of one department.
type DepartmentSheet struct {
	Name  string
	Color string
	Rows  []DetailRow
}

// JobReport is the company-wide monthly report.
type JobReport struct {
	Month  int
	Year   int
	Tables []JobTable
	Sheets []DepartmentSheet
}

// Filename returns the canonical file name of the report.
func (r *JobReport) Filename() string {
	return fmt.Sprintf("REPORT_JOBCODE_MONTH_%d_YEAR_%d.xlsx", r.Month, r.Year)
}

// JobReportInput is everything BuildJobReport reads. Departments must be
// ordered by name.
type JobReportInput struct {
	Month       int
	Year        int
	Tasks       []models.Task
	Users       []models.User
	Jobs        JobLookup
	Departments []models.Department
}

type jobReportBuilder struct {
	in        JobReportInput
	usernames map[uint64]string
	deptNames map[uint64]string
}

// BuildJobReport builds the summary tables and one detail sheet per department.
func BuildJobReport(in JobReportInput) *JobReport {
	b := &jobReportBuilder{
		in:        in,
		usernames: make(map[uint64]string, len(in.Users)),
		deptNames: make(map[uint64]string, len(in.Departments)),
	}
	for _, u := range in.Users {
		b.usernames[u.ID] = u.Username
	}
	for _, d := range in.Departments {
		b.deptNames[d.ID] = d.Name
	}

	report := &JobReport{Month: in.Month, Year: in.Year}
	report.Tables = append(report.Tables, JobTable{
		Title:          "1. COMPANY-WIDE SUMMARY",
		Color:          CompanyColor,
		ShowDepartment: true,
		Rows:           b.aggregate(nil),
	})

	names := newSheetNamer(SummarySheetName)
	for i, d := range in.Departments {
		color := Palette[i%len(Palette)]
		id := d.ID
		report.Tables = append(report.Tables, JobTable{
			Title: strings.ToUpper(fmt.Sprintf("%d. Department %s", i+2, d.Name)),
			Color: color,
			Rows:  b.aggregate(&id),
		})
		report.Sheets = append(report.Sheets, DepartmentSheet{
			Name:  names.next(d.Name),
			Color: color,
			Rows:  b.details(d.ID),
		})
	}

	return report
}

func (b *jobReportBuilder) username(id uint64) string {
	if name, ok := b.usernames[id]; ok {
		return name
	}
	return UnknownUser
}

func (b *jobReportBuilder) departmentName(id uint64) string {
	if name, ok := b.deptNames[id]; ok {
		return name
	}
	return strconv.FormatUint(id, 10)
}

// aggregate groups tasks by job code, optionally within one department. The
// description and department of a group come from its first task.
func (b *jobReportBuilder) aggregate(departmentID *uint64) []JobSummaryRow {
	type group struct {
		row   JobSummaryRow
		users map[string]struct{}
	}

	groups := make(map[string]*group)
	for _, t := range b.in.Tasks {
		if departmentID != nil && t.DepartmentID != *departmentID {
			continue
		}
		g, ok := groups[t.JobCode]
		if !ok {
			g = &group{
				row: JobSummaryRow{
					Code:        t.JobCode,
					Description: b.in.Jobs.Describe(t),
					Department:  b.departmentName(t.DepartmentID),
				},
				users: make(map[string]struct{}),
			}
			groups[t.JobCode] = g
		}
		g.row.Millis += durationMillis(t)
		g.users[b.username(t.UserID)] = struct{}{}
	}

	rows := make([]JobSummaryRow, 0, len(groups))
	for _, g := range groups {
		g.row.Users = len(g.users)
		rows = append(rows, g.row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

	return rows
}

// details groups a department's tasks by (job code, username).
func (b *jobReportBuilder) details(departmentID uint64) []DetailRow {
	type key struct{ code, username string }

	groups := make(map[key]*DetailRow)
	for _, t := range b.in.Tasks {
		if t.DepartmentID != departmentID {
			continue
		}
		k := key{code: t.JobCode, username: b.username(t.UserID)}
		row, ok := groups[k]
		if !ok {
			row = &DetailRow{Code: k.code, Description: b.in.Jobs.Describe(t), Username: k.username}
			groups[k] = row
		}
		row.Millis += durationMillis(t)
	}

	rows := make([]DetailRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Code != rows[j].Code {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].Username < rows[j].Username
	})

	return rows
}
