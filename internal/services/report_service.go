package services

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/timesheet-api/internal/report"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"gorm.io/gorm"
)

// ReportDocument is a serialized workbook ready to be sent to the client.
type ReportDocument struct {
	Filename string
	Content  []byte
}

// ReportService builds the monthly Excel exports
type ReportService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	jobRepo  repository.JobCodeRepository
	deptRepo repository.DepartmentRepository
	loc      *time.Location
}

// NewReportService creates a new ReportService
func NewReportService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	jobRepo repository.JobCodeRepository,
	deptRepo repository.DepartmentRepository,
	loc *time.Location,
) *ReportService {
	return &ReportService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		jobRepo:  jobRepo,
		deptRepo: deptRepo,
		loc:      loc,
	}
}

// BuildUserReport aggregates one user's month without serializing it
func (s *ReportService) BuildUserReport(userID uint64, month, year int) (*report.UserReport, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	from, to := report.MonthRange(month, year, s.loc)
	tasks, err := s.taskRepo.ListInRange(from, to, &userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	jobs, err := s.jobRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list job codes: %w", err)
	}

	return report.BuildUserReport(user.Username, month, year, tasks, report.NewJobLookup(jobs), s.loc), nil
}

// GenerateUserReport builds and serializes one user's monthly report
func (s *ReportService) GenerateUserReport(userID uint64, month, year int) (*ReportDocument, error) {
	r, err := s.BuildUserReport(userID, month, year)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.WriteUserReport(&buf, r); err != nil {
		return nil, err
	}

	return &ReportDocument{Filename: r.Filename(), Content: buf.Bytes()}, nil
}

// BuildJobReport aggregates the company's month without serializing it
func (s *ReportService) BuildJobReport(month, year int) (*report.JobReport, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	from, to := report.MonthRange(month, year, s.loc)
	tasks, err := s.taskRepo.ListInRange(from, to, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	jobs, err := s.jobRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list job codes: %w", err)
	}

	depts, err := s.deptRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	return report.BuildJobReport(report.JobReportInput{
		Month:       month,
		Year:        year,
		Tasks:       tasks,
		Users:       users,
		Jobs:        report.NewJobLookup(jobs),
		Departments: depts,
	}), nil
}

// GenerateJobReport builds and serializes the company's monthly report
func (s *ReportService) GenerateJobReport(month, year int) (*ReportDocument, error) {
	r, err := s.BuildJobReport(month, year)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.WriteJobReport(&buf, r); err != nil {
		return nil, err
	}

	return &ReportDocument{Filename: r.Filename(), Content: buf.Bytes()}, nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < 1 {
		return ErrInvalidPeriod
	}
	return nil
}
