package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/timesheet-api/internal/constants"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"gorm.io/gorm"
)

// Layouts accepted for start and end times. Zone-less layouts are read in the
// configured location.
var (
	instantLayouts = []string{time.RFC3339Nano}
	localLayouts   = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}
)

const dateLayout = "2006-01-02"

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	curfew   *CurfewPolicy
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, curfew *CurfewPolicy) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		curfew:   curfew,
	}
}

// SaveTaskInput represents input for creating or updating a task.
// A nil TaskID creates a new task owned by CallerID.
type SaveTaskInput struct {
	TaskID          *uint64
	DepartmentID    uint64
	JobCode         string
	TaskDescription string
	StartTime       string
	EndTime         string
	Date            string
	CallerID        uint64
	CallerRole      models.Role
}

// GetTasksByDate returns the caller's tasks for one local calendar day
func (s *TaskService) GetTasksByDate(date string, callerID uint64) ([]models.Task, error) {
	day, err := parseDate(date, s.curfew.Location())
	if err != nil {
		return nil, err
	}

	start := startOfDay(day)
	tasks, err := s.taskRepo.ListByUser(callerID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// SaveTask creates a task or updates one the caller owns
func (s *TaskService) SaveTask(input SaveTaskInput) (*models.Task, error) {
	if input.CallerRole != models.RoleAdminTotal && s.curfew.IsRestricted() {
		return nil, ErrOutsideDeclarationHours
	}

	loc := s.curfew.Location()

	start, err := parseInstant(input.StartTime, loc)
	if err != nil {
		return nil, err
	}
	end, err := parseInstant(input.EndTime, loc)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrEndNotAfterStart
	}

	day, err := parseDate(input.Date, loc)
	if err != nil {
		return nil, err
	}

	jobCode := strings.TrimSpace(input.JobCode)
	if jobCode == "" {
		return nil, ErrJobCodeRequired
	}
	if input.DepartmentID == 0 {
		return nil, ErrDepartmentRequired
	}

	apply := func(task *models.Task) {
		task.DepartmentID = input.DepartmentID
		task.JobCode = jobCode
		task.TaskDescription = input.TaskDescription
		task.StartTime = start.UTC()
		task.EndTime = end.UTC()
		task.Date = day.UTC()
	}

	if input.TaskID == nil {
		task := &models.Task{UserID: input.CallerID}
		apply(task)
		if err := s.taskRepo.Create(task); err != nil {
			return nil, fmt.Errorf("failed to create task: %w", err)
		}
		return task, nil
	}

	task, err := s.taskRepo.LockAndUpdate(*input.TaskID, ownedBy(input.CallerID), apply)
	if err != nil {
		return nil, taskWriteError("update", err)
	}

	return task, nil
}

// DeleteTask deletes a task the caller owns
func (s *TaskService) DeleteTask(taskID, callerID uint64) error {
	if err := s.taskRepo.LockAndDelete(taskID, ownedBy(callerID)); err != nil {
		return taskWriteError("delete", err)
	}
	return nil
}

func ownedBy(callerID uint64) func(*models.Task) error {
	return func(existing *models.Task) error {
		if existing.UserID != callerID {
			return ErrTaskPermissionDenied
		}
		return nil
	}
}

func taskWriteError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrTaskNotFound
	case errors.Is(err, ErrTaskPermissionDenied):
		return ErrTaskPermissionDenied
	default:
		return fmt.Errorf("failed to %s task: %w", op, err)
	}
}

func parseInstant(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimeFormat
}

// parseDate accepts YYYY-MM-DD or an RFC3339 instant and returns that local
// calendar day at noon.
func parseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		t = t.In(loc)
	}

	return time.Date(t.Year(), t.Month(), t.Day(), constants.NormalizedTaskHour, 0, 0, 0, loc), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
