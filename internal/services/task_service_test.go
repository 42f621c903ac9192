package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"gorm.io/gorm"
)

type TaskServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	repo  repository.TaskRepository
	dept  *models.Department
	alice *models.User
	bob   *models.User
}

func (s *TaskServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.repo = repository.NewTaskRepository(s.db)
	s.dept = createDepartment(s.T(), s.db, "Audit", "AUDIT")
	s.alice = createUser(s.T(), s.db, "alice", models.RoleUser, &s.dept.ID)
	s.bob = createUser(s.T(), s.db, "bob", models.RoleUser, &s.dept.ID)
}

func (s *TaskServiceTestSuite) service(hour int) *TaskService {
	return NewTaskService(s.repo, NewCurfewPolicy(fixedClock(hour, 0), testLoc))
}

func (s *TaskServiceTestSuite) input(caller *models.User) SaveTaskInput {
	return SaveTaskInput{
		DepartmentID:    s.dept.ID,
		JobCode:         "A1",
		TaskDescription: "reconcile ledger",
		StartTime:       "2024-03-15T09:00:00+07:00",
		EndTime:         "2024-03-15T11:30:00+07:00",
		Date:            "2024-03-15",
		CallerID:        caller.ID,
		CallerRole:      caller.Role,
	}
}

func (s *TaskServiceTestSuite) TestSaveTask_CreatesTaskOwnedByCaller() {
	task, err := s.service(10).SaveTask(s.input(s.alice))
	s.Require().NoError(err)

	s.NotZero(task.ID)
	s.Equal(s.alice.ID, task.UserID)
	s.Equal(150*time.Minute, task.Duration())

	date := task.Date.In(testLoc)
	s.Equal(12, date.Hour())
	s.Equal(15, date.Day())
}

func (s *TaskServiceTestSuite) TestSaveTask_AcceptsFractionalSecondsAndISODate() {
	in := s.input(s.alice)
	in.StartTime = "2024-03-15T02:00:00.000Z"
	in.EndTime = "2024-03-15T03:00:00.500Z"
	in.Date = "2024-03-14T20:00:00.000Z"

	task, err := s.service(10).SaveTask(in)
	s.Require().NoError(err)

	// 20:00 UTC on the 14th is the 15th in UTC+7.
	s.Equal(15, task.Date.In(testLoc).Day())
	s.Equal(12, task.Date.In(testLoc).Hour())
}

func (s *TaskServiceTestSuite) TestSaveTask_CurfewBlocksNonAdmins() {
	for _, role := range []models.Role{models.RoleUser, models.RoleAdminDept} {
		in := s.input(s.alice)
		in.CallerRole = role

		_, err := s.service(23).SaveTask(in)
		s.ErrorIs(err, ErrPolicyViolation, role)
	}

	var count int64
	s.db.Model(&models.Task{}).Count(&count)
	s.Zero(count)
}

func (s *TaskServiceTestSuite) TestSaveTask_AdminTotalBypassesCurfew() {
	admin := createUser(s.T(), s.db, "root", models.RoleAdminTotal, nil)

	_, err := s.service(2).SaveTask(s.input(admin))
	s.NoError(err)
}

func (s *TaskServiceTestSuite) TestSaveTask_CurfewCheckedBeforeValidation() {
	in := s.input(s.alice)
	in.StartTime = "garbage"

	_, err := s.service(5).SaveTask(in)
	s.ErrorIs(err, ErrOutsideDeclarationHours)
}

func (s *TaskServiceTestSuite) TestSaveTask_Validation() {
	tests := []struct {
		name   string
		mutate func(*SaveTaskInput)
		want   error
	}{
		{"bad start", func(in *SaveTaskInput) { in.StartTime = "9am" }, ErrInvalidTimeFormat},
		{"bad end", func(in *SaveTaskInput) { in.EndTime = "" }, ErrInvalidTimeFormat},
		{"end equals start", func(in *SaveTaskInput) { in.EndTime = in.StartTime }, ErrEndNotAfterStart},
		{"end before start", func(in *SaveTaskInput) { in.EndTime = "2024-03-15T08:00:00+07:00" }, ErrEndNotAfterStart},
		{"bad date", func(in *SaveTaskInput) { in.Date = "15/03/2024" }, ErrInvalidDate},
		{"missing job code", func(in *SaveTaskInput) { in.JobCode = "  " }, ErrJobCodeRequired},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			in := s.input(s.alice)
			tt.mutate(&in)

			_, err := s.service(10).SaveTask(in)
			s.ErrorIs(err, tt.want)
			s.ErrorIs(err, ErrValidation)
		})
	}
}

func (s *TaskServiceTestSuite) TestSaveTask_UpdateKeepsOwner() {
	svc := s.service(10)
	created, err := svc.SaveTask(s.input(s.alice))
	s.Require().NoError(err)

	in := s.input(s.alice)
	in.TaskID = &created.ID
	in.JobCode = "B2"
	in.EndTime = "2024-03-15T10:00:00+07:00"

	updated, err := svc.SaveTask(in)
	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID)
	s.Equal(s.alice.ID, updated.UserID)
	s.Equal("B2", updated.JobCode)

	var stored models.Task
	s.Require().NoError(s.db.First(&stored, created.ID).Error)
	s.Equal("B2", stored.JobCode)
	s.Equal(time.Hour, stored.Duration())
}

func (s *TaskServiceTestSuite) TestSaveTask_UpdateOfAnotherUsersTaskIsDenied() {
	svc := s.service(10)
	created, err := svc.SaveTask(s.input(s.alice))
	s.Require().NoError(err)

	in := s.input(s.bob)
	in.TaskID = &created.ID
	in.JobCode = "HIJACK"

	_, err = svc.SaveTask(in)
	s.ErrorIs(err, ErrPermissionDenied)

	var stored models.Task
	s.Require().NoError(s.db.First(&stored, created.ID).Error)
	s.Equal("A1", stored.JobCode)
	s.Equal(s.alice.ID, stored.UserID)
}

func (s *TaskServiceTestSuite) TestSaveTask_UpdateMissingTask() {
	in := s.input(s.alice)
	in.TaskID = ptr(uint64(9999))

	_, err := s.service(10).SaveTask(in)
	s.ErrorIs(err, ErrTaskNotFound)
	s.ErrorIs(err, ErrNotFound)
}

func (s *TaskServiceTestSuite) TestDeleteTask() {
	svc := s.service(10)
	created, err := svc.SaveTask(s.input(s.alice))
	s.Require().NoError(err)

	s.ErrorIs(svc.DeleteTask(created.ID, s.bob.ID), ErrPermissionDenied)

	var count int64
	s.db.Model(&models.Task{}).Count(&count)
	s.Equal(int64(1), count)

	s.NoError(svc.DeleteTask(created.ID, s.alice.ID))
	s.ErrorIs(svc.DeleteTask(created.ID, s.alice.ID), ErrNotFound)
}

func (s *TaskServiceTestSuite) TestGetTasksByDate_OnlyCallersDay() {
	svc := s.service(10)

	first := s.input(s.alice)
	first.StartTime = "2024-03-15T14:00:00+07:00"
	first.EndTime = "2024-03-15T15:00:00+07:00"
	_, err := svc.SaveTask(first)
	s.Require().NoError(err)

	_, err = svc.SaveTask(s.input(s.alice))
	s.Require().NoError(err)

	otherDay := s.input(s.alice)
	otherDay.Date = "2024-03-16"
	_, err = svc.SaveTask(otherDay)
	s.Require().NoError(err)

	_, err = svc.SaveTask(s.input(s.bob))
	s.Require().NoError(err)

	tasks, err := svc.GetTasksByDate("2024-03-15", s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 2)
	s.Equal(9, tasks[0].StartTime.In(testLoc).Hour())
	s.Equal(14, tasks[1].StartTime.In(testLoc).Hour())
	for _, task := range tasks {
		s.Equal(s.alice.ID, task.UserID)
	}

	_, err = svc.GetTasksByDate("yesterday", s.alice.ID)
	s.ErrorIs(err, ErrInvalidDate)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
