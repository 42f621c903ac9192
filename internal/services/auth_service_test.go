package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
)

func TestAuthService_SetupOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	setupMode, err := svc.IsSetupMode()
	require.NoError(t, err)
	assert.True(t, setupMode)

	admin, err := svc.Setup(SetupInput{Username: "  root  ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "root", admin.Username)
	assert.Equal(t, models.RoleAdminTotal, admin.Role)
	assert.NotEqual(t, "secret1", admin.PasswordHash)

	setupMode, err = svc.IsSetupMode()
	require.NoError(t, err)
	assert.False(t, setupMode)

	_, err = svc.Setup(SetupInput{Username: "root2", Password: "secret1"})
	assert.ErrorIs(t, err, ErrSystemAlreadySetUp)
}

func TestAuthService_SetupValidation(t *testing.T) {
	svc := NewAuthService(repository.NewUserRepository(newTestDB(t)))

	_, err := svc.Setup(SetupInput{Username: "ab", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUsernameInvalid)

	_, err = svc.Setup(SetupInput{Username: "root", Password: "12345"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Login(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	createUser(t, db, "alice", models.RoleUser, nil)

	user, err := svc.Login(LoginInput{Username: "alice", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Login(LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginInput{Username: "nobody", Password: "password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_AdminLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	createUser(t, db, "alice", models.RoleUser, nil)
	createUser(t, db, "boss", models.RoleAdminDept, nil)

	_, err := svc.AdminLogin(LoginInput{Username: "alice", Password: "password"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	user, err := svc.AdminLogin(LoginInput{Username: "boss", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdminDept, user.Role)
}
