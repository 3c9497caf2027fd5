package service

import (
	"testing"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(repository.NewUserRepo(db)), db
}

func createUserFixture(username string, role model.Role) *CreateUserRequest {
	return &CreateUserRequest{
		Username:        username,
		Password:        "password123",
		ConfirmPassword: "password123",
		Name:            "Budi Santoso",
		Role:            role,
	}
}

func TestCreateUser(t *testing.T) {
	admin := testActor(model.RoleAdmin)

	t.Run("creates an active account", func(t *testing.T) {
		svc, _ := newUserService(t)

		user, err := svc.CreateUser(createUserFixture("gudang1", model.RoleWarehouseStaff), admin)
		require.NoError(t, err)

		assert.Equal(t, "gudang1", user.Username)
		assert.Equal(t, model.RoleWarehouseStaff, user.Role)
		assert.True(t, user.IsActive)
		assert.True(t, user.CheckPassword("password123"))
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		svc, _ := newUserService(t)

		_, err := svc.CreateUser(createUserFixture("gudang1", model.RoleWarehouseStaff), admin)
		require.NoError(t, err)

		_, err = svc.CreateUser(createUserFixture("gudang1", model.RoleProductionStaff), admin)
		assert.ErrorIs(t, err, ErrUsernameExists)
	})

	t.Run("password confirmation must match", func(t *testing.T) {
		svc, _ := newUserService(t)

		req := createUserFixture("gudang1", model.RoleWarehouseStaff)
		req.ConfirmPassword = "different123"
		_, err := svc.CreateUser(req, admin)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		svc, _ := newUserService(t)

		req := createUserFixture("gudang1", model.RoleWarehouseStaff)
		req.Password = "short"
		req.ConfirmPassword = "short"
		_, err := svc.CreateUser(req, admin)
		assert.Error(t, err)
	})
}

func TestSelfModificationGuards(t *testing.T) {
	t.Run("admin cannot delete their own account", func(t *testing.T) {
		svc, db := newUserService(t)

		admin := testActor(model.RoleAdmin)
		created, err := svc.CreateUser(createUserFixture("admin2", model.RoleAdmin), admin)
		require.NoError(t, err)

		self := model.Actor{ID: created.ID, Username: created.Username, Name: created.Name, Role: created.Role}
		err = svc.DeleteUser(created.ID, self)
		assert.ErrorIs(t, err, ErrSelfModification)

		var reloaded model.User
		require.NoError(t, db.First(&reloaded, "id = ?", created.ID).Error)
		assert.True(t, reloaded.IsActive)
	})

	t.Run("admin cannot toggle their own account", func(t *testing.T) {
		svc, _ := newUserService(t)

		admin := testActor(model.RoleAdmin)
		created, err := svc.CreateUser(createUserFixture("admin2", model.RoleAdmin), admin)
		require.NoError(t, err)

		self := model.Actor{ID: created.ID, Role: created.Role}
		_, err = svc.ToggleActive(created.ID, self)
		assert.ErrorIs(t, err, ErrSelfModification)
	})

	t.Run("deleting another account deactivates it", func(t *testing.T) {
		svc, db := newUserService(t)

		admin := testActor(model.RoleAdmin)
		created, err := svc.CreateUser(createUserFixture("gudang1", model.RoleWarehouseStaff), admin)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteUser(created.ID, admin))

		var reloaded model.User
		require.NoError(t, db.First(&reloaded, "id = ?", created.ID).Error)
		assert.False(t, reloaded.IsActive)
	})
}

func TestResetUserPassword(t *testing.T) {
	admin := testActor(model.RoleAdmin)

	t.Run("sets the password and the forced-reset flag", func(t *testing.T) {
		svc, db := newUserService(t)

		created, err := svc.CreateUser(createUserFixture("gudang1", model.RoleWarehouseStaff), admin)
		require.NoError(t, err)

		err = svc.ResetUserPassword(created.ID, &ResetUserPasswordRequest{
			NewPassword:     "fresh-secret-1",
			ConfirmPassword: "fresh-secret-1",
			RequireReset:    true,
		}, admin)
		require.NoError(t, err)

		var reloaded model.User
		require.NoError(t, db.First(&reloaded, "id = ?", created.ID).Error)
		assert.True(t, reloaded.CheckPassword("fresh-secret-1"))
		assert.True(t, reloaded.ResetPassword)
	})

	t.Run("confirmation must match", func(t *testing.T) {
		svc, _ := newUserService(t)

		created, err := svc.CreateUser(createUserFixture("gudang1", model.RoleWarehouseStaff), admin)
		require.NoError(t, err)

		err = svc.ResetUserPassword(created.ID, &ResetUserPasswordRequest{
			NewPassword:     "fresh-secret-1",
			ConfirmPassword: "fresh-secret-2",
		}, admin)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})
}
