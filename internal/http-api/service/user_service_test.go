package service

import (
	"testing"

	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCreateUser_AdminProvisionedStartsActive(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("FindByEmail", "mod@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByUsername", "moduser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := userService.Create(CreateUserInput{
		Username: "moduser",
		Email:    "mod@example.com",
		Role:     models.RoleModerator,
	})

	assert.NoError(t, err)
	assert.True(t, user.Active)
	assert.Equal(t, models.RoleModerator, user.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestCreateUser_DefaultsRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("FindByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByUsername", "newuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := userService.Create(CreateUserInput{
		Username: "newuser",
		Email:    "new@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user, err := userService.Create(CreateUserInput{
		Username: "newuser",
		Email:    "new@example.com",
		Role:     "superuser",
	})

	assert.Nil(t, user)
	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "role")
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateUser_ReservedUsernameAnyCase(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user, err := userService.Create(CreateUserInput{
		Username: "ME",
		Email:    "me@example.com",
	})

	assert.Nil(t, user)
	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "username")
}

func TestUpdateSelf_PreservesRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Role:     models.RoleUser,
	}
	mockUserRepo.On("FindByID", "user-123").Return(user, nil)
	mockUserRepo.On("Save", user).Return(nil)

	admin := models.RoleAdmin
	bio := "trying my luck"
	updated, err := userService.UpdateSelf("user-123", UserPatch{
		Role: &admin,
		Bio:  &bio,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, updated.Role)
	assert.Equal(t, &bio, updated.Bio)
	mockUserRepo.AssertExpectations(t)
}

func TestUpdateUser_AdminCanChangeRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Role:     models.RoleUser,
	}
	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)
	mockUserRepo.On("Save", user).Return(nil)

	moderator := models.RoleModerator
	updated, err := userService.Update("testuser", UserPatch{Role: &moderator})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, updated.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUpdateUser_UsernameTaken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{ID: "user-123", Username: "testuser", Email: "test@example.com"}
	other := &models.User{ID: "user-456", Username: "taken"}
	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)
	mockUserRepo.On("FindByUsername", "taken").Return(other, nil)

	taken := "taken"
	updated, err := userService.Update("testuser", UserPatch{Username: &taken})

	assert.Nil(t, updated)
	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "username")
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestDeleteUser_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Delete", "ghost").Return(gorm.ErrRecordNotFound)

	err := userService.Delete("ghost")

	assert.ErrorIs(t, err, ErrUserNotFound)
}
