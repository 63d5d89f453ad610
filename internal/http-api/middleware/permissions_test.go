package middleware

import (
	"testing"

	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
)

func TestIsSafeMethod(t *testing.T) {
	assert.True(t, IsSafeMethod("GET"))
	assert.True(t, IsSafeMethod("HEAD"))
	assert.True(t, IsSafeMethod("OPTIONS"))
	assert.False(t, IsSafeMethod("POST"))
	assert.False(t, IsSafeMethod("PATCH"))
	assert.False(t, IsSafeMethod("DELETE"))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(models.RoleAdmin))
	assert.False(t, IsAdmin(models.RoleModerator))
	assert.False(t, IsAdmin(models.RoleUser))
	assert.False(t, IsAdmin(""))
}

func TestCanModifyResource(t *testing.T) {
	// Author edits own resource
	assert.True(t, CanModifyResource(models.RoleUser, "user-1", "user-1"))
	// Stranger cannot
	assert.False(t, CanModifyResource(models.RoleUser, "user-2", "user-1"))
	// Moderator and admin override ownership
	assert.True(t, CanModifyResource(models.RoleModerator, "user-2", "user-1"))
	assert.True(t, CanModifyResource(models.RoleAdmin, "user-2", "user-1"))
	// Anonymous never modifies anything
	assert.False(t, CanModifyResource("", "", "user-1"))
}
