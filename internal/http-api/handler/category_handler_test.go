package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryService mocks the CategoryService interface
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryService) Create(ctx context.Context, name, slug string) (*models.Category, error) {
	args := m.Called(ctx, name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// asRole simulates an authenticated caller by seeding the identity keys the
// auth middleware would set.
func asRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-123")
		c.Set(middleware.ContextUsername, "testuser")
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

func TestListCategories_AnonymousAllowed(t *testing.T) {
	mockService := new(MockCategoryService)
	handler := NewCategoryHandler(mockService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/categories"))

	categories := []models.Category{{ID: 1, Name: "Books", Slug: "books"}}
	mockService.On("List", mock.Anything, "", 1, 20).Return(categories, int64(1), nil)

	req, _ := http.NewRequest("GET", "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"books"`)
	mockService.AssertExpectations(t)
}

func TestCreateCategory_AnonymousForbidden(t *testing.T) {
	mockService := new(MockCategoryService)
	handler := NewCategoryHandler(mockService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/categories"))

	w := postJSON(router, "/categories", dto.CreateCategoryDTO{Name: "Books", Slug: "books"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCategory_NonAdminForbidden(t *testing.T) {
	mockService := new(MockCategoryService)
	handler := NewCategoryHandler(mockService)
	router := setupRouter()
	group := router.Group("/categories")
	group.Use(asRole(models.RoleModerator))
	handler.RegisterRoutes(group)

	w := postJSON(router, "/categories", dto.CreateCategoryDTO{Name: "Books", Slug: "books"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCategory_AdminAllowed(t *testing.T) {
	mockService := new(MockCategoryService)
	handler := NewCategoryHandler(mockService)
	router := setupRouter()
	group := router.Group("/categories")
	group.Use(asRole(models.RoleAdmin))
	handler.RegisterRoutes(group)

	created := &models.Category{ID: 1, Name: "Books", Slug: "books"}
	mockService.On("Create", mock.Anything, "Books", "books").Return(created, nil)

	w := postJSON(router, "/categories", dto.CreateCategoryDTO{Name: "Books", Slug: "books"})

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestDeleteCategory_AdminAllowed(t *testing.T) {
	mockService := new(MockCategoryService)
	handler := NewCategoryHandler(mockService)
	router := setupRouter()
	group := router.Group("/categories")
	group.Use(asRole(models.RoleAdmin))
	handler.RegisterRoutes(group)

	mockService.On("Delete", mock.Anything, "books").Return(nil)

	req, _ := http.NewRequest("DELETE", "/categories/books", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}
