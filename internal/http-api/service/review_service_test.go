package service

import (
	"context"
	"testing"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(reviewID int64) error {
	args := m.Called(reviewID)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(titleID, reviewID int64) (*models.Review, error) {
	args := m.Called(titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByTitleAndAuthor(titleID int64, authorID string) (*models.Review, error) {
	args := m.Called(titleID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

// MockTitleRepository mocks the TitleRepository interface
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) Create(ctx context.Context, title *models.Title) error {
	args := m.Called(ctx, title)
	return args.Error(0)
}

func (m *MockTitleRepository) Update(ctx context.Context, title *models.Title) error {
	args := m.Called(ctx, title)
	return args.Error(0)
}

func (m *MockTitleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	args := m.Called(ctx, title, genres)
	return args.Error(0)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTitleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) List(ctx context.Context, filters repository.TitleFilters, page, pageSize int) ([]models.Title, int64, error) {
	args := m.Called(ctx, filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleRepository) AverageRating(ctx context.Context, titleID int64) (float64, int64, error) {
	args := m.Called(ctx, titleID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleRepository) AverageRatings(ctx context.Context, titleIDs []int64) (map[int64]float64, error) {
	args := m.Called(ctx, titleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]float64), args.Error(1)
}

func TestCreateReview_Success(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := NewReviewService(mockReviewRepo, mockTitleRepo)

	title := &models.Title{ID: 1, Name: "Dune"}
	created := &models.Review{
		ID:       7,
		TitleID:  1,
		AuthorID: "user-123",
		Text:     "great read",
		Score:    9,
		Author:   models.User{ID: "user-123", Username: "testuser"},
	}

	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(title, nil)
	mockReviewRepo.On("GetByTitleAndAuthor", int64(1), "user-123").
		Return(nil, gorm.ErrRecordNotFound).Once()
	mockReviewRepo.On("Create", mock.AnythingOfType("*models.Review")).Return(nil)
	mockReviewRepo.On("GetByTitleAndAuthor", int64(1), "user-123").Return(created, nil).Once()

	review, err := reviewService.Create(context.Background(), 1, "user-123", "great read", 9)

	assert.NoError(t, err)
	assert.Equal(t, "user-123", review.AuthorID)
	assert.Equal(t, 9, review.Score)
	mockReviewRepo.AssertExpectations(t)
}

func TestCreateReview_TitleNotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := NewReviewService(mockReviewRepo, mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	review, err := reviewService.Create(context.Background(), 99, "user-123", "text", 5)

	assert.Nil(t, review)
	assert.ErrorIs(t, err, ErrTitleNotFound)
	mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateReview_ScoreOutOfRange(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := NewReviewService(mockReviewRepo, mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)

	review, err := reviewService.Create(context.Background(), 1, "user-123", "text", 11)

	assert.Nil(t, review)
	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "score")
	mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateReview_DuplicatePreCheck(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := NewReviewService(mockReviewRepo, mockTitleRepo)

	existing := &models.Review{ID: 7, TitleID: 1, AuthorID: "user-123"}
	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("GetByTitleAndAuthor", int64(1), "user-123").Return(existing, nil)

	review, err := reviewService.Create(context.Background(), 1, "user-123", "again", 5)

	assert.Nil(t, review)
	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "review")
	mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateReview_DuplicateRacedInsert(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := NewReviewService(mockReviewRepo, mockTitleRepo)

	// Pre-check sees nothing, the insert loses the race on the unique index
	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("GetByTitleAndAuthor", int64(1), "user-123").Return(nil, gorm.ErrRecordNotFound)
	mockReviewRepo.On("Create", mock.AnythingOfType("*models.Review")).Return(repository.ErrDuplicateReview)

	review, err := reviewService.Create(context.Background(), 1, "user-123", "again", 5)

	assert.Nil(t, review)
	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "review")
}

func TestUpdateReview_Partial(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := NewReviewService(mockReviewRepo, mockTitleRepo)

	existing := &models.Review{ID: 7, TitleID: 1, AuthorID: "user-123", Text: "old", Score: 4}
	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	mockReviewRepo.On("GetByID", int64(1), int64(7)).Return(existing, nil)
	mockReviewRepo.On("Update", existing).Return(nil)

	score := 8
	review, err := reviewService.Update(context.Background(), 1, 7, nil, &score)

	assert.NoError(t, err)
	assert.Equal(t, "old", review.Text)
	assert.Equal(t, 8, review.Score)
	mockReviewRepo.AssertExpectations(t)
}

func TestGetReview_WrongTitleReadsAsNotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockTitleRepo := new(MockTitleRepository)
	reviewService := NewReviewService(mockReviewRepo, mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(2)).Return(&models.Title{ID: 2}, nil)
	mockReviewRepo.On("GetByID", int64(2), int64(7)).Return(nil, gorm.ErrRecordNotFound)

	review, err := reviewService.Get(context.Background(), 2, 7)

	assert.Nil(t, review)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
