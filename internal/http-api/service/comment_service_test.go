package service

import (
	"context"
	"testing"

	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(commentID int64) error {
	args := m.Called(commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(reviewID, commentID int64) (*models.Comment, error) {
	args := m.Called(reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByReview(reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(reviewID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func TestCreateComment_Success(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	commentService := NewCommentService(mockCommentRepo, mockReviewRepo)

	review := &models.Review{ID: 7, TitleID: 1}
	mockReviewRepo.On("GetByID", int64(1), int64(7)).Return(review, nil)
	mockCommentRepo.On("Create", mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Comment).ID = 42
		}).Return(nil)
	created := &models.Comment{
		ID:       42,
		ReviewID: 7,
		AuthorID: "user-123",
		Text:     "agreed",
		Author:   models.User{ID: "user-123", Username: "testuser"},
	}
	mockCommentRepo.On("GetByID", int64(7), int64(42)).Return(created, nil)

	comment, err := commentService.Create(context.Background(), 1, 7, "user-123", "agreed")

	assert.NoError(t, err)
	assert.Equal(t, "user-123", comment.AuthorID)
	assert.Equal(t, "agreed", comment.Text)
	mockCommentRepo.AssertExpectations(t)
}

func TestCreateComment_ReviewNotFound(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	commentService := NewCommentService(mockCommentRepo, mockReviewRepo)

	mockReviewRepo.On("GetByID", int64(1), int64(99)).Return(nil, gorm.ErrRecordNotFound)

	comment, err := commentService.Create(context.Background(), 1, 99, "user-123", "text")

	assert.Nil(t, comment)
	assert.ErrorIs(t, err, ErrReviewNotFound)
	mockCommentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateComment_EmptyText(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	commentService := NewCommentService(mockCommentRepo, mockReviewRepo)

	mockReviewRepo.On("GetByID", int64(1), int64(7)).Return(&models.Review{ID: 7, TitleID: 1}, nil)

	comment, err := commentService.Create(context.Background(), 1, 7, "user-123", "")

	assert.Nil(t, comment)
	var fieldErrs FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "text")
}

func TestGetComment_MismatchedPathReadsAsNotFound(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	commentService := NewCommentService(mockCommentRepo, mockReviewRepo)

	mockReviewRepo.On("GetByID", int64(1), int64(7)).Return(&models.Review{ID: 7, TitleID: 1}, nil)
	mockCommentRepo.On("GetByID", int64(7), int64(42)).Return(nil, gorm.ErrRecordNotFound)

	comment, err := commentService.Get(context.Background(), 1, 7, 42)

	assert.Nil(t, comment)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteComment_Success(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	commentService := NewCommentService(mockCommentRepo, mockReviewRepo)

	existing := &models.Comment{ID: 42, ReviewID: 7, AuthorID: "user-123"}
	mockReviewRepo.On("GetByID", int64(1), int64(7)).Return(&models.Review{ID: 7, TitleID: 1}, nil)
	mockCommentRepo.On("GetByID", int64(7), int64(42)).Return(existing, nil)
	mockCommentRepo.On("Delete", int64(42)).Return(nil)

	err := commentService.Delete(context.Background(), 1, 7, 42)

	assert.NoError(t, err)
	mockCommentRepo.AssertExpectations(t)
}
