package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Create(ctx context.Context, titleID, reviewID int64, authorID, text string) (*models.Comment, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Update(ctx context.Context, titleID, reviewID, commentID int64, text string) (*models.Comment, error)
	Delete(ctx context.Context, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if err := s.requireReview(titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.GetByReview(reviewID, page, pageSize)
}

// Create adds a comment with the author forced to the requesting user.
func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, authorID, text string) (*models.Comment, error) {
	if err := s.requireReview(titleID, reviewID); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, FieldErrors{"text": "text is required"}
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(reviewID, comment.ID)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID int64, text string) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, FieldErrors{"text": "text is required"}
	}

	comment.Text = text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID int64) error {
	if _, err := s.Get(ctx, titleID, reviewID, commentID); err != nil {
		return err
	}
	return s.commentRepo.Delete(commentID)
}

// requireReview checks the review exists under the given title; path ids
// that do not line up read as not found.
func (s *commentService) requireReview(titleID, reviewID int64) error {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
