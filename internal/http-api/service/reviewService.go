package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Create(ctx context.Context, titleID int64, authorID, text string, score int) (*models.Review, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Update(ctx context.Context, titleID, reviewID int64, text *string, score *int) (*models.Review, error)
	Delete(ctx context.Context, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.GetByTitle(titleID, page, pageSize)
}

// Create adds a review with the author forced to the requesting user. The
// one-review-per-author-per-title rule is pre-checked here and backed by
// the unique index; both paths surface the same field error.
func (s *reviewService) Create(ctx context.Context, titleID int64, authorID, text string, score int) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	fieldErrs := FieldErrors{}
	if text == "" {
		fieldErrs["text"] = "text is required"
	}
	if msg := validateScore(score); msg != "" {
		fieldErrs["score"] = msg
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	if _, err := s.reviewRepo.GetByTitleAndAuthor(titleID, authorID); err == nil {
		return nil, FieldErrors{"review": "you have already reviewed this title"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, FieldErrors{"review": "you have already reviewed this title"}
		}
		return nil, err
	}

	// Reload with the author preloaded for the response
	return s.reviewRepo.GetByTitleAndAuthor(titleID, authorID)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, text *string, score *int) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	fieldErrs := FieldErrors{}
	if text != nil {
		if *text == "" {
			fieldErrs["text"] = "text is required"
		} else {
			review.Text = *text
		}
	}
	if score != nil {
		if msg := validateScore(*score); msg != "" {
			fieldErrs["score"] = msg
		} else {
			review.Score = *score
		}
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.Get(ctx, titleID, reviewID); err != nil {
		return err
	}
	return s.reviewRepo.Delete(reviewID)
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}
