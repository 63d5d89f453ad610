package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(reviewID int64) error
	GetByID(titleID, reviewID int64) (*models.Review, error)
	GetByTitleAndAuthor(titleID int64, authorID string) (*models.Review, error)
	GetByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review. A unique-index rejection on (title_id, author_id)
// is translated to ErrDuplicateReview so a raced duplicate reads the same as
// the service pre-check.
func (r *reviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}

// Update persists text/score changes
func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(reviewID int64) error {
	result := r.db.Delete(&models.Review{}, reviewID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByID retrieves a review scoped to its parent title; a review id under
// the wrong title reads as not found.
func (r *reviewRepository) GetByID(titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ? AND title_id = ?", reviewID, titleID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByTitleAndAuthor(titleID int64, authorID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("title_id = ? AND author_id = ?", titleID, authorID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByTitle retrieves all reviews for a title with pagination, newest first
func (r *reviewRepository) GetByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("title_id = ?", titleID).
		Preload("Author").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
