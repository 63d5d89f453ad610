package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(commentID int64) error
	GetByID(reviewID, commentID int64) (*models.Comment, error)
	GetByReview(reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) Delete(commentID int64) error {
	result := r.db.Delete(&models.Comment{}, commentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByID retrieves a comment scoped to its parent review
func (r *commentRepository) GetByID(reviewID, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ? AND review_id = ?", commentID, reviewID).
		Preload("Author").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByReview retrieves all comments on a review with pagination, oldest first
func (r *commentRepository) GetByReview(reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	if err := r.db.Model(&models.Comment{}).Where("review_id = ?", reviewID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("review_id = ?", reviewID).
		Preload("Author").
		Order("created_at ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
