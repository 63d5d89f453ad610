package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type GenreRepo struct {
	db *gorm.DB
}

func NewGenreRepo(db *gorm.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

func (r *GenreRepo) GetAll(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	var list []models.Genre
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Genre{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count genres: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("name asc").Limit(pageSize).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("get genres: %w", err)
	}
	return list, total, nil
}

func (r *GenreRepo) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetBySlugs resolves a list of genre slugs, preserving lookup errors so
// callers can report the missing slug.
func (r *GenreRepo) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("get genres by slugs: %w", err)
	}
	return genres, nil
}

func (r *GenreRepo) GetByName(ctx context.Context, name string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *GenreRepo) Create(ctx context.Context, g *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create genre: %w", err)
	}
	return nil
}

func (r *GenreRepo) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Genre{})
	if result.Error != nil {
		return fmt.Errorf("delete genre: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
