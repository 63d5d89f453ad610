package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

// TitleFilters narrows a title listing. Zero values mean "no filter".
type TitleFilters struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, filters TitleFilters, page, pageSize int) ([]models.Title, int64, error)
	AverageRating(ctx context.Context, titleID int64) (float64, int64, error)
	AverageRatings(ctx context.Context, titleIDs []int64) (map[int64]float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	if err := r.db.WithContext(ctx).Create(title).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	// Save without touching the many2many rows; ReplaceGenres owns those
	if err := r.db.WithContext(ctx).Omit("Genres").Save(title).Error; err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("replace title genres: %w", err)
	}
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) List(ctx context.Context, filters TitleFilters, page, pageSize int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Title{})

	if filters.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filters.CategorySlug)
	}
	if filters.GenreSlug != "" {
		query = query.
			Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres ON genres.id = tg.genre_id").
			Where("genres.slug = ?", filters.GenreSlug)
	}
	if filters.Name != "" {
		query = query.Where("titles.name LIKE ?", "%"+filters.Name+"%")
	}
	if filters.Year != nil {
		query = query.Where("titles.year = ?", *filters.Year)
	}

	if err := query.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	offset := (page - 1) * pageSize
	err := query.
		Distinct().
		Preload("Category").
		Preload("Genres").
		Order("titles.name asc").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}

	return titles, total, nil
}

// AverageRating returns the mean review score for a title and the review count.
func (r *titleRepository) AverageRating(ctx context.Context, titleID int64) (float64, int64, error) {
	var agg struct {
		Average float64
		Count   int64
	}

	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(score), 0) as average, COUNT(*) as count").
		Where("title_id = ?", titleID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, fmt.Errorf("average rating: %w", err)
	}

	return agg.Average, agg.Count, nil
}

// AverageRatings computes mean scores for a batch of titles in one query.
// Titles without reviews are absent from the result map.
func (r *titleRepository) AverageRatings(ctx context.Context, titleIDs []int64) (map[int64]float64, error) {
	if len(titleIDs) == 0 {
		return map[int64]float64{}, nil
	}

	var rows []struct {
		TitleID int64
		Average float64
	}

	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("title_id, AVG(score) as average").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("average ratings: %w", err)
	}

	averages := make(map[int64]float64, len(rows))
	for _, row := range rows {
		averages[row.TitleID] = row.Average
	}
	return averages, nil
}
