package service

import (
	"context"
	"errors"
	"strings"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrTitleNotFound = errors.New("title not found")

// TitleInput is the write shape: category and genres are referenced by slug.
type TitleInput struct {
	Name        string
	Year        *int
	Description string
	Category    *string
	Genres      []string
}

// TitlePatch carries a partial update; nil fields are left untouched. A
// present Genres slice replaces the association set.
type TitlePatch struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      []string
}

// TitleWithRating pairs a title with its computed mean review score.
// Rating is nil when the title has no reviews.
type TitleWithRating struct {
	Title  models.Title
	Rating *float64
}

type TitleService interface {
	List(ctx context.Context, filters repository.TitleFilters, page, pageSize int) ([]TitleWithRating, int64, error)
	Get(ctx context.Context, id int64) (*TitleWithRating, error)
	Create(ctx context.Context, input TitleInput) (*TitleWithRating, error)
	Update(ctx context.Context, id int64, patch TitlePatch) (*TitleWithRating, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo *repository.CategoryRepo
	genreRepo    *repository.GenreRepo
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo *repository.CategoryRepo,
	genreRepo *repository.GenreRepo,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filters repository.TitleFilters, page, pageSize int) ([]TitleWithRating, int64, error) {
	titles, total, err := s.titleRepo.List(ctx, filters, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}
	averages, err := s.titleRepo.AverageRatings(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]TitleWithRating, 0, len(titles))
	for _, t := range titles {
		entry := TitleWithRating{Title: t}
		if avg, ok := averages[t.ID]; ok {
			entry.Rating = &avg
		}
		result = append(result, entry)
	}
	return result, total, nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*TitleWithRating, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	avg, count, err := s.titleRepo.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := &TitleWithRating{Title: *title}
	if count > 0 {
		entry.Rating = &avg
	}
	return entry, nil
}

func (s *titleService) Create(ctx context.Context, input TitleInput) (*TitleWithRating, error) {
	name := strings.TrimSpace(input.Name)

	fieldErrs := FieldErrors{}
	if name == "" {
		fieldErrs["name"] = "name is required"
	} else if len(name) > 200 {
		fieldErrs["name"] = "name must be at most 200 characters"
	}

	var category *models.Category
	if input.Category != nil {
		found, err := s.categoryRepo.GetBySlug(ctx, *input.Category)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fieldErrs["category"] = "unknown category slug"
		} else if err != nil {
			return nil, err
		} else {
			category = found
		}
	}

	genres, genreErr, err := s.resolveGenres(ctx, input.Genres)
	if err != nil {
		return nil, err
	}
	if genreErr != "" {
		fieldErrs["genre"] = genreErr
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	title := &models.Title{
		Name:        name,
		Year:        input.Year,
		Description: input.Description,
	}
	if category != nil {
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	if len(genres) > 0 {
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, patch TitlePatch) (*TitleWithRating, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	fieldErrs := FieldErrors{}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			fieldErrs["name"] = "name is required"
		} else if len(name) > 200 {
			fieldErrs["name"] = "name must be at most 200 characters"
		} else {
			title.Name = name
		}
	}
	if patch.Year != nil {
		title.Year = patch.Year
	}
	if patch.Description != nil {
		title.Description = *patch.Description
	}
	if patch.Category != nil {
		found, err := s.categoryRepo.GetBySlug(ctx, *patch.Category)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fieldErrs["category"] = "unknown category slug"
		} else if err != nil {
			return nil, err
		} else {
			title.CategoryID = &found.ID
		}
	}

	var genres []models.Genre
	if patch.Genres != nil {
		resolved, genreErr, err := s.resolveGenres(ctx, patch.Genres)
		if err != nil {
			return nil, err
		}
		if genreErr != "" {
			fieldErrs["genre"] = genreErr
		}
		genres = resolved
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}
	if patch.Genres != nil {
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

// resolveGenres maps slugs to genre rows. The middle return value is a
// field-error message naming the first unknown slug.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, string, error) {
	if len(slugs) == 0 {
		return nil, "", nil
	}

	genres, err := s.genreRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, "", err
	}

	found := make(map[string]bool, len(genres))
	for _, g := range genres {
		found[g.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, "unknown genre slug: " + slug, nil
		}
	}
	return genres, "", nil
}
