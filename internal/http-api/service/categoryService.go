package service

import (
	"context"
	"errors"
	"strings"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, name, slug string) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo *repository.CategoryRepo
}

func NewCategoryService(r *repository.CategoryRepo) CategoryService {
	return &categoryService{repo: r}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.repo.GetAll(ctx, search, page, pageSize)
}

func (s *categoryService) Create(ctx context.Context, name, slug string) (*models.Category, error) {
	name = strings.TrimSpace(name)

	fieldErrs := FieldErrors{}
	if name == "" {
		fieldErrs["name"] = "name is required"
	} else if len(name) > 256 {
		fieldErrs["name"] = "name must be at most 256 characters"
	}
	if msg := validateSlug(slug); msg != "" {
		fieldErrs["slug"] = msg
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, FieldErrors{"name": "category name already in use"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetBySlug(ctx, slug); err == nil {
		return nil, FieldErrors{"slug": "category slug already in use"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
