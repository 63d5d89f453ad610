package service

import (
	"context"
	"errors"
	"strings"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrGenreNotFound = errors.New("genre not found")

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, name, slug string) (*models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo *repository.GenreRepo
}

func NewGenreService(r *repository.GenreRepo) GenreService {
	return &genreService{repo: r}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.repo.GetAll(ctx, search, page, pageSize)
}

func (s *genreService) Create(ctx context.Context, name, slug string) (*models.Genre, error) {
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
		return nil, FieldErrors{"name": "genre name already in use"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetBySlug(ctx, slug); err == nil {
		return nil, FieldErrors{"slug": "genre slug already in use"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	genre := &models.Genre{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}
