package dto

import (
	"math"

	"reviewhub/internal/http-api/service"
)

// CreateTitleDTO is the write shape: category and genres by slug reference
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        *int     `json:"year,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Genre       []string `json:"genre,omitempty"`
}

// UpdateTitleDTO for partial updates; a present genre list replaces the set
type UpdateTitleDTO struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=200"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Genre       []string `json:"genre,omitempty"`
}

// TitleResponse is the read shape: nested category/genre objects plus the
// computed rating, null when the title has no reviews.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        *int              `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
}

// TitleFromModel converts a title with its computed rating to the read shape
func TitleFromModel(entry service.TitleWithRating) TitleResponse {
	resp := TitleResponse{
		ID:          entry.Title.ID,
		Name:        entry.Title.Name,
		Year:        entry.Title.Year,
		Rating:      RoundRating(entry.Rating),
		Description: entry.Title.Description,
		Genre:       make([]GenreResponse, 0, len(entry.Title.Genres)),
	}
	if entry.Title.Category != nil {
		c := CategoryFromModel(*entry.Title.Category)
		resp.Category = &c
	}
	for _, g := range entry.Title.Genres {
		resp.Genre = append(resp.Genre, GenreFromModel(g))
	}
	return resp
}

// RoundRating rounds a mean score to two decimal places. An integral mean
// renders as a bare integer in JSON (9, not 9.00); nil stays nil.
func RoundRating(rating *float64) *float64 {
	if rating == nil {
		return nil
	}
	rounded := math.Round(*rating*100) / 100
	return &rounded
}
