package dto

import "reviewhub/internal/http-api/models"

// CreateGenreDTO for creating a genre
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// GenreResponse for returning genre information
type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GenreFromModel converts a Genre model to GenreResponse
func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
