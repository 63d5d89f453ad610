package dto

import "reviewhub/internal/http-api/models"

// CreateCategoryDTO for creating a category
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// CategoryResponse for returning category information
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryFromModel converts a Category model to CategoryResponse
func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}
