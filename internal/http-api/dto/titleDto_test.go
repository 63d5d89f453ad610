package dto

import (
	"encoding/json"
	"testing"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/stretchr/testify/assert"
)

func TestRoundRating(t *testing.T) {
	assert.Nil(t, RoundRating(nil))

	mean := 7.333333
	assert.Equal(t, 7.33, *RoundRating(&mean))

	mean = 9.0
	assert.Equal(t, 9.0, *RoundRating(&mean))
}

func TestTitleResponse_RatingRendering(t *testing.T) {
	title := models.Title{ID: 1, Name: "Dune"}

	// Integral mean renders as a bare integer
	mean := 9.0
	body, err := json.Marshal(TitleFromModel(service.TitleWithRating{Title: title, Rating: &mean}))
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"rating":9,`)

	// Fractional mean keeps its decimals
	mean = 7.5
	body, err = json.Marshal(TitleFromModel(service.TitleWithRating{Title: title, Rating: &mean}))
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"rating":7.5,`)

	// No reviews renders as null
	body, err = json.Marshal(TitleFromModel(service.TitleWithRating{Title: title}))
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"rating":null`)
}

func TestTitleFromModel_NestedObjects(t *testing.T) {
	year := 1965
	category := models.Category{ID: 3, Name: "Books", Slug: "books"}
	title := models.Title{
		ID:       1,
		Name:     "Dune",
		Year:     &year,
		Category: &category,
		Genres: []models.Genre{
			{ID: 5, Name: "Sci-Fi", Slug: "sci-fi"},
		},
	}

	resp := TitleFromModel(service.TitleWithRating{Title: title})

	assert.Equal(t, "books", resp.Category.Slug)
	assert.Len(t, resp.Genre, 1)
	assert.Equal(t, "sci-fi", resp.Genre[0].Slug)
	assert.Equal(t, &year, resp.Year)
}
