package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// CreateReviewDTO for posting a review; the author comes from the session,
// never from the payload
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewDTO for partial updates
type UpdateReviewDTO struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty" binding:"omitempty,min=1,max=10"`
}

// ReviewResponse for returning review information
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// ReviewFromModel converts a Review model to ReviewResponse
func ReviewFromModel(review *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Author:  review.Author.Username,
		Score:   review.Score,
		PubDate: review.CreatedAt,
	}
}
