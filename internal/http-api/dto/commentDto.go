package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// CreateCommentDTO for posting a comment on a review
type CreateCommentDTO struct {
	Text string `json:"text" binding:"required"`
}

// UpdateCommentDTO for editing a comment
type UpdateCommentDTO struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

// CommentFromModel converts a Comment model to CommentResponse
func CommentFromModel(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		Author:  comment.Author.Username,
		PubDate: comment.CreatedAt,
	}
}
