package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// RegisterRoutes registers the comment endpoints nested under a review
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", middleware.RequireAuth(), h.Create)
	rg.GET("/:comment_id", h.Get)
	rg.PATCH("/:comment_id", middleware.RequireAuth(), h.Update)
	rg.DELETE("/:comment_id", middleware.RequireAuth(), h.Delete)
}

// List retrieves the comments of a review, oldest first
// GET /api/v1/titles/:title_id/reviews/:review_id/comments?page=1&page_size=20
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := parentIDs(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	comments, total, err := h.svc.ListByReview(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		renderServiceError(c, err)
		return
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, dto.CommentFromModel(&comments[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, page, pageSize, total))
}

// Create adds a comment authored by the requester
// POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := parentIDs(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), titleID, reviewID, middleware.RequesterID(c), req.Text)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CommentFromModel(comment))
}

// Get retrieves one comment under a review
// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := parentIDs(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.svc.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CommentFromModel(comment))
}

// Update replaces a comment's text; only the author, a moderator or an
// admin may modify it
// PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := parentIDs(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.svc.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	if !middleware.CanModifyResource(middleware.RequesterRole(c), middleware.RequesterID(c), comment.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to modify this comment"})
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), titleID, reviewID, commentID, req.Text)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CommentFromModel(updated))
}

// Delete removes a comment; only the author, a moderator or an admin may
// remove it
// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := parentIDs(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.svc.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	if !middleware.CanModifyResource(middleware.RequesterRole(c), middleware.RequesterID(c), comment.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to delete this comment"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), titleID, reviewID, commentID); err != nil {
		renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parentIDs(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = parseIDParam(c, "title_id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = parseIDParam(c, "review_id")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}
