package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// RegisterRoutes registers the review endpoints nested under a title
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", middleware.RequireAuth(), h.Create)
	rg.GET("/:review_id", h.Get)
	rg.PATCH("/:review_id", middleware.RequireAuth(), h.Update)
	rg.DELETE("/:review_id", middleware.RequireAuth(), h.Delete)
}

// List retrieves the reviews of a title, newest first
// GET /api/v1/titles/:title_id/reviews?page=1&page_size=20
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	reviews, total, err := h.svc.ListByTitle(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		renderServiceError(c, err)
		return
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.ReviewFromModel(&reviews[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, page, pageSize, total))
}

// Create adds a review authored by the requester
// POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.svc.Create(c.Request.Context(), titleID, middleware.RequesterID(c), req.Text, req.Score)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ReviewFromModel(review))
}

// Get retrieves one review under a title
// GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	review, err := h.svc.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReviewFromModel(review))
}

// Update partially updates a review; only the author, a moderator or an
// admin may modify it
// PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	review, err := h.svc.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	if !middleware.CanModifyResource(middleware.RequesterRole(c), middleware.RequesterID(c), review.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to modify this review"})
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), titleID, reviewID, req.Text, req.Score)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReviewFromModel(updated))
}

// Delete removes a review; only the author, a moderator or an admin may
// remove it
// DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	review, err := h.svc.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	if !middleware.CanModifyResource(middleware.RequesterRole(c), middleware.RequesterID(c), review.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to delete this review"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), titleID, reviewID); err != nil {
		renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
