package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	svc service.GenreService
}

func NewGenreHandler(svc service.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

// RegisterRoutes registers the list/create/destroy genre endpoints
func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(middleware.AdminOrReadOnly())
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.DELETE("/:slug", h.Delete)
}

// List retrieves genres with optional name search
// GET /api/v1/genres?search=&page=1&page_size=20
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		renderServiceError(c, err)
		return
	}

	resp := make([]dto.GenreResponse, 0, len(list))
	for _, genre := range list {
		resp = append(resp, dto.GenreFromModel(genre))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, page, pageSize, total))
}

// Create adds a genre
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.svc.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GenreFromModel(*genre))
}

// Delete removes a genre by slug
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
