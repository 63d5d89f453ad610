package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// RegisterRoutes registers the list/create/destroy category endpoints
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(middleware.AdminOrReadOnly())
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.DELETE("/:slug", h.Delete)
}

// List retrieves categories with optional name search
// GET /api/v1/categories?search=&page=1&page_size=20
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		renderServiceError(c, err)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, category := range list {
		resp = append(resp, dto.CategoryFromModel(category))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, page, pageSize, total))
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.svc.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryFromModel(*category))
}

// Delete removes a category by slug
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
