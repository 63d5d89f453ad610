package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

// RegisterRoutes registers the title CRUD endpoints. The param is named
// title_id to line up with the nested review routes on the same group.
func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", middleware.AdminOrReadOnly(), h.List)
	rg.POST("", middleware.AdminOrReadOnly(), h.Create)
	rg.GET("/:title_id", middleware.AdminOrReadOnly(), h.Get)
	rg.PATCH("/:title_id", middleware.AdminOrReadOnly(), h.Update)
	rg.DELETE("/:title_id", middleware.AdminOrReadOnly(), h.Delete)
}

// List retrieves titles filtered by category slug, genre slug, name
// substring and year
// GET /api/v1/titles?category=&genre=&name=&year=&page=1&page_size=20
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filters := repository.TitleFilters{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		filters.Year = &year
	}

	titles, total, err := h.svc.List(c.Request.Context(), filters, page, pageSize)
	if err != nil {
		renderServiceError(c, err)
		return
	}

	resp := make([]dto.TitleResponse, 0, len(titles))
	for _, entry := range titles {
		resp = append(resp, dto.TitleFromModel(entry))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, page, pageSize, total))
}

// Get retrieves one title with nested category/genres and computed rating
// GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	entry, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(*entry))
}

// Create adds a title; category and genres are referenced by slug
// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), service.TitleInput{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TitleFromModel(*entry))
}

// Update partially updates a title
// PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	var req dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.Update(c.Request.Context(), id, service.TitlePatch{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(*entry))
}

// Delete removes a title and, by cascade, its reviews and comments
// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
