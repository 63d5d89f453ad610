package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// renderServiceError maps service failures to responses: field-attributable
// validation errors become a 400 with the field map as the body, unknown
// path resources become 404, everything else is a 500.
func renderServiceError(c *gin.Context, err error) {
	var fieldErrs service.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parsePagination reads ?page= and ?page_size= with sane bounds
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
