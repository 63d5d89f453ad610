package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the user management and self-service endpoints
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Self-service first: "me" is reserved and never a username
	rg.GET("/me", middleware.RequireAuth(), h.Me)
	rg.PATCH("/me", middleware.RequireAuth(), h.UpdateMe)

	rg.GET("", middleware.AdminOnly(), h.List)
	rg.POST("", middleware.AdminOnly(), h.Create)
	rg.GET("/:username", middleware.AdminOnly(), h.Get)
	rg.PATCH("/:username", middleware.AdminOnly(), h.Update)
	rg.DELETE("/:username", middleware.AdminOnly(), h.Delete)
}

// List retrieves users with optional username search
// GET /api/v1/users?search=&page=1&page_size=20
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	users, total, err := h.userService.List(c.Query("search"), page, pageSize)
	if err != nil {
		renderServiceError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.UserFromModel(&users[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, page, pageSize, total))
}

// Create provisions a user directly
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(service.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UserFromModel(user))
}

// Get retrieves a user by username
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Param("username"))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}

// Update partially updates a user by username
// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(c.Param("username"), patchFromDTO(req))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}

// Delete removes a user by username
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Param("username")); err != nil {
		renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the caller's own profile
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetByID(middleware.RequesterID(c))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}

// UpdateMe partially updates the caller's own profile. The service keeps
// the role field unchanged no matter what the payload says.
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateSelf(middleware.RequesterID(c), patchFromDTO(req))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}

func patchFromDTO(req dto.UpdateUserDTO) service.UserPatch {
	return service.UserPatch{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	}
}
