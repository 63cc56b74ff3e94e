package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/internal/middleware"
	"github.com/recipebox/internal/repository"
	"github.com/recipebox/internal/service"
	"github.com/recipebox/pkg/response"
)

// IngredientHandler handles ingredient API requests
type IngredientHandler struct {
	ingredientService *service.IngredientService
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// List handles listing the caller's ingredients
// GET /api/v1/ingredients
func (h *IngredientHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ingredients, err := h.ingredientService.List(userID)
	if err != nil {
		response.InternalError(c, "failed to list ingredients")
		return
	}

	response.Success(c, ingredients)
}

// Create handles ingredient creation
// POST /api/v1/ingredients
func (h *IngredientHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ingredient, err := h.ingredientService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrIngredientNameTaken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to create ingredient")
		return
	}

	response.Created(c, ingredient)
}

// Update handles renaming an ingredient
// PATCH /api/v1/ingredients/:id
func (h *IngredientHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ingredientID, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid ingredient id")
		return
	}

	var req service.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ingredient, err := h.ingredientService.Update(userID, ingredientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrIngredientNotFound):
			response.NotFound(c, "ingredient not found")
		case errors.Is(err, repository.ErrIngredientNameTaken):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to update ingredient")
		}
		return
	}

	response.Success(c, ingredient)
}

// Delete handles ingredient deletion
// DELETE /api/v1/ingredients/:id
func (h *IngredientHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ingredientID, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid ingredient id")
		return
	}

	if err := h.ingredientService.Delete(userID, ingredientID); err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			response.NotFound(c, "ingredient not found")
			return
		}
		response.InternalError(c, "failed to delete ingredient")
		return
	}

	response.NoContent(c)
}

// RegisterRoutes registers ingredient routes behind authentication
func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	ingredients := rg.Group("/ingredients", authMiddleware)
	{
		ingredients.GET("", h.List)
		ingredients.POST("", h.Create)
		ingredients.PATCH("/:id", h.Update)
		ingredients.DELETE("/:id", h.Delete)
	}
}
