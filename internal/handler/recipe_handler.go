package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/internal/middleware"
	"github.com/recipebox/internal/repository"
	"github.com/recipebox/internal/service"
	"github.com/recipebox/pkg/response"
)

// RecipeHandler handles recipe API requests
type RecipeHandler struct {
	recipeService *service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// List handles listing the caller's recipes, optionally filtered by
// comma-separated tag/ingredient ID sets
// GET /api/v1/recipes?tags=1,2&ingredients=3
func (h *RecipeHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		response.BadRequest(c, "tags filter must be a comma-separated list of integer ids")
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		response.BadRequest(c, "ingredients filter must be a comma-separated list of integer ids")
		return
	}

	recipes, err := h.recipeService.List(userID, repository.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		response.InternalError(c, "failed to list recipes")
		return
	}

	response.Success(c, recipes)
}

// Get handles retrieving a single owned recipe
// GET /api/v1/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	recipe, err := h.recipeService.Get(userID, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			response.NotFound(c, "recipe not found")
			return
		}
		response.InternalError(c, "failed to load recipe")
		return
	}

	response.Success(c, recipe)
}

// Create handles recipe creation
// POST /api/v1/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPrice) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to create recipe")
		return
	}

	response.Created(c, recipe)
}

// Update handles a partial recipe update
// PATCH /api/v1/recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	var req service.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.Update(userID, recipeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecipeNotFound):
			response.NotFound(c, "recipe not found")
		case errors.Is(err, service.ErrInvalidPrice):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to update recipe")
		}
		return
	}

	response.Success(c, recipe)
}

// Delete handles recipe deletion
// DELETE /api/v1/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			response.NotFound(c, "recipe not found")
			return
		}
		response.InternalError(c, "failed to delete recipe")
		return
	}

	response.NoContent(c)
}

// UploadImage handles a multipart image upload for an owned recipe
// POST /api/v1/recipes/:id/image
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	recipe, err := h.recipeService.UploadImage(c.Request.Context(), userID, recipeID,
		fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecipeNotFound):
			response.NotFound(c, "recipe not found")
		case errors.Is(err, service.ErrNotAnImage):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to upload image")
		}
		return
	}

	response.Success(c, recipe)
}

// RegisterRoutes registers recipe routes behind authentication
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	recipes := rg.Group("/recipes", authMiddleware)
	{
		recipes.GET("", h.List)
		recipes.POST("", h.Create)
		recipes.GET("/:id", h.Get)
		recipes.PATCH("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
		recipes.POST("/:id/image", h.UploadImage)
	}
}

// parseID parses a path parameter into a numeric ID
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseIDList parses a comma-separated ID-set query parameter. An empty
// parameter means no filter; any malformed token fails the parse.
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
