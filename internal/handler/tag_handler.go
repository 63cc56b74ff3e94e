package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/internal/middleware"
	"github.com/recipebox/internal/repository"
	"github.com/recipebox/internal/service"
	"github.com/recipebox/pkg/response"
)

// TagHandler handles tag API requests
type TagHandler struct {
	tagService *service.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List handles listing the caller's tags
// GET /api/v1/tags
func (h *TagHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tags, err := h.tagService.List(userID)
	if err != nil {
		response.InternalError(c, "failed to list tags")
		return
	}

	response.Success(c, tags)
}

// Create handles tag creation
// POST /api/v1/tags
func (h *TagHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrTagNameTaken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to create tag")
		return
	}

	response.Created(c, tag)
}

// Update handles renaming a tag
// PATCH /api/v1/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tagID, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tag id")
		return
	}

	var req service.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.Update(userID, tagID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTagNotFound):
			response.NotFound(c, "tag not found")
		case errors.Is(err, repository.ErrTagNameTaken):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to update tag")
		}
		return
	}

	response.Success(c, tag)
}

// Delete handles tag deletion
// DELETE /api/v1/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tagID, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tag id")
		return
	}

	if err := h.tagService.Delete(userID, tagID); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			response.NotFound(c, "tag not found")
			return
		}
		response.InternalError(c, "failed to delete tag")
		return
	}

	response.NoContent(c)
}

// RegisterRoutes registers tag routes behind authentication
func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	tags := rg.Group("/tags", authMiddleware)
	{
		tags.GET("", h.List)
		tags.POST("", h.Create)
		tags.PATCH("/:id", h.Update)
		tags.DELETE("/:id", h.Delete)
	}
}
