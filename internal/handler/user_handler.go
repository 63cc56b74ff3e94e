package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/internal/middleware"
	"github.com/recipebox/internal/service"
	"github.com/recipebox/pkg/response"
)

// UserHandler handles account and token API requests
type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// Create handles account registration
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.CreateUser(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrEmailRequired),
			errors.Is(err, service.ErrUsernameRequired):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to create user")
		}
		return
	}

	response.Created(c, service.NewUserResponse(user))
}

// ObtainToken exchanges credentials for a bearer token
// POST /api/v1/users/token
func (h *UserHandler) ObtainToken(c *gin.Context) {
	var req service.ObtainTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.authService.ObtainToken(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BadRequest(c, "unable to authenticate with provided credentials")
			return
		}
		response.InternalError(c, "failed to issue token")
		return
	}

	response.Success(c, token)
}

// Me returns the authenticated user's profile
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		response.InternalError(c, "failed to load profile")
		return
	}

	response.Success(c, profile)
}

// UpdateMe partially updates the authenticated user's profile
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to update profile")
		}
		return
	}

	response.Success(c, profile)
}

// RegisterRoutes registers user routes. Registration and token exchange
// are public; the profile endpoints require authentication.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.POST("/token", h.ObtainToken)

		me := users.Group("/me", authMiddleware)
		{
			me.GET("", h.Me)
			me.PATCH("", h.UpdateMe)
		}
	}
}
