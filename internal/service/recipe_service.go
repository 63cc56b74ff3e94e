package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/recipebox/internal/models"
	"github.com/recipebox/internal/repository"
	"github.com/recipebox/pkg/keygen"
)

var (
	ErrInvalidPrice = errors.New("price must be a positive decimal with at most two fraction digits")
	ErrNotAnImage   = errors.New("uploaded file is not an image")
)

// priceFormat accepts values like "5", "5.9", "5.99"; the column is
// decimal(6,2) so the integer part is capped at four digits.
var priceFormat = regexp.MustCompile(`^\d{1,4}(\.\d{1,2})?$`)

// RecipeRepository defines the recipe persistence operations the
// service layer needs
type RecipeRepository interface {
	Create(recipe *models.Recipe) error
	GetByIDAndUserID(id, userID uint) (*models.Recipe, error)
	GetByUserID(userID uint, filter repository.RecipeFilter) ([]models.Recipe, error)
	Update(recipe *models.Recipe) error
	ReplaceTags(recipe *models.Recipe, tags []models.Tag) error
	ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error
	Delete(id, userID uint) error
}

// ImageStore abstracts the object storage backend for recipe images
type ImageStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	URL(objectName string) string
}

// RecipeService handles recipe CRUD, tag/ingredient reconciliation, and
// image attachment, all scoped to the owning user
type RecipeService struct {
	recipeRepo     RecipeRepository
	tagRepo        TagRepository
	ingredientRepo IngredientRepository
	store          ImageStore
}

// NewRecipeService creates a new RecipeService
func NewRecipeService(
	recipeRepo RecipeRepository,
	tagRepo TagRepository,
	ingredientRepo IngredientRepository,
	store ImageStore,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		store:          store,
	}
}

// RecipeItemInput names a tag or ingredient to attach. Items are
// matched by (owner, name) and created when absent.
type RecipeItemInput struct {
	Name string `json:"name" binding:"required,max=255"`
}

// CreateRecipeRequest represents the recipe creation payload
type CreateRecipeRequest struct {
	Title       string            `json:"title" binding:"required,max=255"`
	Description string            `json:"description"`
	TimeMinutes int               `json:"time_minutes" binding:"required,gt=0"`
	Price       string            `json:"price" binding:"required"`
	Link        string            `json:"link" binding:"omitempty,url,max=255"`
	Tags        []RecipeItemInput `json:"tags" binding:"omitempty,dive"`
	Ingredients []RecipeItemInput `json:"ingredients" binding:"omitempty,dive"`
}

// UpdateRecipeRequest represents a partial recipe update. Nil fields
// are left untouched; a present-but-empty tags/ingredients list clears
// that association.
type UpdateRecipeRequest struct {
	Title       *string            `json:"title" binding:"omitempty,max=255"`
	Description *string            `json:"description"`
	TimeMinutes *int               `json:"time_minutes" binding:"omitempty,gt=0"`
	Price       *string            `json:"price"`
	Link        *string            `json:"link" binding:"omitempty,url,max=255"`
	Tags        *[]RecipeItemInput `json:"tags" binding:"omitempty,dive"`
	Ingredients *[]RecipeItemInput `json:"ingredients" binding:"omitempty,dive"`
}

// RecipeResponse is the list representation of a recipe
type RecipeResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       string              `json:"price"`
	Link        string              `json:"link"`
	Tags        []models.Tag        `json:"tags"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

// RecipeDetailResponse adds the fields present only on the detail
// endpoint
type RecipeDetailResponse struct {
	RecipeResponse
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// List returns the caller's recipes, newest first, optionally filtered
// by tag/ingredient ID sets
func (s *RecipeService) List(userID uint, filter repository.RecipeFilter) ([]RecipeResponse, error) {
	recipes, err := s.recipeRepo.GetByUserID(userID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		responses[i] = s.buildResponse(&recipes[i])
	}
	return responses, nil
}

// Get returns the detail representation of one owned recipe
func (s *RecipeService) Get(userID, recipeID uint) (*RecipeDetailResponse, error) {
	recipe, err := s.recipeRepo.GetByIDAndUserID(recipeID, userID)
	if err != nil {
		return nil, err
	}
	return s.buildDetailResponse(recipe), nil
}

// Create creates a recipe owned by the caller, reconciling any named
// tags and ingredients
func (s *RecipeService) Create(userID uint, req *CreateRecipeRequest) (*RecipeDetailResponse, error) {
	if !priceFormat.MatchString(req.Price) {
		return nil, ErrInvalidPrice
	}

	tags, err := s.resolveTags(userID, req.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(userID, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}

	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	return s.buildDetailResponse(recipe), nil
}

// Update applies a partial update to an owned recipe. Tag/ingredient
// lists replace the existing associations wholesale when present.
func (s *RecipeService) Update(userID, recipeID uint, req *UpdateRecipeRequest) (*RecipeDetailResponse, error) {
	recipe, err := s.recipeRepo.GetByIDAndUserID(recipeID, userID)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		if !priceFormat.MatchString(*req.Price) {
			return nil, ErrInvalidPrice
		}
		recipe.Price = *req.Price
	}
	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		tags, err := s.resolveTags(userID, *req.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceTags(recipe, tags); err != nil {
			return nil, err
		}
	}
	if req.Ingredients != nil {
		ingredients, err := s.resolveIngredients(userID, *req.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceIngredients(recipe, ingredients); err != nil {
			return nil, err
		}
	}

	return s.buildDetailResponse(recipe), nil
}

// Delete removes an owned recipe and its stored image, if any
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.recipeRepo.GetByIDAndUserID(recipeID, userID)
	if err != nil {
		return err
	}
	if err := s.recipeRepo.Delete(recipeID, userID); err != nil {
		return err
	}
	if recipe.ImageObject != "" {
		// Best effort: a dangling object is preferable to a failed delete.
		_ = s.store.Delete(ctx, recipe.ImageObject)
	}
	return nil
}

// UploadImage attaches an image to an owned recipe. The payload is
// sniffed; anything that is not an image is rejected.
func (s *RecipeService) UploadImage(ctx context.Context, userID, recipeID uint, filename string, r io.Reader, size int64) (*RecipeDetailResponse, error) {
	recipe, err := s.recipeRepo.GetByIDAndUserID(recipeID, userID)
	if err != nil {
		return nil, err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}

	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	objectName := keygen.ImageObjectName(filename)
	body := io.MultiReader(bytes.NewReader(head[:n]), r)
	if _, err := s.store.Upload(ctx, objectName, body, size, contentType); err != nil {
		return nil, err
	}

	previous := recipe.ImageObject
	recipe.ImageObject = objectName
	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	if previous != "" {
		_ = s.store.Delete(ctx, previous)
	}

	return s.buildDetailResponse(recipe), nil
}

// resolveTags maps payload names to tag rows, creating missing ones.
// Duplicate names within one payload collapse to a single row.
func (s *RecipeService) resolveTags(userID uint, inputs []RecipeItemInput) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if seen[in.Name] {
			continue
		}
		seen[in.Name] = true
		tag, err := s.tagRepo.GetOrCreate(userID, in.Name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(userID uint, inputs []RecipeItemInput) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if seen[in.Name] {
			continue
		}
		seen[in.Name] = true
		ingredient, err := s.ingredientRepo.GetOrCreate(userID, in.Name)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}

func (s *RecipeService) buildResponse(recipe *models.Recipe) RecipeResponse {
	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	ingredients := recipe.Ingredients
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func (s *RecipeService) buildDetailResponse(recipe *models.Recipe) *RecipeDetailResponse {
	detail := &RecipeDetailResponse{
		RecipeResponse: s.buildResponse(recipe),
		Description:    recipe.Description,
	}
	if recipe.ImageObject != "" {
		detail.ImageURL = s.store.URL(recipe.ImageObject)
	}
	return detail
}
