package service

import (
	"github.com/recipebox/internal/models"
)

// IngredientRepository defines the ingredient persistence operations
// the service layer needs
type IngredientRepository interface {
	Create(ingredient *models.Ingredient) error
	GetByIDAndUserID(id, userID uint) (*models.Ingredient, error)
	GetByUserID(userID uint) ([]models.Ingredient, error)
	GetOrCreate(userID uint, name string) (*models.Ingredient, error)
	Update(ingredient *models.Ingredient) error
	Delete(id, userID uint) error
}

// IngredientService handles ingredient CRUD scoped to the owning user
type IngredientService struct {
	ingredientRepo IngredientRepository
}

// NewIngredientService creates a new IngredientService
func NewIngredientService(ingredientRepo IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// IngredientRequest represents an ingredient create/update payload
type IngredientRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// List returns the caller's ingredients, name descending
func (s *IngredientService) List(userID uint) ([]models.Ingredient, error) {
	ingredients, err := s.ingredientRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return ingredients, nil
}

// Create creates an ingredient owned by the caller
func (s *IngredientService) Create(userID uint, req *IngredientRequest) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{UserID: userID, Name: req.Name}
	if err := s.ingredientRepo.Create(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Update renames an ingredient owned by the caller
func (s *IngredientService) Update(userID, ingredientID uint, req *IngredientRequest) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByIDAndUserID(ingredientID, userID)
	if err != nil {
		return nil, err
	}
	ingredient.Name = req.Name
	if err := s.ingredientRepo.Update(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Delete removes an ingredient owned by the caller
func (s *IngredientService) Delete(userID, ingredientID uint) error {
	return s.ingredientRepo.Delete(ingredientID, userID)
}
