package repository

import (
	"errors"

	"github.com/recipebox/internal/models"
	"gorm.io/gorm"
)

var (
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrIngredientNameTaken = errors.New("ingredient name already taken")
)

// IngredientRepository handles ingredient data access
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new IngredientRepository
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// Create creates a new ingredient. A name the owner already uses trips
// the (user_id, name) unique index and comes back as
// ErrIngredientNameTaken.
func (r *IngredientRepository) Create(ingredient *models.Ingredient) error {
	if err := r.db.Create(ingredient).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrIngredientNameTaken
		}
		return err
	}
	return nil
}

// GetByIDAndUserID retrieves an ingredient by ID scoped to its owner
func (r *IngredientRepository) GetByIDAndUserID(id, userID uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&ingredient)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, result.Error
	}
	return &ingredient, nil
}

// GetByUserID retrieves all ingredients for a user, name descending
func (r *IngredientRepository) GetByUserID(userID uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	result := r.db.Where("user_id = ?", userID).Order("name DESC").Find(&ingredients)
	return ingredients, result.Error
}

// GetOrCreate looks up an ingredient by (owner, name), creating it when absent
func (r *IngredientRepository) GetOrCreate(userID uint, name string) (*models.Ingredient, error) {
	ingredient := models.Ingredient{UserID: userID, Name: name}
	result := r.db.Where(models.Ingredient{UserID: userID, Name: name}).FirstOrCreate(&ingredient)
	if result.Error != nil {
		return nil, result.Error
	}
	return &ingredient, nil
}

// Update updates an ingredient. Renaming onto an existing name of the
// same owner yields ErrIngredientNameTaken.
func (r *IngredientRepository) Update(ingredient *models.Ingredient) error {
	if err := r.db.Save(ingredient).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrIngredientNameTaken
		}
		return err
	}
	return nil
}

// Delete removes an ingredient scoped to its owner
func (r *IngredientRepository) Delete(id, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&ingredient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIngredientNotFound
			}
			return err
		}
		if err := tx.Model(&ingredient).Association("Recipes").Clear(); err != nil {
			return err
		}
		return tx.Delete(&ingredient).Error
	})
}
