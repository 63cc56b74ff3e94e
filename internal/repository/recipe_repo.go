package repository

import (
	"errors"

	"github.com/recipebox/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// RecipeFilter restricts a recipe listing to recipes carrying any of
// the given tag IDs and any of the given ingredient IDs. An empty slice
// leaves that dimension unconstrained.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository handles recipe data access
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe together with its association rows.
// Attached tags/ingredients must already exist; their rows are not
// modified here.
func (r *RecipeRepository) Create(recipe *models.Recipe) error {
	return r.db.Create(recipe).Error
}

// GetByIDAndUserID retrieves a recipe by ID scoped to its owner, with
// tags and ingredients loaded. Foreign recipes are indistinguishable
// from missing ones.
func (r *RecipeRepository) GetByIDAndUserID(id, userID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	result := r.db.Preload("Tags").Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).First(&recipe)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, result.Error
	}
	return &recipe, nil
}

// GetByUserID retrieves recipes for a user, newest first, optionally
// filtered by tag/ingredient ID sets. Membership is OR within one set
// and AND across the two sets; DISTINCT keeps a recipe matching several
// IDs from appearing twice.
func (r *RecipeRepository) GetByUserID(userID uint, filter RecipeFilter) ([]models.Recipe, error) {
	query := r.db.Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []models.Recipe
	result := query.Distinct("recipes.*").
		Preload("Tags").Preload("Ingredients").
		Order("recipes.id DESC").
		Find(&recipes)
	return recipes, result.Error
}

// Update persists recipe column changes without touching associations
func (r *RecipeRepository) Update(recipe *models.Recipe) error {
	return r.db.Omit(clause.Associations).Save(recipe).Error
}

// ReplaceTags swaps the recipe's tag associations wholesale. An empty
// slice clears them.
func (r *RecipeRepository) ReplaceTags(recipe *models.Recipe, tags []models.Tag) error {
	if err := r.db.Model(recipe).Association("Tags").Replace(toTagPtrs(tags)...); err != nil {
		return err
	}
	recipe.Tags = tags
	return nil
}

// ReplaceIngredients swaps the recipe's ingredient associations wholesale
func (r *RecipeRepository) ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error {
	if err := r.db.Model(recipe).Association("Ingredients").Replace(toIngredientPtrs(ingredients)...); err != nil {
		return err
	}
	recipe.Ingredients = ingredients
	return nil
}

// Delete removes a recipe scoped to its owner, cascading to its own
// association rows only
func (r *RecipeRepository) Delete(id, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

func toTagPtrs(tags []models.Tag) []interface{} {
	ptrs := make([]interface{}, len(tags))
	for i := range tags {
		ptrs[i] = &tags[i]
	}
	return ptrs
}

func toIngredientPtrs(ingredients []models.Ingredient) []interface{} {
	ptrs := make([]interface{}, len(ingredients))
	for i := range ingredients {
		ptrs[i] = &ingredients[i]
	}
	return ptrs
}
