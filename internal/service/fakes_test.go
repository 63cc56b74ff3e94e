package service_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/recipebox/internal/models"
	"github.com/recipebox/internal/repository"
)

// In-memory repository fakes. They mirror the scoping and ordering
// behavior of the real GORM-backed repositories so services can be
// exercised without a database.

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	user.DateJoined = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := f.GetByEmail(email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepo) ExistsByUsername(username string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(id uint, at time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.LastLogin = &at
	return nil
}

type fakeTokenRepo struct {
	nextID uint
	tokens map[uint]*models.AuthToken // keyed by user ID
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uint]*models.AuthToken)}
}

func (f *fakeTokenRepo) GetByKey(key string) (*models.AuthToken, error) {
	for _, token := range f.tokens {
		if token.Key == key {
			cp := *token
			return &cp, nil
		}
	}
	return nil, repository.ErrTokenNotFound
}

func (f *fakeTokenRepo) GetByUserID(userID uint) (*models.AuthToken, error) {
	token, ok := f.tokens[userID]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	cp := *token
	return &cp, nil
}

func (f *fakeTokenRepo) Create(token *models.AuthToken) error {
	f.nextID++
	token.ID = f.nextID
	token.CreatedAt = time.Now()
	cp := *token
	f.tokens[token.UserID] = &cp
	return nil
}

func (f *fakeTokenRepo) DeleteByUserID(userID uint) error {
	delete(f.tokens, userID)
	return nil
}

type fakeTagRepo struct {
	nextID uint
	tags   map[uint]*models.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[uint]*models.Tag)}
}

func (f *fakeTagRepo) Create(tag *models.Tag) error {
	for _, existing := range f.tags {
		if existing.UserID == tag.UserID && existing.Name == tag.Name {
			return repository.ErrTagNameTaken
		}
	}
	f.nextID++
	tag.ID = f.nextID
	cp := *tag
	f.tags[tag.ID] = &cp
	return nil
}

func (f *fakeTagRepo) GetByIDAndUserID(id, userID uint) (*models.Tag, error) {
	tag, ok := f.tags[id]
	if !ok || tag.UserID != userID {
		return nil, repository.ErrTagNotFound
	}
	cp := *tag
	return &cp, nil
}

func (f *fakeTagRepo) GetByUserID(userID uint) ([]models.Tag, error) {
	var tags []models.Tag
	for _, tag := range f.tags {
		if tag.UserID == userID {
			tags = append(tags, *tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name > tags[j].Name })
	return tags, nil
}

func (f *fakeTagRepo) GetOrCreate(userID uint, name string) (*models.Tag, error) {
	for _, tag := range f.tags {
		if tag.UserID == userID && tag.Name == name {
			cp := *tag
			return &cp, nil
		}
	}
	tag := &models.Tag{UserID: userID, Name: name}
	if err := f.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (f *fakeTagRepo) Update(tag *models.Tag) error {
	if _, ok := f.tags[tag.ID]; !ok {
		return repository.ErrTagNotFound
	}
	for _, existing := range f.tags {
		if existing.ID != tag.ID && existing.UserID == tag.UserID && existing.Name == tag.Name {
			return repository.ErrTagNameTaken
		}
	}
	cp := *tag
	f.tags[tag.ID] = &cp
	return nil
}

func (f *fakeTagRepo) Delete(id, userID uint) error {
	tag, ok := f.tags[id]
	if !ok || tag.UserID != userID {
		return repository.ErrTagNotFound
	}
	delete(f.tags, id)
	return nil
}

func (f *fakeTagRepo) count() int { return len(f.tags) }

type fakeIngredientRepo struct {
	nextID      uint
	ingredients map[uint]*models.Ingredient
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{ingredients: make(map[uint]*models.Ingredient)}
}

func (f *fakeIngredientRepo) Create(ingredient *models.Ingredient) error {
	for _, existing := range f.ingredients {
		if existing.UserID == ingredient.UserID && existing.Name == ingredient.Name {
			return repository.ErrIngredientNameTaken
		}
	}
	f.nextID++
	ingredient.ID = f.nextID
	cp := *ingredient
	f.ingredients[ingredient.ID] = &cp
	return nil
}

func (f *fakeIngredientRepo) GetByIDAndUserID(id, userID uint) (*models.Ingredient, error) {
	ingredient, ok := f.ingredients[id]
	if !ok || ingredient.UserID != userID {
		return nil, repository.ErrIngredientNotFound
	}
	cp := *ingredient
	return &cp, nil
}

func (f *fakeIngredientRepo) GetByUserID(userID uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	for _, ingredient := range f.ingredients {
		if ingredient.UserID == userID {
			ingredients = append(ingredients, *ingredient)
		}
	}
	sort.Slice(ingredients, func(i, j int) bool { return ingredients[i].Name > ingredients[j].Name })
	return ingredients, nil
}

func (f *fakeIngredientRepo) GetOrCreate(userID uint, name string) (*models.Ingredient, error) {
	for _, ingredient := range f.ingredients {
		if ingredient.UserID == userID && ingredient.Name == name {
			cp := *ingredient
			return &cp, nil
		}
	}
	ingredient := &models.Ingredient{UserID: userID, Name: name}
	if err := f.Create(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (f *fakeIngredientRepo) Update(ingredient *models.Ingredient) error {
	if _, ok := f.ingredients[ingredient.ID]; !ok {
		return repository.ErrIngredientNotFound
	}
	for _, existing := range f.ingredients {
		if existing.ID != ingredient.ID && existing.UserID == ingredient.UserID && existing.Name == ingredient.Name {
			return repository.ErrIngredientNameTaken
		}
	}
	cp := *ingredient
	f.ingredients[ingredient.ID] = &cp
	return nil
}

func (f *fakeIngredientRepo) Delete(id, userID uint) error {
	ingredient, ok := f.ingredients[id]
	if !ok || ingredient.UserID != userID {
		return repository.ErrIngredientNotFound
	}
	delete(f.ingredients, id)
	return nil
}

type fakeRecipeRepo struct {
	nextID  uint
	recipes map[uint]*models.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[uint]*models.Recipe)}
}

func copyRecipe(recipe *models.Recipe) *models.Recipe {
	cp := *recipe
	cp.Tags = append([]models.Tag(nil), recipe.Tags...)
	cp.Ingredients = append([]models.Ingredient(nil), recipe.Ingredients...)
	return &cp
}

func (f *fakeRecipeRepo) Create(recipe *models.Recipe) error {
	f.nextID++
	recipe.ID = f.nextID
	f.recipes[recipe.ID] = copyRecipe(recipe)
	return nil
}

func (f *fakeRecipeRepo) GetByIDAndUserID(id, userID uint) (*models.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok || recipe.UserID != userID {
		return nil, repository.ErrRecipeNotFound
	}
	return copyRecipe(recipe), nil
}

func (f *fakeRecipeRepo) GetByUserID(userID uint, filter repository.RecipeFilter) ([]models.Recipe, error) {
	var recipes []models.Recipe
	for _, recipe := range f.recipes {
		if recipe.UserID != userID {
			continue
		}
		if len(filter.TagIDs) > 0 && !hasAnyTag(recipe, filter.TagIDs) {
			continue
		}
		if len(filter.IngredientIDs) > 0 && !hasAnyIngredient(recipe, filter.IngredientIDs) {
			continue
		}
		recipes = append(recipes, *copyRecipe(recipe))
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID > recipes[j].ID })
	return recipes, nil
}

func hasAnyTag(recipe *models.Recipe, ids []uint) bool {
	for _, tag := range recipe.Tags {
		for _, id := range ids {
			if tag.ID == id {
				return true
			}
		}
	}
	return false
}

func hasAnyIngredient(recipe *models.Recipe, ids []uint) bool {
	for _, ingredient := range recipe.Ingredients {
		for _, id := range ids {
			if ingredient.ID == id {
				return true
			}
		}
	}
	return false
}

func (f *fakeRecipeRepo) Update(recipe *models.Recipe) error {
	stored, ok := f.recipes[recipe.ID]
	if !ok {
		return repository.ErrRecipeNotFound
	}
	// Column update only; associations stay as stored.
	updated := copyRecipe(recipe)
	updated.Tags = stored.Tags
	updated.Ingredients = stored.Ingredients
	f.recipes[recipe.ID] = updated
	return nil
}

func (f *fakeRecipeRepo) ReplaceTags(recipe *models.Recipe, tags []models.Tag) error {
	stored, ok := f.recipes[recipe.ID]
	if !ok {
		return repository.ErrRecipeNotFound
	}
	stored.Tags = append([]models.Tag(nil), tags...)
	recipe.Tags = append([]models.Tag(nil), tags...)
	return nil
}

func (f *fakeRecipeRepo) ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error {
	stored, ok := f.recipes[recipe.ID]
	if !ok {
		return repository.ErrRecipeNotFound
	}
	stored.Ingredients = append([]models.Ingredient(nil), ingredients...)
	recipe.Ingredients = append([]models.Ingredient(nil), ingredients...)
	return nil
}

func (f *fakeRecipeRepo) Delete(id, userID uint) error {
	recipe, ok := f.recipes[id]
	if !ok || recipe.UserID != userID {
		return repository.ErrRecipeNotFound
	}
	delete(f.recipes, id)
	return nil
}

type fakeImageStore struct {
	objects map[string][]byte
	deleted []string
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{objects: make(map[string][]byte)}
}

func (f *fakeImageStore) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.objects[objectName] = data
	return f.URL(objectName), nil
}

func (f *fakeImageStore) Delete(_ context.Context, objectName string) error {
	delete(f.objects, objectName)
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeImageStore) URL(objectName string) string {
	return "http://storage.test/recipe-images/" + objectName
}
