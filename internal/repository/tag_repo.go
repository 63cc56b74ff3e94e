package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/recipebox/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound  = errors.New("tag not found")
	ErrTagNameTaken = errors.New("tag name already taken")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// TagRepository handles tag data access
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create creates a new tag. A name the owner already uses trips the
// (user_id, name) unique index and comes back as ErrTagNameTaken.
func (r *TagRepository) Create(tag *models.Tag) error {
	if err := r.db.Create(tag).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrTagNameTaken
		}
		return err
	}
	return nil
}

// GetByIDAndUserID retrieves a tag by ID scoped to its owner.
// Foreign tags are indistinguishable from missing ones.
func (r *TagRepository) GetByIDAndUserID(id, userID uint) (*models.Tag, error) {
	var tag models.Tag
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, result.Error
	}
	return &tag, nil
}

// GetByUserID retrieves all tags for a user, name descending
func (r *TagRepository) GetByUserID(userID uint) ([]models.Tag, error) {
	var tags []models.Tag
	result := r.db.Where("user_id = ?", userID).Order("name DESC").Find(&tags)
	return tags, result.Error
}

// GetOrCreate looks up a tag by (owner, name), creating it when absent
func (r *TagRepository) GetOrCreate(userID uint, name string) (*models.Tag, error) {
	tag := models.Tag{UserID: userID, Name: name}
	result := r.db.Where(models.Tag{UserID: userID, Name: name}).FirstOrCreate(&tag)
	if result.Error != nil {
		return nil, result.Error
	}
	return &tag, nil
}

// Update updates a tag. Renaming onto an existing name of the same
// owner yields ErrTagNameTaken.
func (r *TagRepository) Update(tag *models.Tag) error {
	if err := r.db.Save(tag).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrTagNameTaken
		}
		return err
	}
	return nil
}

// Delete removes a tag scoped to its owner. Association rows go with
// it; recipes themselves are untouched.
func (r *TagRepository) Delete(id, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return err
		}
		if err := tx.Model(&tag).Association("Recipes").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}
