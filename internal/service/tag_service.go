package service

import (
	"github.com/recipebox/internal/models"
)

// TagRepository defines the tag persistence operations the service layer needs
type TagRepository interface {
	Create(tag *models.Tag) error
	GetByIDAndUserID(id, userID uint) (*models.Tag, error)
	GetByUserID(userID uint) ([]models.Tag, error)
	GetOrCreate(userID uint, name string) (*models.Tag, error)
	Update(tag *models.Tag) error
	Delete(id, userID uint) error
}

// TagService handles tag CRUD scoped to the owning user
type TagService struct {
	tagRepo TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// TagRequest represents a tag create/update payload
type TagRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// List returns the caller's tags, name descending
func (s *TagService) List(userID uint) ([]models.Tag, error) {
	tags, err := s.tagRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

// Create creates a tag owned by the caller
func (s *TagService) Create(userID uint, req *TagRequest) (*models.Tag, error) {
	tag := &models.Tag{UserID: userID, Name: req.Name}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Update renames a tag owned by the caller
func (s *TagService) Update(userID, tagID uint, req *TagRequest) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByIDAndUserID(tagID, userID)
	if err != nil {
		return nil, err
	}
	tag.Name = req.Name
	if err := s.tagRepo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete removes a tag owned by the caller
func (s *TagService) Delete(userID, tagID uint) error {
	return s.tagRepo.Delete(tagID, userID)
}
