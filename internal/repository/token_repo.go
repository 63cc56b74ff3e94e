package repository

import (
	"errors"

	"github.com/recipebox/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTokenNotFound = errors.New("token not found")
)

// TokenRepository handles auth token data access
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetByKey retrieves a token by its key
func (r *TokenRepository) GetByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	result := r.db.Where("key = ?", key).First(&token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, result.Error
	}
	return &token, nil
}

// GetByUserID retrieves a user's token
func (r *TokenRepository) GetByUserID(userID uint) (*models.AuthToken, error) {
	var token models.AuthToken
	result := r.db.Where("user_id = ?", userID).First(&token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, result.Error
	}
	return &token, nil
}

// Create creates a new token
func (r *TokenRepository) Create(token *models.AuthToken) error {
	return r.db.Create(token).Error
}

// DeleteByUserID removes a user's token
func (r *TokenRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}
