package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recipebox/internal/config"
	"github.com/recipebox/internal/models"
	"github.com/recipebox/internal/repository"
	"github.com/recipebox/pkg/crypto"
	"github.com/recipebox/pkg/keygen"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

const tokenCachePrefix = "authtoken:"

// TokenRepository defines the token persistence operations the service layer needs
type TokenRepository interface {
	GetByKey(key string) (*models.AuthToken, error)
	GetByUserID(userID uint) (*models.AuthToken, error)
	Create(token *models.AuthToken) error
	DeleteByUserID(userID uint) error
}

// AuthService issues and validates opaque bearer tokens. The
// auth_tokens table is authoritative; Redis caches key-to-user lookups
// so the hot path skips the database.
type AuthService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
	rdb       *redis.Client
	cacheTTL  time.Duration
}

// NewAuthService creates a new AuthService. rdb may be nil, in which
// case every validation hits the database.
func NewAuthService(userRepo UserRepository, tokenRepo TokenRepository, rdb *redis.Client, cfg config.AuthConfig) *AuthService {
	ttl := time.Duration(cfg.TokenCacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		rdb:       rdb,
		cacheTTL:  ttl,
	}
}

// ObtainTokenRequest represents the credential exchange request
type ObtainTokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents the issued token
type TokenResponse struct {
	Token string `json:"token"`
}

// ObtainToken exchanges credentials for the user's token, creating one
// on first login. last_login is stamped on every successful exchange.
func (s *AuthService) ObtainToken(ctx context.Context, req *ObtainTokenRequest) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenRepo.GetByUserID(user.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrTokenNotFound) {
			return nil, err
		}
		key, err := keygen.TokenKey()
		if err != nil {
			return nil, err
		}
		token = &models.AuthToken{Key: key, UserID: user.ID}
		if err := s.tokenRepo.Create(token); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		return nil, err
	}

	return &TokenResponse{Token: token.Key}, nil
}

// ValidateToken resolves a bearer key to the owning user ID
func (s *AuthService) ValidateToken(ctx context.Context, key string) (uint, error) {
	if key == "" {
		return 0, ErrInvalidToken
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, tokenCachePrefix+key).Result(); err == nil {
			if userID, err := strconv.ParseUint(cached, 10, 64); err == nil {
				return uint(userID), nil
			}
		}
	}

	token, err := s.tokenRepo.GetByKey(key)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return 0, ErrInvalidToken
		}
		return 0, err
	}

	if s.rdb != nil {
		// Cache failures are not fatal; the next request falls back to
		// the database again.
		s.rdb.Set(ctx, tokenCachePrefix+key, strconv.FormatUint(uint64(token.UserID), 10), s.cacheTTL)
	}

	return token.UserID, nil
}

// RevokeToken drops a user's token and its cached lookup
func (s *AuthService) RevokeToken(ctx context.Context, userID uint) error {
	token, err := s.tokenRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil
		}
		return err
	}
	if err := s.tokenRepo.DeleteByUserID(userID); err != nil {
		return err
	}
	if s.rdb != nil {
		s.rdb.Del(ctx, tokenCachePrefix+token.Key)
	}
	return nil
}
