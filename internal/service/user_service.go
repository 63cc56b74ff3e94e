package service

import (
	"errors"
	"strings"
	"time"

	"github.com/recipebox/internal/models"
	"github.com/recipebox/pkg/crypto"
)

var (
	ErrEmailRequired       = errors.New("user must have an email address")
	ErrUsernameRequired    = errors.New("user must have a username")
	ErrEmailTaken          = errors.New("email already taken")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrSuperuserStaffFlag  = errors.New("superuser must have is_staff=true")
	ErrSuperuserPrivileged = errors.New("superuser must have is_superuser=true")
)

// UserRepository defines the user persistence operations the service layer needs
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByUsername(username string) (bool, error)
	Update(user *models.User) error
	UpdateLastLogin(id uint, at time.Time) error
}

// UserService handles account creation and profile management
type UserService struct {
	userRepo UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterRequest represents the account creation request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=255"`
	Name     string `json:"name" binding:"max=255"`
	Password string `json:"password" binding:"required,min=5,max=100"`
}

// UpdateProfileRequest represents a partial profile update. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=3,max=255"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=5,max=100"`
}

// UserResponse is the serialized user representation. The password hash
// never leaves the service layer.
type UserResponse struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	Name       string     `json:"name"`
	IsStaff    bool       `json:"is_staff"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

// NormalizeEmail lower-cases only the domain part of an email address;
// the local part is preserved as typed. Input without an "@" comes back
// trimmed but otherwise unchanged.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// CreateUser creates a regular account: email domain normalized,
// password hashed, default flags (active, non-staff, non-superuser)
func (s *UserService) CreateUser(req *RegisterRequest) (*models.User, error) {
	return s.create(req, false, false)
}

// CreateSuperuser creates a privileged account. The staff/superuser
// flags are forced on; an explicit falsy override is rejected so that
// superuser creation can never yield a non-privileged account.
func (s *UserService) CreateSuperuser(req *RegisterRequest, isStaff, isSuperuser *bool) (*models.User, error) {
	if isStaff != nil && !*isStaff {
		return nil, ErrSuperuserStaffFlag
	}
	if isSuperuser != nil && !*isSuperuser {
		return nil, ErrSuperuserPrivileged
	}
	return s.create(req, true, true)
}

func (s *UserService) create(req *RegisterRequest, isStaff, isSuperuser bool) (*models.User, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(req.Username) == "" {
		return nil, ErrUsernameRequired
	}

	email := NormalizeEmail(req.Email)

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	exists, err = s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsStaff:      isStaff,
		IsSuperuser:  isSuperuser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetProfile returns the serialized profile of a user
func (s *UserService) GetProfile(userID uint) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return NewUserResponse(user), nil
}

// UpdateProfile applies a partial update to the caller's own profile
func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}
	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.userRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameTaken
		}
		user.Username = *req.Username
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		passwordHash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return NewUserResponse(user), nil
}

// NewUserResponse serializes a user. Every endpoint that returns a user
// goes through this so the representation stays uniform.
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		Name:       user.Name,
		IsStaff:    user.IsStaff,
		DateJoined: user.DateJoined,
		LastLogin:  user.LastLogin,
	}
}
