package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Email is the login identifier;
// username is kept as a separate unique handle.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username     string         `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Name         string         `gorm:"size:255" json:"name"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	IsStaff      bool           `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool           `gorm:"default:false" json:"is_superuser"`
	DateJoined   time.Time      `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin    *time.Time     `json:"last_login,omitempty"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Recipes     []Recipe     `gorm:"foreignKey:UserID" json:"-"`
	Tags        []Tag        `gorm:"foreignKey:UserID" json:"-"`
	Ingredients []Ingredient `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// AuthToken is the server-side record backing opaque bearer tokens.
// One token per user; the key is what clients present in the
// Authorization header.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"uniqueIndex;size:64;not null" json:"key"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for AuthToken model
func (AuthToken) TableName() string {
	return "auth_tokens"
}
