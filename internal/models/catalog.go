package models

import (
	"time"
)

// Tag is a user-owned recipe label. Names are unique per owner, never
// shared across users.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_tags_user_name" json:"name"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_tags_user_name" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Recipes []Recipe `gorm:"many2many:recipe_tags;" json:"-"`
}

// TableName specifies the table name for Tag model
func (Tag) TableName() string {
	return "tags"
}

func (t Tag) String() string {
	return t.Name
}

// Ingredient is a user-owned recipe component. Same shape as Tag but an
// independent namespace.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name" json:"name"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_ingredients_user_name" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Recipes []Recipe `gorm:"many2many:recipe_ingredients;" json:"-"`
}

// TableName specifies the table name for Ingredient model
func (Ingredient) TableName() string {
	return "ingredients"
}

func (i Ingredient) String() string {
	return i.Name
}
