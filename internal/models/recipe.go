package models

import (
	"time"
)

// Recipe is owned by exactly one user. Tags and ingredients attach
// through join tables and always belong to the same owner; the owner is
// taken from the authenticated caller, never from a payload.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	TimeMinutes int       `gorm:"not null" json:"time_minutes"`
	Price       string    `gorm:"type:decimal(6,2);not null" json:"price"`
	Link        string    `gorm:"size:255" json:"link"`
	ImageObject string    `gorm:"size:512" json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Relations
	User        User         `gorm:"foreignKey:UserID" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;" json:"ingredients"`
}

// TableName specifies the table name for Recipe model
func (Recipe) TableName() string {
	return "recipes"
}

func (r Recipe) String() string {
	return r.Title
}
