package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Recipe is the persisted recipe record. Ingredients and instructions
// are stored as newline-delimited text blocks, which is also the shape
// the import pipeline produces. Time fields are pointers so the absence
// of a value survives the round trip (nil, not zero minutes).
type Recipe struct {
	ID           uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Category     string          `gorm:"size:50" json:"category"`
	Ingredients  string          `gorm:"type:text" json:"ingredients"`
	Instructions string          `gorm:"type:text" json:"instructions"`
	PrepMinutes  *int            `json:"prep_minutes,omitempty"`
	CookMinutes  *int            `json:"cook_minutes,omitempty"`
	Servings     *int            `json:"servings,omitempty"`
	Difficulty   string          `gorm:"size:10;not null;default:'medium'" json:"difficulty"`
	ImageURL     string          `gorm:"size:512" json:"image_url"`
	SourceURL    string          `gorm:"size:512" json:"source_url"`
	Embedding    pgvector.Vector `gorm:"type:vector(4)" json:"-"`
	UserID       uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"user_id"`
}

type RecipeFavorite struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index:idx_recipe_user,unique" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_recipe_user,unique" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (f *RecipeFavorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
