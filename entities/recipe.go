package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MinInstructionsLength is the shortest accepted instructions text, in characters.
const MinInstructionsLength = 50

// Recipe is a user-authored recipe.
type Recipe struct {
	ID                string `gorm:"type:varchar(36);primaryKey"`
	Title             string `gorm:"not null"`
	Instructions      string `gorm:"type:text;not null"`
	MinutesToComplete int    `gorm:"not null"`
	UserID            string `gorm:"type:varchar(36);not null;index"`
	User              *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RecipeView is the client representation of a recipe, with its author embedded.
type RecipeView struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Instructions      string    `json:"instructions"`
	MinutesToComplete int       `json:"minutes_to_complete"`
	User              *UserView `json:"user"`
}

// NewRecipe validates and builds a recipe owned by userID.
func NewRecipe(title, instructions string, minutesToComplete *int, userID string) (*Recipe, error) {
	vErr := &ValidationError{}
	if minutesToComplete == nil {
		vErr.add("Minutes to complete must be present")
	}

	r := &Recipe{
		Title:        title,
		Instructions: instructions,
		UserID:       userID,
	}
	if minutesToComplete != nil {
		r.MinutesToComplete = *minutesToComplete
	}

	if err := r.Validate(); err != nil {
		v, _ := IsValidation(err)
		vErr.Messages = append(v.Messages, vErr.Messages...)
	}
	if err := vErr.errOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the recipe's field rules.
func (r *Recipe) Validate() error {
	vErr := &ValidationError{}

	if strings.TrimSpace(r.Title) == "" {
		vErr.add("Title must be present")
	}

	switch {
	case strings.TrimSpace(r.Instructions) == "":
		vErr.add("Instructions must be present")
	case utf8.RuneCountInString(r.Instructions) < MinInstructionsLength:
		vErr.add("Instructions must be at least 50 characters long")
	}

	if r.MinutesToComplete < 0 {
		vErr.add("Minutes to complete must not be negative")
	}
	if r.UserID == "" {
		vErr.add("Recipe must belong to a user")
	}
	return vErr.errOrNil()
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

func (r *Recipe) BeforeSave(tx *gorm.DB) (err error) {
	return r.Validate()
}

// PublicView renders the recipe and, when loaded, its author.
func (r *Recipe) PublicView() RecipeView {
	view := RecipeView{
		ID:                r.ID,
		Title:             r.Title,
		Instructions:      r.Instructions,
		MinutesToComplete: r.MinutesToComplete,
	}
	if r.User != nil {
		author := r.User.PublicView()
		view.User = &author
	}
	return view
}
