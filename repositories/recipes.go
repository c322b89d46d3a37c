package repositories

import (
	"context"

	"recipe-server/db"
	"recipe-server/entities"

	"gorm.io/gorm"
)

type recipeRepository struct {
	db db.Database
}

func NewRecipeRepository(database db.Database) RecipeRepository {
	return &recipeRepository{db: database}
}

// Create inserts the recipe and loads its author for serialization. Both
// happen in one transaction, nothing is stored if either fails.
func (r *recipeRepository) Create(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Create(recipe).Error; err != nil {
			return err
		}
		return tx.Preload("User").Where("id = ?", recipe.ID).First(recipe).Error
	})
}

func (r *recipeRepository) GetAll(ctx context.Context) ([]entities.Recipe, error) {
	recipes := []entities.Recipe{}
	err := r.db.GetDB().WithContext(ctx).Preload("User").Order("created_at ASC").Find(&recipes).Error
	return recipes, err
}
