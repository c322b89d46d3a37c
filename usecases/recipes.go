package usecases

import (
	"context"
	"fmt"

	"recipe-server/entities"
	"recipe-server/logger"
	"recipe-server/repositories"
)

// RecipeInput is the client-supplied part of a recipe.
type RecipeInput struct {
	Title             string
	Instructions      string
	MinutesToComplete *int
}

// RecipePublisher is notified about every recipe that was stored.
type RecipePublisher interface {
	Publish(view entities.RecipeView)
}

type RecipeUseCase struct {
	recipes   repositories.RecipeRepository
	publisher RecipePublisher
	logger    *logger.Logger
}

func NewRecipeUseCase(recipes repositories.RecipeRepository, publisher RecipePublisher, log *logger.Logger) *RecipeUseCase {
	return &RecipeUseCase{recipes: recipes, publisher: publisher, logger: log}
}

// ListRecipes returns every recipe with its author.
func (uc *RecipeUseCase) ListRecipes(ctx context.Context) ([]entities.Recipe, error) {
	return uc.recipes.GetAll(ctx)
}

// CreateRecipe stores a recipe owned by userID.
func (uc *RecipeUseCase) CreateRecipe(ctx context.Context, userID string, in RecipeInput) (*entities.Recipe, error) {
	recipe, err := entities.NewRecipe(in.Title, in.Instructions, in.MinutesToComplete, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.recipes.Create(ctx, recipe); err != nil {
		if _, ok := entities.IsValidation(err); ok {
			return nil, err
		}
		uc.logger.Error("failed to create recipe", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if uc.publisher != nil {
		uc.publisher.Publish(recipe.PublicView())
	}
	return recipe, nil
}
