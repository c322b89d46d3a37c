package repositories

import (
	"context"
	"errors"

	"recipe-server/entities"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	// Delete removes the user together with every recipe it authored.
	Delete(ctx context.Context, id string) error
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *entities.Recipe) error
	GetAll(ctx context.Context) ([]entities.Recipe, error)
}
