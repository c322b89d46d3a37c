package repositories

import (
	"context"
	"errors"
	"fmt"

	"recipe-server/db"
	"recipe-server/entities"

	"gorm.io/gorm"
)

type userRepository struct {
	db db.Database
}

func NewUserRepository(database db.Database) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	err := r.db.GetDB().WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUsernameTaken
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Delete removes recipes first so the cascade holds even where the store
// does not enforce foreign keys.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&entities.Recipe{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipes of user %s: %w", id, err)
		}
		res := tx.Where("id = ?", id).Delete(&entities.User{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete user %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
