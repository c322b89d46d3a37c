package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"recipe-server/entities"
	"recipe-server/logger"
	"recipe-server/repositories"
)

// SignupInput is the data needed to register a user.
type SignupInput struct {
	Username string
	Password string
	ImageURL *string
	Bio      *string
}

type AuthUseCase struct {
	users  repositories.UserRepository
	logger *logger.Logger

	decoyOnce sync.Once
	decoy     *entities.User
}

func NewAuthUseCase(users repositories.UserRepository, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, logger: log}
}

// Signup validates, hashes and persists a new user.
func (uc *AuthUseCase) Signup(ctx context.Context, in SignupInput) (*entities.User, error) {
	user, err := entities.NewUser(in.Username, in.ImageURL, in.Bio)
	if err != nil {
		return nil, err
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}

	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, entities.NewValidationError("Username has already been taken")
		}
		if _, ok := entities.IsValidation(err); ok {
			return nil, err
		}
		uc.logger.Error("failed to create user", "username", user.Username, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	uc.logger.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// Login returns the user when username and password match. Unknown users
// and wrong passwords fail identically. The username is trimmed the same
// way signup stores it.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := uc.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			uc.logger.Error("failed to look up user", "error", err)
		}
		// Spend the same bcrypt time as a real check.
		uc.decoyUser().Authenticate(password)
		return nil, ErrUnauthorized
	}
	if !user.Authenticate(password) {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// CurrentUser resolves the session's user id to a user that still exists.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID string) (*entities.User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			uc.logger.Error("failed to load session user", "user_id", userID, "error", err)
		}
		return nil, ErrUnauthorized
	}
	return user, nil
}

func (uc *AuthUseCase) decoyUser() *entities.User {
	uc.decoyOnce.Do(func() {
		uc.decoy = &entities.User{}
		if err := uc.decoy.SetPassword("decoy-password"); err != nil {
			uc.logger.Error("failed to build decoy password", "error", err)
		}
	})
	return uc.decoy
}
