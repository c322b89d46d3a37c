package usecases

import (
	"context"
	"errors"
	"testing"

	"recipe-server/entities"
	"recipe-server/logger"
	"recipe-server/repositories"
	"recipe-server/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) *AuthUseCase {
	t.Helper()
	return NewAuthUseCase(repositories.NewUserRepository(testutil.NewDatabase(t)), logger.Nop())
}

func TestAuth_Signup(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)
	bio := "home cook"

	user, err := uc.Signup(ctx, SignupInput{Username: "alice", Password: "secret123", Bio: &bio})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "home cook", *user.Bio)
	assert.True(t, user.Authenticate("secret123"))
}

func TestAuth_Signup_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   SignupInput
		want []string
	}{
		{name: "missing username", in: SignupInput{Password: "secret123"}, want: []string{"Username must be present"}},
		{name: "missing password", in: SignupInput{Username: "alice"}, want: []string{"Password must be present"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAuth(t).Signup(context.Background(), tt.in)

			vErr, ok := entities.IsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, vErr.Messages)
		})
	}
}

func TestAuth_Signup_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewDatabase(t)
	uc := NewAuthUseCase(repositories.NewUserRepository(database), logger.Nop())

	_, err := uc.Signup(ctx, SignupInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, err = uc.Signup(ctx, SignupInput{Username: "alice", Password: "another-one"})
	vErr, ok := entities.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Username has already been taken"}, vErr.Messages)

	var count int64
	require.NoError(t, database.GetDB().Model(&entities.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

type failingUsers struct {
	repositories.UserRepository
	err error
}

func (f failingUsers) Create(context.Context, *entities.User) error { return f.err }

func (f failingUsers) GetByUsername(context.Context, string) (*entities.User, error) {
	return nil, f.err
}

func (f failingUsers) GetByID(context.Context, string) (*entities.User, error) {
	return nil, f.err
}

func TestAuth_Signup_StoreFailureIsHidden(t *testing.T) {
	entities.PasswordCost = 4
	uc := NewAuthUseCase(failingUsers{err: errors.New("pq: connection refused")}, logger.Nop())

	_, err := uc.Signup(context.Background(), SignupInput{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, ErrSaveFailed)
	_, isValidation := entities.IsValidation(err)
	assert.False(t, isValidation)
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)
	created, err := uc.Signup(ctx, SignupInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	user, err := uc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, errWrongPassword := uc.Login(ctx, "alice", "wrong")
	_, errUnknownUser := uc.Login(ctx, "bob", "secret123")

	assert.ErrorIs(t, errWrongPassword, ErrUnauthorized)
	assert.ErrorIs(t, errUnknownUser, ErrUnauthorized)
	assert.Equal(t, errWrongPassword, errUnknownUser)
}

func TestAuth_Login_StoreFailure(t *testing.T) {
	entities.PasswordCost = 4
	uc := NewAuthUseCase(failingUsers{err: errors.New("boom")}, logger.Nop())

	_, err := uc.Login(context.Background(), "alice", "secret123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_CurrentUser(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewDatabase(t)
	users := repositories.NewUserRepository(database)
	uc := NewAuthUseCase(users, logger.Nop())

	alice := testutil.MustCreateUser(t, database, "alice", "secret123")

	user, err := uc.CurrentUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = uc.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, users.Delete(ctx, alice.ID))
	_, err = uc.CurrentUser(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_Login_TrimsUsername(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	created, err := uc.Signup(ctx, SignupInput{Username: " alice ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)

	for _, username := range []string{" alice ", "alice", "\talice"} {
		user, err := uc.Login(ctx, username, "secret123")
		require.NoError(t, err, username)
		assert.Equal(t, created.ID, user.ID)
	}
}
