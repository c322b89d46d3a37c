package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"recipe-server/db"
	"recipe-server/entities"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
)

// LongInstructions is comfortably above the minimum instructions length.
var LongInstructions = strings.Repeat("Chop, stir and simmer slowly. ", 3)

// NewDatabase opens a migrated SQLite database that lives as long as the test.
func NewDatabase(t *testing.T) db.Database {
	t.Helper()
	entities.PasswordCost = bcrypt.MinCost

	path := filepath.Join(t.TempDir(), "recipes.db")
	database, err := db.Open(sqlite.Open(db.SQLiteDSN(path)), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return database
}

// MustCreateUser persists a user with the given credentials.
func MustCreateUser(t *testing.T, database db.Database, username, password string) *entities.User {
	t.Helper()

	user, err := entities.NewUser(username, nil, nil)
	require.NoError(t, err)
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, database.GetDB().Create(user).Error)

	return user
}
