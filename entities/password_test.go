package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_SetPasswordAndAuthenticate(t *testing.T) {
	u := &User{Username: "alice"}
	require.NoError(t, u.SetPassword("secret123"))

	assert.True(t, u.Authenticate("secret123"))
	assert.False(t, u.Authenticate("secret124"))
	assert.False(t, u.Authenticate(""))
}

func TestUser_SetPassword_SaltsEachHash(t *testing.T) {
	a := &User{}
	b := &User{}
	require.NoError(t, a.SetPassword("same-password"))
	require.NoError(t, b.SetPassword("same-password"))

	av, err := a.Password.Value()
	require.NoError(t, err)
	bv, err := b.Password.Value()
	require.NoError(t, err)

	assert.NotEqual(t, av, bv)
	assert.NotContains(t, av, "same-password")
}

func TestUser_SetPassword_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		msg  string
	}{
		{name: "empty", raw: "", msg: "Password must be present"},
		{name: "too long", raw: strings.Repeat("x", 73), msg: "Password must be at most 72 bytes long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{}
			err := u.SetPassword(tt.raw)

			vErr, ok := IsValidation(err)
			require.True(t, ok)
			assert.Equal(t, []string{tt.msg}, vErr.Messages)
			assert.False(t, u.Password.isSet())
		})
	}
}

func TestUser_Authenticate_WithoutPassword(t *testing.T) {
	u := &User{Username: "nobody"}
	assert.False(t, u.Authenticate(""))
}

func TestUser_PasswordHash_AlwaysFails(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("secret123"))

	hash, err := u.PasswordHash()
	assert.ErrorIs(t, err, ErrPasswordHashAccess)
	assert.Empty(t, hash)
}

func TestPasswordDigest_NeverRendered(t *testing.T) {
	u := &User{ID: "id-1", Username: "alice"}
	require.NoError(t, u.SetPassword("secret123"))

	_, err := json.Marshal(u)
	assert.ErrorIs(t, err, ErrPasswordHashAccess)

	_, err = u.Password.MarshalText()
	assert.ErrorIs(t, err, ErrPasswordHashAccess)

	assert.Equal(t, "[REDACTED]", fmt.Sprint(u.Password))
	assert.NotContains(t, fmt.Sprintf("%+v", u), "$2a$")
	assert.NotContains(t, fmt.Sprintf("%#v", u), "$2a$")
}

func TestPasswordDigest_Scan(t *testing.T) {
	var p PasswordDigest

	require.NoError(t, p.Scan("hash"))
	assert.Equal(t, "hash", p.hash)

	require.NoError(t, p.Scan([]byte("bytes")))
	assert.Equal(t, "bytes", p.hash)

	require.NoError(t, p.Scan(nil))
	assert.False(t, p.isSet())

	assert.Error(t, p.Scan(42))
}
