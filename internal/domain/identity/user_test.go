package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		hash     string
		wantErr  bool
	}{
		{"valid", "Alice", "alice@example.com", "$2a$10$hash", false},
		{"email normalized", "Alice", "  ALICE@Example.COM ", "$2a$10$hash", false},
		{"empty name", "  ", "alice@example.com", "$2a$10$hash", true},
		{"bad email", "Alice", "not-an-email", "$2a$10$hash", true},
		{"empty hash", "Alice", "alice@example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.userName, tt.email, tt.hash)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice@example.com", user.Email)
			assert.True(t, user.Active)
		})
	}
}

func TestUserToggleActive(t *testing.T) {
	user, err := NewUser("Bob", "bob@example.com", "$2a$10$hash")
	require.NoError(t, err)

	assert.False(t, user.ToggleActive())
	assert.False(t, user.Active)
	assert.True(t, user.ToggleActive())
}

func TestUserSetPasswordHash(t *testing.T) {
	user, err := NewUser("Bob", "bob@example.com", "$2a$10$old")
	require.NoError(t, err)

	require.NoError(t, user.SetPasswordHash("$2a$10$new"))
	assert.Equal(t, "$2a$10$new", user.PasswordHash)

	assert.Error(t, user.SetPasswordHash(""))
}
