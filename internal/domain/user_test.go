package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid input", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("user@example.com", "a strong password")
		require.NoError(t, err)
		assert.NotEqual(t, "", user.ID.String())
		assert.Equal(t, "user@example.com", user.Email)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("email is trimmed", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("  padded@example.com  ", "a strong password")
		require.NoError(t, err)
		assert.Equal(t, "padded@example.com", user.Email)
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			name     string
			email    string
			password string
			wantErr  error
		}{
			{"empty email", "", "a strong password", ErrEmptyEmail},
			{"invalid email", "not-an-email", "a strong password", ErrInvalidEmail},
			{"empty password", "user@example.com", "", ErrEmptyPassword},
			{"short password", "user@example.com", "short", ErrPasswordTooShort},
			{"long password", "user@example.com", strings.Repeat("x", 73), ErrPasswordTooLong},
		}
		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				_, err := NewUser(tc.email, tc.password)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	t.Run("stored user carries only the hash", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("user@example.com", "a strong password")
		require.NoError(t, err)

		user.Password = ""
		user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
		assert.NoError(t, user.Validate())
	})

	t.Run("neither password nor hash", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("user@example.com", "a strong password")
		require.NoError(t, err)

		user.Password = ""
		user.HashedPassword = ""
		assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
	})
}
