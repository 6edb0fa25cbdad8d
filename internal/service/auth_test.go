package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/testhelpers"
)

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := service.NewAuthService(db, "test-secret")

	t.Run("register returns a valid token", func(t *testing.T) {
		token, err := auth.Register("Ada", "ada@example.com", "password123", "ada")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := auth.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "ada", claims.Username)

		var user models.User
		require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
		assert.Equal(t, claims.UserID, user.ID)
		assert.NotEqual(t, "password123", user.PasswordHash)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := auth.Register("Ada Again", "ada@example.com", "password123", "ada2")
		assert.ErrorIs(t, err, service.ErrUserExists)
	})

	t.Run("login with correct password", func(t *testing.T) {
		token, err := auth.Login("ada@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := auth.Login("ada@example.com", "nope")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, err := auth.Login("nobody@example.com", "password123")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthServiceValidateToken(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := service.NewAuthService(db, "test-secret")

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := auth.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret rejected", func(t *testing.T) {
		other := service.NewAuthService(db, "other-secret")
		token, err := other.Register("Eve", "eve@example.com", "password123", "eve")
		require.NoError(t, err)

		_, err = auth.ValidateToken(token)
		assert.Error(t, err)
	})
}
