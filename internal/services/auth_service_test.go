package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/hackmate/hackmate/internal/models"
)

func TestIssueToken(t *testing.T) {
	service := NewAuthService(nil, "test-secret", 24)

	user := models.NewUser("dev@example.com", "Dev")
	signed, err := service.IssueToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "dev@example.com", claims["email"])
	assert.Equal(t, models.RoleParticipant, claims["role"])
	assert.NotNil(t, claims["exp"])
}

func TestRegisterValidation(t *testing.T) {
	service := NewAuthService(nil, "test-secret", 24)

	t.Run("Missing credentials", func(t *testing.T) {
		_, _, err := service.Register("", "", "Dev", "")
		assert.Error(t, err)
	})

	t.Run("Short password", func(t *testing.T) {
		_, _, err := service.Register("dev@example.com", "short", "Dev", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})
}
