package util

import (
	"testing"
	"time"

	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret-that-is-long-enough!"
	user := &model.User{
		ID:    "user-abc",
		Email: "dev@example.com",
		Role:  model.Learner,
	}

	token, err := GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-abc", claims.UserID)
	assert.Equal(t, "dev@example.com", claims.Email)
	assert.Equal(t, model.Learner, claims.Role)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{ID: "user-abc", Role: model.Learner}
	token, err := GenerateJWT(user, "secret-one", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-two")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	user := &model.User{ID: "user-abc", Role: model.Learner}
	token, err := GenerateJWT(user, "secret-one", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-one")
	assert.Error(t, err)
}
