package services

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/socialpicture/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		Fullname: "Alice Example",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleUser, resp.User.Role)

	login, err := env.auth.Login(models.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(login.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, string(models.RoleUser), claims.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	_, err := env.auth.Register(models.RegisterRequest{
		Username: "alice",
		Email:    "new@example.com",
		Password: "password123",
	})
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	_, err := env.auth.Register(models.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	_, err := env.auth.Login(models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(models.LoginRequest{Username: "ghost", Password: "password123"})
	assert.True(t, errors.Is(err, ErrUnauthorized))
}
