package service

import (
	"context"
	"testing"

	"golang-stock-advisor/internal/dto"
	"golang-stock-advisor/internal/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRequest() dto.SignupRequest {
	return dto.SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct-horse",
	}
}

func TestSignupAndLogin(t *testing.T) {
	cfg := testConfig()
	users := &fakeUserRepo{}
	svc := NewAuthService(cfg, testLogger(t), users)

	userID, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	require.NotZero(t, userID)

	// The stored password must be a hash, never the plaintext.
	stored := users.users[userID]
	assert.NotEqual(t, "correct-horse", stored.Password)

	token, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(cfg.Auth.JWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(userID), claims["sub"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := NewAuthService(testConfig(), testLogger(t), &fakeUserRepo{})

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), signupRequest())
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(testConfig(), testLogger(t), users)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetDashboard(t *testing.T) {
	users := &fakeUserRepo{users: map[uint]*model.User{
		5: {ID: 5, FirstName: "Grace", Email: "g@example.com"},
	}}
	svc := NewAuthService(testConfig(), testLogger(t), users)

	resp, err := svc.GetDashboard(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Grace", resp.FirstName)

	_, err = svc.GetDashboard(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
