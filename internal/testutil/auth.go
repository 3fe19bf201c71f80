package testutil

import (
	"testing"
	"time"

	"github.com/localnerve/shopdb/internal/config"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store"
)

// Password is the clear password of users made by CreateUser.
const Password = "Passw0rd!"

// Config returns a configuration suitable for handler tests.
func Config() *config.Config {
	return &config.Config{
		Port:              "5000",
		AppEnv:            "test",
		LogLevel:          "warn",
		DBType:            "sqlite",
		DBDatabase:        ":memory:",
		DBConnectionLimit: 1,
		AccessTokenSecret: "test-secret",
		AccessTokenTTL:    time.Minute,
	}
}

// Token issues an access token for user holding roleName.
func Token(t testing.TB, auth *services.AuthService, user *models.User, roleName string) string {
	t.Helper()
	token, err := auth.IssueToken(models.Principal{
		ID:        user.UserID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      roleName,
	})
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// Account creates a user holding roleName and returns it with a valid token.
func Account(t testing.TB, st store.Store, auth *services.AuthService, email, roleName string) (*models.User, string) {
	t.Helper()
	user := CreateUser(t, st, email, roleName)
	return user, Token(t, auth, user, roleName)
}
