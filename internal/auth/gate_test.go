package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/soulai-app/soulai/internal/db"
	"github.com/soulai-app/soulai/internal/domain"
	svcErr "github.com/soulai-app/soulai/internal/errors"
)

func setupGate(t *testing.T) *Gate {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&db.User{}))

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, database.Create(&db.User{
		Username:     "alex",
		PasswordHash: string(hash),
		Role:         string(domain.RoleUser),
	}).Error)

	return NewGate(database)
}

func TestLogin(t *testing.T) {
	gate := setupGate(t)

	session, err := gate.Login(context.Background(), "alex", "password")
	require.NoError(t, err)
	assert.Equal(t, "alex", session.Username)
	assert.Equal(t, domain.RoleUser, session.Role)
	assert.True(t, session.IsNew)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	gate := setupGate(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alex", "hunter2"},
		{"unknown user", "nobody", "password"},
		{"empty username", "", "password"},
		{"empty password", "alex", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gate.Login(context.Background(), tc.username, tc.password)
			assert.ErrorIs(t, err, svcErr.ErrUnauthenticated)
		})
	}
}

func TestCompleteOnboarding(t *testing.T) {
	gate := setupGate(t)

	require.NoError(t, gate.CompleteOnboarding(context.Background(), "alex"))

	session, err := gate.Login(context.Background(), "alex", "password")
	require.NoError(t, err)
	assert.False(t, session.IsNew)
}

func TestCompleteOnboardingUnknownUser(t *testing.T) {
	gate := setupGate(t)

	err := gate.CompleteOnboarding(context.Background(), "ghost")
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
}
