// Package auth implements the login gate in front of the app views.
package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/soulai-app/soulai/internal/db"
	"github.com/soulai-app/soulai/internal/domain"
	svcErr "github.com/soulai-app/soulai/internal/errors"
)

// Session describes a successful login.
type Session struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	// IsNew is true for accounts that have never completed onboarding.
	IsNew bool `json:"isNew"`
}

// Gate authenticates local accounts against the users table.
type Gate struct {
	db *gorm.DB
}

// NewGate returns a Gate bound to the given database handle.
func NewGate(database *gorm.DB) *Gate {
	return &Gate{db: database}
}

// Login verifies username and password.
//
// Behavior:
//   - Unknown usernames and wrong passwords both map to ErrUnauthenticated;
//     the caller cannot distinguish which check failed.
//   - A successful login stamps LastLoginAt.
func (g *Gate) Login(ctx context.Context, username, password string) (Session, error) {
	if username == "" || password == "" {
		return Session{}, svcErr.Wrap(svcErr.ErrUnauthenticated, "missing credentials")
	}

	var user db.User
	err := g.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, svcErr.Wrap(svcErr.ErrUnauthenticated, "invalid credentials")
	}
	if err != nil {
		return Session{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Session{}, svcErr.Wrap(svcErr.ErrUnauthenticated, "invalid credentials")
	}

	if err := g.db.WithContext(ctx).Model(&user).
		Update("last_login_at", time.Now()).Error; err != nil {
		return Session{}, err
	}

	return Session{
		Username: user.Username,
		Role:     domain.Role(user.Role),
		IsNew:    !user.Onboarded,
	}, nil
}

// CompleteOnboarding marks the account as having finished profile setup so
// later logins skip the onboarding flow.
func (g *Gate) CompleteOnboarding(ctx context.Context, username string) error {
	res := g.db.WithContext(ctx).Model(&db.User{}).
		Where("username = ?", username).
		Update("onboarded", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return svcErr.Wrap(svcErr.ErrNotFound, "user %q", username)
	}
	return nil
}
