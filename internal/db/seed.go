package db

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soulai-app/soulai/internal/catalog"
	"github.com/soulai-app/soulai/internal/snapshot"
)

// SeedTestData resets the database and populates it with demo accounts and
// the default profile catalog.
//
// Behavior:
//  1. Clears `users` and `snapshots`.
//  2. Creates two accounts: alex/password (user), admin/admin (admin).
//  3. Writes the built-in catalog as the initial catalog snapshot; the
//     other collections start absent and load as empty.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(database *gorm.DB) error {
	if err := database.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	if err := database.Exec("DELETE FROM snapshots").Error; err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}

	switch database.Dialector.Name() {
	case "mysql":
		database.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
	case "sqlite":
		database.Exec("DELETE FROM sqlite_sequence WHERE name = 'users'")
	}

	log.Println("Cleared existing data")

	accounts := []struct {
		username string
		password string
		role     string
	}{
		{"alex", "password", "user"},
		{"admin", "admin", "admin"},
	}

	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user := User{
			Username:     a.username,
			PasswordHash: string(hash),
			Role:         a.role,
			Onboarded:    true,
			LastLoginAt:  time.Now(),
		}
		if err := database.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", a.username, err)
		}
	}
	log.Printf("Seeded %d accounts.", len(accounts))

	record := snapshot.CatalogRecord{
		Self:     catalog.DefaultSelf(),
		Profiles: catalog.DefaultProfiles(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	row := Snapshot{Key: snapshot.KeyCatalog, Data: data}
	if err := database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to seed catalog snapshot: %w", err)
	}
	log.Printf("Seeded catalog snapshot with %d profiles.", len(record.Profiles))

	return nil
}
