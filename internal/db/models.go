package db

import (
	"time"
)

// User is a login account for the trivial auth gate. Passwords are bcrypt
// hashed; Role decides whether the admin view is reachable.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:16;not null;default:user"`
	Onboarded    bool   `gorm:"default:false"`
	LastLoginAt  time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Snapshot is one opaque serialized record per logical collection, keyed by
// the fixed snapshot keys. The row is rewritten wholesale on every save.
type Snapshot struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Data      []byte    `gorm:"type:blob"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
