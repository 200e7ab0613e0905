package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/soulai-app/soulai/internal/snapshot"
)

// AppContext holds shared dependencies (DB, snapshot store, Logger, etc.)
type AppContext struct {
	DB        *gorm.DB
	Snapshots snapshot.Store
	Logger    *slog.Logger
}

// New creates a new AppContext
func New(db *gorm.DB, snapshots snapshot.Store, logger *slog.Logger) *AppContext {
	return &AppContext{
		DB:        db,
		Snapshots: snapshots,
		Logger:    logger,
	}
}
