package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soulai-app/soulai/internal/db"
	"github.com/soulai-app/soulai/internal/snapshot"
)

// SnapshotRepository persists opaque collection records in the snapshots
// table. It is the durable (SQLite/MySQL) implementation of snapshot.Store.
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a repository bound to the given DB connection.
func NewSnapshotRepository(database *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: database}
}

// Load returns the record stored under key, or snapshot.ErrNotFound.
func (r *SnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var row db.Snapshot
	err := r.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Data, nil
}

// Save rewrites the record under key.
//
// Behavior:
//   - If the key exists, the row is overwritten with the new data.
//   - If it doesn't, a new row is inserted.
//   - The primary key on `key` gives the overwrite guarantee.
func (r *SnapshotRepository) Save(ctx context.Context, key string, data []byte) error {
	row := db.Snapshot{Key: key, Data: data}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
}
