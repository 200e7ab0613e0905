// Package snapshot defines the key-value persistence boundary. The whole
// externally-visible state is reconstructable from the four records below;
// every mutating intent rewrites the affected records.
package snapshot

import (
	"context"
	"errors"

	"github.com/soulai-app/soulai/internal/domain"
)

// Fixed record keys, one per logical collection.
const (
	KeyCatalog = "soulai:catalog"
	KeyMatches = "soulai:matches"
	KeyReports = "soulai:reports"
	KeyBlocked = "soulai:blocked"
)

// ErrNotFound is returned by Load when no record exists under the key.
var ErrNotFound = errors.New("snapshot not found")

// Store is an opaque serialized-record store. Implementations: the GORM
// snapshots table and the Redis cache.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// ChatRecord is the combined matches+messages collection persisted under
// KeyMatches, mirroring the single record the client historically kept.
type ChatRecord struct {
	Matches  []domain.Match              `json:"matches"`
	Messages map[string][]domain.Message `json:"messages"`
}

// CatalogRecord is the profile catalog collection under KeyCatalog.
type CatalogRecord struct {
	Self     domain.Profile   `json:"self"`
	Profiles []domain.Profile `json:"profiles"`
}

// ReportsRecord is the report log under KeyReports.
type ReportsRecord struct {
	Reports []domain.Report `json:"reports"`
}

// BlockedRecord is the blocked-id set under KeyBlocked.
type BlockedRecord struct {
	IDs []string `json:"ids"`
}
