package catalog

import (
	"encoding/json"
	"log/slog"

	"github.com/soulai-app/soulai/internal/domain"
	svcErr "github.com/soulai-app/soulai/internal/errors"
)

// BlockList answers whether a profile id is blocked. Implemented by the
// moderation store; the catalog never sees blocked profiles' details.
type BlockList interface {
	IsBlocked(id string) bool
}

// Catalog owns the discoverable profile set and the current user's own
// profile. It is mutated only under the controller's intent lock.
type Catalog struct {
	self     domain.Profile
	profiles []domain.Profile
	blocks   BlockList
	log      *slog.Logger
}

// New creates a catalog pre-filled with the built-in default set.
func New(blocks BlockList, log *slog.Logger) *Catalog {
	return &Catalog{
		self:     DefaultSelf(),
		profiles: DefaultProfiles(),
		blocks:   blocks,
		log:      log,
	}
}

// Restore replaces catalog contents from a persisted record. A malformed
// record keeps the built-in defaults and reports ErrPersistenceLoad;
// callers log and continue.
func (c *Catalog) Restore(data []byte) error {
	var record struct {
		Self     domain.Profile   `json:"self"`
		Profiles []domain.Profile `json:"profiles"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return svcErr.Wrap(svcErr.ErrPersistenceLoad, "catalog: %v", err)
	}
	if record.Self.ID == "" || record.Profiles == nil {
		return svcErr.Wrap(svcErr.ErrPersistenceLoad, "catalog: incomplete record")
	}
	c.self = record.Self
	c.profiles = record.Profiles
	return nil
}

// Snapshot serializes the catalog for persistence.
func (c *Catalog) Snapshot() ([]byte, error) {
	return json.Marshal(struct {
		Self     domain.Profile   `json:"self"`
		Profiles []domain.Profile `json:"profiles"`
	}{Self: c.self, Profiles: c.profiles})
}

// List returns all profiles not excluded by the block list, in catalog order.
func (c *Catalog) List() []domain.Profile {
	out := make([]domain.Profile, 0, len(c.profiles))
	for _, p := range c.profiles {
		if c.blocks != nil && c.blocks.IsBlocked(p.ID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Get returns the profile with the given id. Blocked or removed profiles
// report ErrNotFound; they are invisible to every caller.
func (c *Catalog) Get(id string) (domain.Profile, error) {
	if c.blocks != nil && c.blocks.IsBlocked(id) {
		return domain.Profile{}, svcErr.Wrap(svcErr.ErrNotFound, "profile %s", id)
	}
	for _, p := range c.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Profile{}, svcErr.Wrap(svcErr.ErrNotFound, "profile %s", id)
}

// Remove deletes a profile from the backing collection. Used by ban.
func (c *Catalog) Remove(id string) {
	for i, p := range c.profiles {
		if p.ID == id {
			c.profiles = append(c.profiles[:i], c.profiles[i+1:]...)
			return
		}
	}
}

// Self returns the current user's profile.
func (c *Catalog) Self() domain.Profile { return c.self }

// UpdateSelf applies an explicit profile edit. The id is never changed.
func (c *Catalog) UpdateSelf(p domain.Profile) {
	p.ID = c.self.ID
	c.self = p
}
