package catalog_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulai-app/soulai/internal/catalog"
	svcErr "github.com/soulai-app/soulai/internal/errors"
)

// blockSet is a trivial BlockList for tests.
type blockSet map[string]bool

func (b blockSet) IsBlocked(id string) bool { return b[id] }

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestListExcludesBlocked(t *testing.T) {
	blocks := blockSet{"2": true}
	c := catalog.New(blocks, discard())

	listed := c.List()
	require.Len(t, listed, len(catalog.DefaultProfiles())-1)
	for _, p := range listed {
		assert.NotEqual(t, "2", p.ID)
	}
}

func TestGetBlockedIsNotFound(t *testing.T) {
	c := catalog.New(blockSet{"3": true}, discard())

	_, err := c.Get("3")
	assert.ErrorIs(t, err, svcErr.ErrNotFound)

	p, err := c.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Sarah", p.Name)
}

func TestRemove(t *testing.T) {
	c := catalog.New(nil, discard())
	c.Remove("1")

	_, err := c.Get("1")
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
	assert.Len(t, c.List(), len(catalog.DefaultProfiles())-1)
}

func TestRestoreMalformedKeepsDefaults(t *testing.T) {
	c := catalog.New(nil, discard())

	err := c.Restore([]byte(`{not json`))
	assert.ErrorIs(t, err, svcErr.ErrPersistenceLoad)
	assert.Len(t, c.List(), len(catalog.DefaultProfiles()))
	assert.Equal(t, "me", c.Self().ID)
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := catalog.New(nil, discard())
	c.Remove("4")

	data, err := c.Snapshot()
	require.NoError(t, err)

	restored := catalog.New(nil, discard())
	require.NoError(t, restored.Restore(data))
	assert.Len(t, restored.List(), len(catalog.DefaultProfiles())-1)
	_, err = restored.Get("4")
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
}

func TestUpdateSelfKeepsID(t *testing.T) {
	c := catalog.New(nil, discard())

	edited := c.Self()
	edited.ID = "intruder"
	edited.Bio = "Updated bio"
	c.UpdateSelf(edited)

	assert.Equal(t, "me", c.Self().ID)
	assert.Equal(t, "Updated bio", c.Self().Bio)
}
