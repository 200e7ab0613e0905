package match_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulai-app/soulai/internal/domain"
	svcErr "github.com/soulai-app/soulai/internal/errors"
	"github.com/soulai-app/soulai/internal/match"
)

func deck(ids ...string) []domain.Profile {
	profiles := make([]domain.Profile, 0, len(ids))
	for _, id := range ids {
		profiles = append(profiles, domain.Profile{ID: id, Name: "p" + id})
	}
	return profiles
}

// alwaysMatch / neverMatch force the Bernoulli draw.
func alwaysMatch() *match.Engine { return match.NewEngine(1.0, rand.New(rand.NewSource(1))) }
func neverMatch() *match.Engine  { return match.NewEngine(0.0, rand.New(rand.NewSource(1))) }

func TestCursorStrictlyIncreases(t *testing.T) {
	e := neverMatch()
	e.BeginDiscovery(deck("a", "b", "c"))

	seen := map[string]bool{}
	for {
		candidate, ok := e.CurrentCandidate()
		if !ok {
			break
		}
		require.False(t, seen[candidate.ID], "candidate %s revisited", candidate.ID)
		seen[candidate.ID] = true
		before := e.Cursor()
		e.Pass()
		assert.Greater(t, e.Cursor(), before)
	}
	assert.Len(t, seen, 3)

	// exhausted deck stays empty
	_, ok := e.CurrentCandidate()
	assert.False(t, ok)
}

func TestLikeConsumesSkippedCandidatesUpToTarget(t *testing.T) {
	e := alwaysMatch()
	e.BeginDiscovery(deck("a", "b", "c"))
	e.Excluded = func(id string) bool { return id == "a" }

	// "a" is hidden, so the current candidate is "b"; liking it moves the
	// cursor past both.
	candidate, ok := e.CurrentCandidate()
	require.True(t, ok)
	require.Equal(t, "b", candidate.ID)

	e.Like(candidate)
	assert.Equal(t, 2, e.Cursor())

	next, ok := e.CurrentCandidate()
	require.True(t, ok)
	assert.Equal(t, "c", next.ID)
}

func TestLikeUnknownProfileExhaustsDeck(t *testing.T) {
	e := alwaysMatch()
	e.BeginDiscovery(deck("a", "b"))

	e.Like(domain.Profile{ID: "ghost"})
	_, ok := e.CurrentCandidate()
	assert.False(t, ok)
}

func TestLikeCreatesMatchIffMatched(t *testing.T) {
	e := alwaysMatch()
	e.BeginDiscovery(deck("a", "b"))

	candidate, ok := e.CurrentCandidate()
	require.True(t, ok)

	out := e.Like(candidate)
	require.True(t, out.Matched)
	assert.Equal(t, "a", out.Match.ProfileID)
	assert.NotEmpty(t, out.Match.ID)
	assert.Equal(t, 1, e.Cursor())
	assert.Len(t, e.Matches(), 1)

	miss := neverMatch()
	miss.BeginDiscovery(deck("a"))
	out = miss.Like(deck("a")[0])
	assert.False(t, out.Matched)
	assert.Empty(t, miss.Matches())
}

func TestAtMostOneMatchPerProfile(t *testing.T) {
	e := alwaysMatch()
	e.BeginDiscovery(deck("a"))

	first := e.Like(deck("a")[0])
	second := e.Like(deck("a")[0])

	require.True(t, second.Matched)
	assert.Equal(t, first.Match.ID, second.Match.ID)
	assert.Len(t, e.Matches(), 1)
}

func TestMatchesMostRecentFirst(t *testing.T) {
	e := alwaysMatch()
	e.BeginDiscovery(deck("a", "b"))

	e.Like(deck("a")[0])
	e.Like(deck("b")[0])

	matches := e.Matches()
	require.Len(t, matches, 2)
	assert.Equal(t, "b", matches[0].ProfileID)
	assert.Equal(t, "a", matches[1].ProfileID)
}

func TestExcludedCandidatesAreSkippedNotConsumed(t *testing.T) {
	e := neverMatch()
	e.BeginDiscovery(deck("a", "b"))

	blocked := map[string]bool{"a": true}
	e.Excluded = func(id string) bool { return blocked[id] }

	candidate, ok := e.CurrentCandidate()
	require.True(t, ok)
	assert.Equal(t, "b", candidate.ID)
}

func TestTouchLastMessagePolicy(t *testing.T) {
	e := alwaysMatch()
	e.BeginDiscovery(deck("a"))
	out := e.Like(deck("a")[0])

	at := time.Now().Add(time.Minute)
	e.Touch(out.Match.ID, "hello", at)
	m, err := e.Get(out.Match.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", m.LastMessage)

	// image-only refresh keeps the cached text
	later := at.Add(time.Minute)
	e.Touch(out.Match.ID, "", later)
	m, _ = e.Get(out.Match.ID)
	assert.Equal(t, "hello", m.LastMessage)
	assert.Equal(t, later, m.Timestamp)
}

func TestRemoveByProfile(t *testing.T) {
	e := alwaysMatch()
	e.BeginDiscovery(deck("a", "b"))
	matched := e.Like(deck("a")[0])
	e.Like(deck("b")[0])

	removed := e.RemoveByProfile("a")
	require.Equal(t, []string{matched.Match.ID}, removed)
	assert.Len(t, e.Matches(), 1)

	_, err := e.Get(matched.Match.ID)
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
}

func TestRestore(t *testing.T) {
	e := neverMatch()
	e.Restore([]domain.Match{{ID: "m1", ProfileID: "a"}})

	m, err := e.Get("m1")
	require.NoError(t, err)
	assert.Equal(t, "a", m.ProfileID)
}
