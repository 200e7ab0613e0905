// Package match implements like/pass outcomes, the discovery cursor, and
// the match list.
package match

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/soulai-app/soulai/internal/domain"
	svcErr "github.com/soulai-app/soulai/internal/errors"
)

// Outcome is the discriminated result of a like.
type Outcome struct {
	Matched bool
	Match   domain.Match
}

// Engine draws mutual-match outcomes and maintains the match set. The
// discovery deck is a snapshot of the catalog taken when discovery began;
// the cursor over it is monotonic and never revisits a profile.
type Engine struct {
	prob    float64
	rng     *rand.Rand
	deck    []domain.Profile
	cursor  int
	matches []domain.Match

	// Excluded hides profiles blocked after the deck snapshot was taken.
	// Skipped candidates are not consumed; the cursor only moves on
	// like/pass.
	Excluded func(id string) bool
}

// NewEngine creates an engine with the given match probability. The rand
// source is injected so tests can force outcomes deterministically.
func NewEngine(probability float64, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{prob: probability, rng: rng}
}

// BeginDiscovery starts a new catalog pass over the given profile list.
func (e *Engine) BeginDiscovery(profiles []domain.Profile) {
	e.deck = make([]domain.Profile, len(profiles))
	copy(e.deck, profiles)
	e.cursor = 0
}

// CurrentCandidate returns the next discoverable profile, or false when the
// cursor has exhausted the deck (empty state).
func (e *Engine) CurrentCandidate() (domain.Profile, bool) {
	for i := e.cursor; i < len(e.deck); i++ {
		if e.Excluded != nil && e.Excluded(e.deck[i].ID) {
			continue
		}
		return e.deck[i], true
	}
	return domain.Profile{}, false
}

// Like records a like on the target and draws the mutual-match outcome.
//
// Behavior:
//   - A fresh unique Match is created with probability prob and inserted
//     at the head of the match list (most-recent-first for rendering).
//   - A repeated like on an already-matched profile returns the existing
//     match; at most one Match per profile id exists.
//   - The cursor advances past the target either way.
func (e *Engine) Like(target domain.Profile) Outcome {
	e.advancePast(target.ID)

	if m, err := e.ByProfile(target.ID); err == nil {
		return Outcome{Matched: true, Match: m}
	}

	if e.rng.Float64() >= e.prob {
		return Outcome{Matched: false}
	}

	m := domain.Match{
		ID:        uuid.NewString(),
		ProfileID: target.ID,
		Timestamp: time.Now(),
	}
	e.matches = append([]domain.Match{m}, e.matches...)
	return Outcome{Matched: true, Match: m}
}

// advancePast moves the cursor just beyond the profile's deck position. A
// profile no longer ahead of the cursor exhausts the deck.
func (e *Engine) advancePast(profileID string) {
	for i := e.cursor; i < len(e.deck); i++ {
		if e.deck[i].ID == profileID {
			e.cursor = i + 1
			return
		}
	}
	e.cursor = len(e.deck)
}

// Pass advances discovery past the current candidate without creating state.
func (e *Engine) Pass() {
	if candidate, ok := e.CurrentCandidate(); ok {
		e.advancePast(candidate.ID)
	}
}

// Cursor exposes the discovery position.
func (e *Engine) Cursor() int { return e.cursor }

// Matches returns the match list, most recent first.
func (e *Engine) Matches() []domain.Match {
	out := make([]domain.Match, len(e.matches))
	copy(out, e.matches)
	return out
}

// Get returns the match with the given id.
func (e *Engine) Get(matchID string) (domain.Match, error) {
	for _, m := range e.matches {
		if m.ID == matchID {
			return m, nil
		}
	}
	return domain.Match{}, svcErr.Wrap(svcErr.ErrNotFound, "match %s", matchID)
}

// ByProfile returns the match referencing the given profile id.
func (e *Engine) ByProfile(profileID string) (domain.Match, error) {
	for _, m := range e.matches {
		if m.ProfileID == profileID {
			return m, nil
		}
	}
	return domain.Match{}, svcErr.Wrap(svcErr.ErrNotFound, "match for profile %s", profileID)
}

// Touch refreshes a match's activity timestamp and, when lastMessage is
// non-empty, the cached last-message text. Image-only sends pass "".
func (e *Engine) Touch(matchID, lastMessage string, at time.Time) {
	for i := range e.matches {
		if e.matches[i].ID == matchID {
			if lastMessage != "" {
				e.matches[i].LastMessage = lastMessage
			}
			e.matches[i].Timestamp = at
			return
		}
	}
}

// RemoveByProfile deletes all matches referencing the profile and returns
// the removed match ids, so the caller can drop the chat threads.
func (e *Engine) RemoveByProfile(profileID string) []string {
	var removed []string
	kept := e.matches[:0]
	for _, m := range e.matches {
		if m.ProfileID == profileID {
			removed = append(removed, m.ID)
			continue
		}
		kept = append(kept, m)
	}
	e.matches = kept
	return removed
}

// Restore replaces the match list from a persisted record.
func (e *Engine) Restore(matches []domain.Match) {
	e.matches = make([]domain.Match, len(matches))
	copy(e.matches, matches)
}
