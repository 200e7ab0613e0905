// Package controller owns the interaction state machine: session, active
// view, discovery, matching, chat, and moderation are driven through one
// Controller so every user intent is applied atomically.
package controller

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/soulai-app/soulai/internal/assist"
	"github.com/soulai-app/soulai/internal/auth"
	"github.com/soulai-app/soulai/internal/catalog"
	"github.com/soulai-app/soulai/internal/config"
	"github.com/soulai-app/soulai/internal/conversation"
	"github.com/soulai-app/soulai/internal/domain"
	svcErr "github.com/soulai-app/soulai/internal/errors"
	"github.com/soulai-app/soulai/internal/match"
	"github.com/soulai-app/soulai/internal/moderation"
	"github.com/soulai-app/soulai/internal/snapshot"
)

// Assistant is the slice of the assist client the controller needs.
type Assistant interface {
	GenerateIcebreakers(ctx context.Context, viewer, target domain.Profile) []string
	GenerateAdvice(ctx context.Context, profile domain.Profile) string
	GenerateCompatibility(ctx context.Context, p1, p2 domain.Profile) assist.Compatibility
}

// Dependencies carries everything a Controller is built from.
type Dependencies struct {
	Config    *config.Config
	Gate      *auth.Gate
	Snapshots snapshot.Store
	Assist    Assistant
	// Rand is injected by tests to force match outcomes; nil means
	// time-seeded.
	Rand   *rand.Rand
	Logger *slog.Logger
}

// State is the render-ready view selector returned to the transport layer.
type State struct {
	LoggedIn      bool            `json:"loggedIn"`
	Session       auth.Session    `json:"session"`
	View          domain.View     `json:"view"`
	ActiveMatchID string          `json:"activeMatchId,omitempty"`
	Celebration   *domain.Profile `json:"celebration,omitempty"`
}

// LikeResult reports what a like produced.
type LikeResult struct {
	Matched bool           `json:"matched"`
	Match   domain.Match   `json:"match"`
	Profile domain.Profile `json:"profile"`
}

// MatchView joins a match with its counterpart profile for list rendering.
type MatchView struct {
	Match   domain.Match   `json:"match"`
	Profile domain.Profile `json:"profile"`
}

// Controller applies user intents one at a time under a single lock. The
// only concurrency inside is the reply timers, which re-enter through the
// conversation store's OnReply hook.
type Controller struct {
	mu sync.Mutex

	session       *auth.Session
	view          domain.View
	activeMatchID string
	celebration   *domain.Profile

	catalog *catalog.Catalog
	engine  *match.Engine
	conv    *conversation.Store
	mod     *moderation.Store

	gate      *auth.Gate
	snapshots snapshot.Store
	assist    Assistant
	log       *slog.Logger
}

type blockListFunc func(id string) bool

func (f blockListFunc) IsBlocked(id string) bool { return f(id) }

// New wires the collections together. Call Load before serving.
func New(deps Dependencies) *Controller {
	c := &Controller{
		view:      domain.ViewDiscover,
		gate:      deps.Gate,
		snapshots: deps.Snapshots,
		assist:    deps.Assist,
		log:       deps.Logger,
	}

	// The catalog consults the moderation store through a closure so the
	// two can reference each other.
	c.catalog = catalog.New(blockListFunc(func(id string) bool {
		return c.mod.IsBlocked(id)
	}), deps.Logger)
	// The engine draws under the intent lock while the conversation store
	// draws on timer goroutines, and rand.Rand is not goroutine-safe. An
	// injected source seeds two independent ones instead of being shared.
	var engineRng, convRng *rand.Rand
	if deps.Rand != nil {
		engineRng = rand.New(rand.NewSource(deps.Rand.Int63()))
		convRng = rand.New(rand.NewSource(deps.Rand.Int63()))
	}
	c.engine = match.NewEngine(deps.Config.Match.Probability, engineRng)
	c.conv = conversation.NewStore(deps.Config.Chat.ReplyDelay, convRng, deps.Logger)
	c.mod = moderation.NewStore(moderation.Dependencies{
		Catalog: c.catalog,
		Matches: c.engine,
		Threads: c.conv,
		Logger:  deps.Logger,
	})

	c.engine.Excluded = c.mod.IsBlocked
	c.conv.OnReply = c.handleReply
	return c
}

// Load restores all persisted collections. Missing records mean first run;
// malformed records are logged and replaced by defaults. Load never fails
// startup.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.restore(ctx, snapshot.KeyBlocked, c.mod.RestoreBlocked)
	c.restore(ctx, snapshot.KeyReports, c.mod.RestoreReports)
	c.restore(ctx, snapshot.KeyCatalog, c.catalog.Restore)
	c.restore(ctx, snapshot.KeyMatches, func(data []byte) error {
		var record snapshot.ChatRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return svcErr.Wrap(svcErr.ErrPersistenceLoad, "chat: %v", err)
		}
		c.engine.Restore(record.Matches)
		c.conv.Restore(record.Messages)
		return nil
	})
}

func (c *Controller) restore(ctx context.Context, key string, apply func([]byte) error) {
	data, err := c.snapshots.Load(ctx, key)
	if svcErr.Is(err, snapshot.ErrNotFound) {
		return
	}
	if err != nil {
		c.log.Warn("snapshot load failed", "key", key, "err", err)
		return
	}
	if err := apply(data); err != nil {
		c.log.Warn("snapshot restore failed, using defaults", "key", key, "err", err)
	}
}

// Login authenticates and enters the discover view with a fresh deck.
func (c *Controller) Login(ctx context.Context, username, password string) (auth.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.gate.Login(ctx, username, password)
	if err != nil {
		return auth.Session{}, err
	}

	c.session = &session
	c.view = domain.ViewDiscover
	c.activeMatchID = ""
	c.celebration = nil
	c.engine.BeginDiscovery(c.catalog.List())

	c.log.Info("logged in", "username", session.Username, "role", string(session.Role))
	return session, nil
}

// Logout persists, cancels every pending reply, and clears the session.
// Threads and matches survive for the next login.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return
	}
	c.persist(ctx)
	for _, m := range c.engine.Matches() {
		c.conv.CancelReply(m.ID)
	}

	c.log.Info("logged out", "username", c.session.Username)
	c.session = nil
	c.view = domain.ViewDiscover
	c.activeMatchID = ""
	c.celebration = nil
}

// Navigate switches the active view. The chat view is entered through
// SelectChat instead, since it needs a match id.
func (c *Controller) Navigate(view domain.View) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return err
	}
	if !domain.ValidView(view) {
		return svcErr.Wrap(svcErr.ErrInvalidArgument, "unknown view %q", view)
	}
	if view == domain.ViewChat {
		return svcErr.Wrap(svcErr.ErrInvalidArgument, "chat view requires a match; use SelectChat")
	}
	if view == domain.ViewAdmin && c.session.Role != domain.RoleAdmin {
		return svcErr.Wrap(svcErr.ErrForbidden, "admin view requires the admin role")
	}

	c.leaveChatLocked()
	c.celebration = nil
	c.view = view
	return nil
}

// SelectChat opens the chat view for a match. Stale ids (banned or never
// existed) report ErrNotFound.
func (c *Controller) SelectChat(matchID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return err
	}
	m, err := c.engine.Get(matchID)
	if err != nil {
		return err
	}
	if _, err := c.catalog.Get(m.ProfileID); err != nil {
		return err
	}

	c.leaveChatLocked()
	c.view = domain.ViewChat
	c.activeMatchID = matchID
	c.celebration = nil
	return nil
}

// Back leaves the chat view for the match list, discarding the pending
// counterpart reply of the conversation being left.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return err
	}
	if c.view != domain.ViewChat {
		return nil
	}
	c.leaveChatLocked()
	c.view = domain.ViewMatches
	return nil
}

// leaveChatLocked clears the active chat, canceling its pending reply.
func (c *Controller) leaveChatLocked() {
	if c.activeMatchID != "" {
		c.conv.CancelReply(c.activeMatchID)
		c.activeMatchID = ""
	}
}

// CurrentCandidate returns the profile under the discovery cursor, or false
// when the deck is exhausted.
func (c *Controller) CurrentCandidate() (domain.Profile, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return domain.Profile{}, false, err
	}
	p, ok := c.engine.CurrentCandidate()
	return p, ok, nil
}

// Like likes the current candidate and reports whether it matched. A match
// raises the celebration overlay until dismissed or superseded.
func (c *Controller) Like(ctx context.Context) (LikeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return LikeResult{}, err
	}
	candidate, ok := c.engine.CurrentCandidate()
	if !ok {
		return LikeResult{}, svcErr.Wrap(svcErr.ErrNotFound, "no profiles left to like")
	}

	outcome := c.engine.Like(candidate)
	if outcome.Matched {
		p := candidate
		c.celebration = &p
		c.log.Info("new match", "profile", candidate.ID, "match", outcome.Match.ID)
	}
	c.persist(ctx)

	return LikeResult{Matched: outcome.Matched, Match: outcome.Match, Profile: candidate}, nil
}

// Pass skips the current candidate. Passing an empty deck is a no-op.
func (c *Controller) Pass() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return err
	}
	c.engine.Pass()
	return nil
}

// Matches returns the match list joined with profiles, most recent first.
// Matches whose profile has been blocked are hidden.
func (c *Controller) Matches() ([]MatchView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return nil, err
	}
	var out []MatchView
	for _, m := range c.engine.Matches() {
		p, err := c.catalog.Get(m.ProfileID)
		if err != nil {
			continue
		}
		out = append(out, MatchView{Match: m, Profile: p})
	}
	return out, nil
}

// SendMessage appends a message to the match's thread, refreshes the match
// list entry, and schedules the simulated reply.
func (c *Controller) SendMessage(ctx context.Context, matchID string, content conversation.Content) (domain.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return domain.Message{}, err
	}
	if _, err := c.engine.Get(matchID); err != nil {
		return domain.Message{}, err
	}

	msg, err := c.conv.SendMessage(matchID, content)
	if err != nil {
		return domain.Message{}, err
	}
	c.engine.Touch(matchID, msg.Text, msg.Timestamp)
	c.persist(ctx)
	return msg, nil
}

// History returns the match's thread in order.
func (c *Controller) History(matchID string) ([]domain.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return nil, err
	}
	if _, err := c.engine.Get(matchID); err != nil {
		return nil, err
	}
	return c.conv.History(matchID), nil
}

// handleReply runs on a timer goroutine after a counterpart reply landed.
func (c *Controller) handleReply(matchID string, reply domain.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Touch(matchID, reply.Text, reply.Timestamp)
	c.persist(context.Background())
}

// Report files a report against the target, which also blocks it. If the
// reported profile backs the active chat, the view falls back to the match
// list.
func (c *Controller) Report(ctx context.Context, targetID string, reason domain.ReportReason) (domain.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return domain.Report{}, err
	}
	report, err := c.mod.File(c.catalog.Self().ID, targetID, reason)
	if err != nil {
		return domain.Report{}, err
	}

	c.dropVanishedStateLocked(targetID)
	c.persist(ctx)
	return report, nil
}

// Ban blocks the target and cascades removal through catalog, matches, and
// threads. Every report against the target resolves.
func (c *Controller) Ban(ctx context.Context, targetID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return err
	}
	c.mod.Ban(targetID)
	c.dropVanishedStateLocked(targetID)
	c.persist(ctx)
	return nil
}

// dropVanishedStateLocked fixes view state after targetID became invisible:
// an open chat with it closes, a celebration for it disappears.
func (c *Controller) dropVanishedStateLocked(targetID string) {
	if c.activeMatchID != "" {
		m, err := c.engine.Get(c.activeMatchID)
		if err != nil || m.ProfileID == targetID {
			c.leaveChatLocked()
			if c.view == domain.ViewChat {
				c.view = domain.ViewMatches
			}
		}
	}
	if c.celebration != nil && c.celebration.ID == targetID {
		c.celebration = nil
	}
}

// ResolveReport marks one report resolved without banning.
func (c *Controller) ResolveReport(ctx context.Context, reportID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return err
	}
	if err := c.mod.Resolve(reportID); err != nil {
		return err
	}
	c.persist(ctx)
	return nil
}

// Reports pages through the report queue, newest first.
func (c *Controller) Reports(pageToken *string, limit int) ([]domain.Report, *string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return nil, nil, err
	}
	return c.mod.Reports(pageToken, limit)
}

// Icebreakers generates chat openers for the match's counterpart. The lock
// is released for the duration of the external call; the match is
// re-validated afterwards in case a ban landed meanwhile.
func (c *Controller) Icebreakers(ctx context.Context, matchID string) ([]string, error) {
	self, target, err := c.matchProfiles(matchID)
	if err != nil {
		return nil, err
	}

	suggestions := c.assist.GenerateIcebreakers(ctx, self, target)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.engine.Get(matchID); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// Advice generates profile-coaching feedback for the user's own profile.
func (c *Controller) Advice(ctx context.Context) (string, error) {
	c.mu.Lock()
	if err := c.requireUser(); err != nil {
		c.mu.Unlock()
		return "", err
	}
	self := c.catalog.Self()
	c.mu.Unlock()

	return c.assist.GenerateAdvice(ctx, self), nil
}

// CompatibilityCheck scores the user against the match's counterpart.
func (c *Controller) CompatibilityCheck(ctx context.Context, matchID string) (assist.Compatibility, error) {
	self, target, err := c.matchProfiles(matchID)
	if err != nil {
		return assist.Compatibility{}, err
	}

	result := c.assist.GenerateCompatibility(ctx, self, target)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.engine.Get(matchID); err != nil {
		return assist.Compatibility{}, err
	}
	return result, nil
}

// matchProfiles resolves the user's profile and the match's counterpart
// under the lock, then releases it for the caller's external round trip.
func (c *Controller) matchProfiles(matchID string) (self, target domain.Profile, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err = c.requireUser(); err != nil {
		return
	}
	m, err := c.engine.Get(matchID)
	if err != nil {
		return
	}
	target, err = c.catalog.Get(m.ProfileID)
	if err != nil {
		return
	}
	self = c.catalog.Self()
	return
}

// DismissCelebration acknowledges the match overlay.
func (c *Controller) DismissCelebration() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.celebration = nil
}

// Profile returns the user's own profile.
func (c *Controller) Profile() (domain.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return domain.Profile{}, err
	}
	return c.catalog.Self(), nil
}

// UpdateProfile applies an edit to the user's own profile.
func (c *Controller) UpdateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return domain.Profile{}, err
	}
	c.catalog.UpdateSelf(p)
	c.persist(ctx)
	return c.catalog.Self(), nil
}

// CompleteOnboarding records that the logged-in account finished profile
// setup.
func (c *Controller) CompleteOnboarding(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireUser(); err != nil {
		return err
	}
	if err := c.gate.CompleteOnboarding(ctx, c.session.Username); err != nil {
		return err
	}
	c.session.IsNew = false
	return nil
}

// ViewState snapshots the current render state.
func (c *Controller) ViewState() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{
		View:          c.view,
		ActiveMatchID: c.activeMatchID,
		Celebration:   c.celebration,
	}
	if c.session != nil {
		state.LoggedIn = true
		state.Session = *c.session
	}
	return state
}

// Close persists and stops all reply timers. The controller is unusable
// afterwards.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.persist(ctx)
	c.conv.Close()
}

func (c *Controller) requireUser() error {
	if c.session == nil {
		return svcErr.Wrap(svcErr.ErrUnauthenticated, "not logged in")
	}
	return nil
}

func (c *Controller) requireAdmin() error {
	if err := c.requireUser(); err != nil {
		return err
	}
	if c.session.Role != domain.RoleAdmin {
		return svcErr.Wrap(svcErr.ErrForbidden, "admin role required")
	}
	return nil
}

// persist writes every collection. Persistence is best effort: a failed
// save is logged and the in-memory state remains authoritative.
func (c *Controller) persist(ctx context.Context) {
	save := func(key string, data []byte, err error) {
		if err == nil {
			err = c.snapshots.Save(ctx, key, data)
		}
		if err != nil {
			c.log.Warn("snapshot save failed", "key", key, "err", err)
		}
	}

	data, err := c.catalog.Snapshot()
	save(snapshot.KeyCatalog, data, err)

	data, err = json.Marshal(snapshot.ChatRecord{
		Matches:  c.engine.Matches(),
		Messages: c.conv.Threads(),
	})
	save(snapshot.KeyMatches, data, err)

	data, err = c.mod.SnapshotReports()
	save(snapshot.KeyReports, data, err)

	data, err = c.mod.SnapshotBlocked()
	save(snapshot.KeyBlocked, data, err)
}
