// Package conversation maintains per-match message threads and the
// simulated counterpart replies.
package conversation

import (
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soulai-app/soulai/internal/domain"
	svcErr "github.com/soulai-app/soulai/internal/errors"
)

// Content is the payload of an outgoing message. At least one of Text and
// ImageURL must be set.
type Content struct {
	Text     string
	ImageURL string
}

// Store holds message threads keyed by match id. Appends within a thread
// are strictly ordered by submission; the delayed counterpart reply never
// overtakes the message that triggered it.
//
// The store has its own mutex because reply timers fire on timer
// goroutines. The lock is never held while invoking the OnReply hook, so
// the hook may take the controller's intent lock safely.
type Store struct {
	mu      sync.Mutex
	threads map[string][]domain.Message
	timers  map[string]*time.Timer
	delay   time.Duration
	rng     *rand.Rand
	log     *slog.Logger
	closed  bool

	// OnReply is invoked after a counterpart reply has been appended.
	// The controller uses it to refresh the match and persist.
	OnReply func(matchID string, reply domain.Message)
}

// NewStore creates a conversation store with the given reply latency.
func NewStore(delay time.Duration, rng *rand.Rand, log *slog.Logger) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Store{
		threads: make(map[string][]domain.Message),
		timers:  make(map[string]*time.Timer),
		delay:   delay,
		rng:     rng,
		log:     log,
	}
}

// SendMessage appends a message from the local user to the match's thread
// and schedules the simulated counterpart reply.
//
// Behavior:
//   - Empty content (no text, no image) fails with ErrInvalidMessage and
//     produces no state change.
//   - A pending reply timer for the match is superseded by the new send.
func (s *Store) SendMessage(matchID string, content Content) (domain.Message, error) {
	text := strings.TrimSpace(content.Text)
	if text == "" && content.ImageURL == "" {
		return domain.Message{}, svcErr.ErrInvalidMessage
	}

	msg := domain.Message{
		ID:        uuid.NewString(),
		SenderID:  domain.SenderMe,
		Text:      text,
		ImageURL:  content.ImageURL,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Message{}, svcErr.Wrap(svcErr.ErrNotFound, "store closed")
	}

	s.threads[matchID] = append(s.threads[matchID], msg)

	if t, ok := s.timers[matchID]; ok {
		t.Stop()
	}
	s.timers[matchID] = time.AfterFunc(s.delay, func() { s.deliverReply(matchID) })

	return msg, nil
}

// History returns the match's thread in insertion order.
func (s *Store) History(matchID string) []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread := s.threads[matchID]
	out := make([]domain.Message, len(thread))
	copy(out, thread)
	return out
}

// CancelReply cancels a pending counterpart reply for the match, keeping
// the thread. Called when the user navigates away from the chat.
func (s *Store) CancelReply(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(matchID)
}

// Drop cancels any pending reply and deletes the thread. Called on ban so
// no ghost reply lands in a thread whose profile no longer exists.
func (s *Store) Drop(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(matchID)
	delete(s.threads, matchID)
}

// Close cancels every pending reply. Further sends are rejected.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.timers {
		s.cancelLocked(id)
	}
	s.closed = true
}

// Threads returns a deep copy of all threads for persistence.
func (s *Store) Threads() map[string][]domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]domain.Message, len(s.threads))
	for id, thread := range s.threads {
		msgs := make([]domain.Message, len(thread))
		copy(msgs, thread)
		out[id] = msgs
	}
	return out
}

// Restore replaces all threads from a persisted record.
func (s *Store) Restore(threads map[string][]domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads = make(map[string][]domain.Message, len(threads))
	for id, thread := range threads {
		msgs := make([]domain.Message, len(thread))
		copy(msgs, thread)
		s.threads[id] = msgs
	}
}

func (s *Store) cancelLocked(matchID string) {
	if t, ok := s.timers[matchID]; ok {
		t.Stop()
		delete(s.timers, matchID)
	}
}

// deliverReply runs on the timer goroutine. The timer-map entry doubles as
// the liveness marker: CancelReply/Drop remove it, so a canceled reply is
// never delivered even if the timer already fired.
func (s *Store) deliverReply(matchID string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if _, ok := s.timers[matchID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.timers, matchID)

	reply := domain.Message{
		ID:        uuid.NewString(),
		SenderID:  domain.SenderThem,
		Text:      defaultReplies[s.rng.Intn(len(defaultReplies))],
		Timestamp: time.Now(),
	}
	s.threads[matchID] = append(s.threads[matchID], reply)
	hook := s.OnReply
	s.mu.Unlock()

	if hook != nil {
		hook(matchID, reply)
	}
}
