package domain

import "time"

// Sender tags for messages. The app models a single local user ("me")
// chatting with one counterpart per match ("them").
const (
	SenderMe   = "me"
	SenderThem = "them"
)

// Match is a mutual-like relationship with one other profile. It opens a
// chat thread keyed by the match ID.
//
// LastMessage caches the latest text message for list rendering. Image-only
// messages refresh Timestamp but leave LastMessage untouched.
type Match struct {
	ID          string    `json:"id"`
	ProfileID   string    `json:"profileId"`
	LastMessage string    `json:"lastMessage,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Message belongs to exactly one match. At least one of Text and ImageURL is
// set. Threads are append-only and ordered by insertion.
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
