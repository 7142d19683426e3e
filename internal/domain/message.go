package domain

import "time"

// MessageKind distinguishes durable chat messages from ephemeral notices
type MessageKind string

const (
	KindChat   MessageKind = "chat"
	KindSystem MessageKind = "system"
)

// Reaction is one emoji attached to a message. Append-only, no dedup:
// the same participant may react with the same emoji more than once.
type Reaction struct {
	Emoji    string `json:"emoji"`
	Username string `json:"username"`
}

// Message represents a chat or system event as delivered to clients.
// ID is assigned by the room's hub, strictly increasing within the room's
// lifetime, and is the reference key for reactions and read receipts.
type Message struct {
	ID        int64       `json:"id"`
	RoomID    string      `json:"-"`
	User      string      `json:"user"`
	Text      string      `json:"text"`
	Time      string      `json:"time"`
	Avatar    string      `json:"avatar,omitempty"`
	Reactions []Reaction  `json:"reactions"`
	Kind      MessageKind `json:"type"`
	CreatedAt time.Time   `json:"-"`
}

// TimeFormat is the wall-clock format shown next to each message
const TimeFormat = "15:04:05"

// NewMessage creates a message stamped with the current time.
// The caller assigns the ID.
func NewMessage(roomID, user, text string, kind MessageKind) *Message {
	now := time.Now()
	return &Message{
		RoomID:    roomID,
		User:      user,
		Text:      text,
		Time:      now.Format(TimeFormat),
		Reactions: []Reaction{},
		Kind:      kind,
		CreatedAt: now,
	}
}
