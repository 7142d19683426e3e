package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a room record does not exist
var ErrNotFound = errors.New("room not found")

// RoomRecord is the durable room row. It exists from the first join until
// the room's last participant leaves and the purge removes it.
type RoomRecord struct {
	RoomID    string    `gorm:"primaryKey;size:64" json:"room_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (RoomRecord) TableName() string {
	return "rooms"
}

// MemberRecord is one entry of the append-only membership log. Entries are
// never removed on disconnect; the log is historical, not live presence.
type MemberRecord struct {
	ID       uint      `gorm:"primarykey" json:"-"`
	RoomID   string    `gorm:"index;size:64" json:"room_id"`
	Name     string    `gorm:"size:64" json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

func (MemberRecord) TableName() string {
	return "room_members"
}

// MessageRecord is a persisted chat message. System messages are never
// written; reactions live only in the room's in-memory window, so the
// reactions column stays empty in the base design.
type MessageRecord struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	RoomID    string    `gorm:"index;size:64" json:"room_id"`
	MessageID int64     `json:"message_id"`
	User      string    `gorm:"size:64" json:"user"`
	Text      string    `gorm:"size:4096" json:"text"`
	Time      string    `gorm:"size:16" json:"time"`
	Kind      string    `gorm:"size:16;default:chat" json:"type"`
	Reactions string    `gorm:"size:4096" json:"reactions"`
	Avatar    string    `gorm:"size:64" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func (MessageRecord) TableName() string {
	return "messages"
}

// Gateway is the durable store behind the room coordinator. Implementations
// must keep per-room operations safe to call concurrently; the hub already
// issues them in event order for any single room.
type Gateway interface {
	// EnsureRoom creates the room record if it does not exist. Idempotent;
	// safe for two near-simultaneous joins of the same room.
	EnsureRoom(ctx context.Context, roomID string) error

	// AppendMember appends a historical membership entry
	AppendMember(ctx context.Context, roomID, name string) error

	// SaveMessage persists one chat message
	SaveMessage(ctx context.Context, rec *MessageRecord) error

	// MessagesByRoom returns the room's messages ordered by created_at
	// ascending, for history replay on join
	MessagesByRoom(ctx context.Context, roomID string) ([]MessageRecord, error)

	// PurgeRoom deletes all of the room's messages, membership log entries
	// and the room record itself
	PurgeRoom(ctx context.Context, roomID string) error
}
