package domain

import "encoding/json"

// EventType tags every frame exchanged over a connection
type EventType string

const (
	EventChat        EventType = "chat"
	EventChatHistory EventType = "chatHistory"
	EventTyping      EventType = "typing"
	EventReaction    EventType = "reaction"
	EventRead        EventType = "read"
	EventReadUpdate  EventType = "readUpdate"
	EventRoomData    EventType = "roomData"
	EventJoinError   EventType = "joinError"
)

// Event is the closed envelope used in both directions. The payload shape
// is fixed per type and decoded at the boundary.
type Event struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EncodeEvent marshals a typed payload into an envelope frame
func EncodeEvent(t EventType, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: t, Payload: raw})
}

// ==== client -> server payloads ====

// ChatInput is the body of an inbound chat frame
type ChatInput struct {
	Text string `json:"text"`
}

// TypingInput signals the sender started or stopped typing
type TypingInput struct {
	Typing bool `json:"typing"`
}

// ReactionInput attaches an emoji to a message
type ReactionInput struct {
	MessageID int64  `json:"messageId"`
	Emoji     string `json:"emoji"`
}

// ReadInput marks everything up to MessageID as read
type ReadInput struct {
	MessageID int64 `json:"messageId"`
}

// ==== server -> client payloads ====

// TypingPayload is the typing indicator fanned out to the sender's peers
type TypingPayload struct {
	Username string `json:"username"`
	Typing   bool   `json:"typing"`
}

// ReactionPayload is the reaction entry fanned out to the room
type ReactionPayload struct {
	MessageID int64  `json:"messageId"`
	Emoji     string `json:"emoji"`
	Username  string `json:"username"`
}

// RoomDataPayload is the participant list sent after every join and leave
type RoomDataPayload struct {
	RoomID    string   `json:"roomId"`
	Users     []string `json:"users"`
	UserCount int      `json:"userCount"`
}

// JoinErrorPayload is sent to the requesting connection only
type JoinErrorPayload struct {
	Reason string `json:"reason"`
}
