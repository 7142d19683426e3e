package ws

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/Ashi3h/ChatRoom/internal/domain"
	"github.com/Ashi3h/ChatRoom/internal/store"
)

// nextMessageID advances the room's message sequence. Caller must hold
// h.mu, which is what makes ids unique and strictly increasing even for
// chat events arriving in the same instant.
func (h *Hub) nextMessageID() int64 {
	h.nextID++
	return h.nextID
}

// HandleChat assigns identity to a chat message, persists it and fans it
// out to every participant of the room, including the sender, in arrival
// order. A persistence failure is logged but never suppresses delivery.
func (h *Hub) HandleChat(c *Client, in domain.ChatInput) {
	text, ok := ValidMessageText(in.Text)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.roster.Get(c.ID); !ok {
		return // sender already disconnected
	}

	msg := domain.NewMessage(h.roomID, c.Participant.Name, text, domain.KindChat)
	msg.Avatar = c.Participant.Name
	msg.ID = h.nextMessageID()
	h.window.Add(msg)

	ctx, cancel := storeCtx()
	err := h.store.SaveMessage(ctx, &store.MessageRecord{
		RoomID:    msg.RoomID,
		MessageID: msg.ID,
		User:      msg.User,
		Text:      msg.Text,
		Time:      msg.Time,
		Kind:      string(msg.Kind),
		Avatar:    msg.Avatar,
		CreatedAt: msg.CreatedAt,
	})
	cancel()
	if err != nil {
		log.Error().Err(err).Str("room", h.roomID).Int64("id", msg.ID).
			Msg("failed to persist message")
	}

	h.broadcastEventLocked(domain.EventChat, msg)
}

// HandleTyping relays a typing signal to everyone except the sender.
// Stateless and last-write-wins; never persisted, never queued.
func (h *Hub) HandleTyping(c *Client, in domain.TypingInput) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.roster.Get(c.ID); !ok {
		return
	}

	data, err := domain.EncodeEvent(domain.EventTyping, domain.TypingPayload{
		Username: c.Participant.Name,
		Typing:   in.Typing,
	})
	if err != nil {
		return
	}
	h.roster.Each(func(peer *Client) {
		if peer.ID != c.ID {
			peer.Send(data)
		}
	})
}

// broadcastSystemLocked emits an ephemeral system notice with a fresh id.
// System messages are broadcast only, never persisted.
func (h *Hub) broadcastSystemLocked(text string) {
	msg := domain.NewMessage(h.roomID, "System", text, domain.KindSystem)
	msg.ID = h.nextMessageID()
	h.broadcastEventLocked(domain.EventChat, msg)
}

// broadcastRoomStateLocked sends the current participant list and count to
// the whole room. Invoked after every join and every departure.
func (h *Hub) broadcastRoomStateLocked() {
	h.broadcastEventLocked(domain.EventRoomData, domain.RoomDataPayload{
		RoomID:    h.roomID,
		Users:     h.roster.Names(),
		UserCount: h.roster.Count(),
	})
}

// broadcastEventLocked encodes once and delivers to every participant.
// Caller must hold h.mu; appending to each client's ordered send queue
// inside the critical section is what gives all observers the same
// relative event order.
func (h *Hub) broadcastEventLocked(t domain.EventType, payload any) {
	data, err := domain.EncodeEvent(t, payload)
	if err != nil {
		log.Error().Err(err).Str("room", h.roomID).Str("event", string(t)).
			Msg("failed to encode event")
		return
	}
	h.roster.Each(func(c *Client) {
		c.Send(data)
	})
}

// decode is a small helper for inbound payloads
func decode[T any](raw json.RawMessage) (T, bool) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}
