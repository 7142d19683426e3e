package ws

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ashi3h/ChatRoom/internal/domain"
	"github.com/Ashi3h/ChatRoom/internal/store"
)

// storeTimeout bounds every call into the persistence gateway so a slow
// store cannot wedge a room's event handling forever
const storeTimeout = 5 * time.Second

// Hub owns all mutable state of one room: the participant roster, the
// message id sequence and the recent-message window. Every mutation goes
// through h.mu, so events within a room are totally ordered while separate
// rooms proceed in parallel.
type Hub struct {
	mu        sync.Mutex
	roomID    string
	createdAt time.Time
	store     store.Gateway
	manager   *RoomManager

	// closed is set under mu when the last participant leaves, after the
	// durable purge. A joiner holding a stale pointer to a closed hub must
	// retry against the manager map.
	closed bool

	roster *Roster
	window *Window
	nextID int64
}

func newHub(roomID string, gw store.Gateway, windowSize int, manager *RoomManager) *Hub {
	return &Hub{
		roomID:    roomID,
		createdAt: time.Now(),
		store:     gw,
		manager:   manager,
		roster:    NewRoster(),
		window:    NewWindow(windowSize),
	}
}

// RoomID returns the room this hub coordinates
func (h *Hub) RoomID() string {
	return h.roomID
}

// ClientCount returns the number of active participants
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.roster.Count()
}

// storeCtx returns a bounded context for one persistence call
func storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// join registers the client, ensures the durable room record, replays
// history to the joiner and announces the arrival. Returns false when the
// hub has already been closed by a purge; the caller retries then.
func (h *Hub) join(c *Client) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false, nil
	}

	if err := h.roster.Add(c); err != nil {
		return true, err
	}
	c.hub = h

	// Durable fetch-or-create plus the append-only membership log. A store
	// failure must not break the live join.
	ctx, cancel := storeCtx()
	defer cancel()
	if err := h.store.EnsureRoom(ctx, h.roomID); err != nil {
		log.Error().Err(err).Str("room", h.roomID).Msg("failed to ensure room record")
	} else if err := h.store.AppendMember(ctx, h.roomID, c.Participant.Name); err != nil {
		log.Error().Err(err).Str("room", h.roomID).Msg("failed to record membership")
	}

	// History replay goes to the joining connection only
	if recs, err := h.store.MessagesByRoom(ctx, h.roomID); err != nil {
		log.Error().Err(err).Str("room", h.roomID).Msg("failed to load history")
	} else {
		history := make([]*domain.Message, 0, len(recs))
		for i := range recs {
			history = append(history, recordToMessage(&recs[i]))
		}
		if data, err := domain.EncodeEvent(domain.EventChatHistory, history); err == nil {
			c.Send(data)
		}
	}

	h.broadcastSystemLocked(c.Participant.Name + " joined the room.")
	h.broadcastRoomStateLocked()

	log.Info().Str("room", h.roomID).Str("user", c.Participant.Name).
		Int("count", h.roster.Count()).Msg("participant joined")
	return true, nil
}

// Leave removes the connection and tears the room down when it empties.
// Safe to call more than once per connection; a stale or duplicate
// disconnect is a no-op.
func (h *Hub) Leave(connID string) {
	h.mu.Lock()

	c, remaining, ok := h.roster.Remove(connID)
	if !ok {
		h.mu.Unlock()
		return
	}
	close(c.send)

	if remaining > 0 {
		h.broadcastSystemLocked(c.Participant.Name + " left the room.")
		h.broadcastRoomStateLocked()
		h.mu.Unlock()

		log.Info().Str("room", h.roomID).Str("user", c.Participant.Name).
			Int("count", remaining).Msg("participant left")
		return
	}

	// Last participant gone: close the hub before releasing the lock so a
	// concurrent join cannot land on half-purged state, then delete the
	// durable record and all persisted messages.
	h.closed = true
	ctx, cancel := storeCtx()
	if err := h.store.PurgeRoom(ctx, h.roomID); err != nil {
		log.Error().Err(err).Str("room", h.roomID).Msg("failed to purge room")
	}
	cancel()
	h.window.Clear()
	h.mu.Unlock()

	h.manager.evict(h.roomID, h)
	log.Info().Str("room", h.roomID).Str("user", c.Participant.Name).Msg("room purged")
}

func recordToMessage(rec *store.MessageRecord) *domain.Message {
	return &domain.Message{
		ID:        rec.MessageID,
		RoomID:    rec.RoomID,
		User:      rec.User,
		Text:      rec.Text,
		Time:      rec.Time,
		Avatar:    rec.Avatar,
		Reactions: []domain.Reaction{},
		Kind:      domain.MessageKind(rec.Kind),
		CreatedAt: rec.CreatedAt,
	}
}
