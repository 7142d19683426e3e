package ws

import (
	"sync"

	"github.com/Ashi3h/ChatRoom/internal/store"
)

// RoomManager owns the room table: it hands out the live hub for a room on
// join and evicts it when the room purges. A room entry exists exactly as
// long as its roster is non-empty.
type RoomManager struct {
	mu         sync.Mutex
	rooms      map[string]*Hub
	store      store.Gateway
	windowSize int
}

// NewRoomManager creates a manager backed by the given gateway.
// windowSize caps each room's in-memory recent-message window.
func NewRoomManager(gw store.Gateway, windowSize int) *RoomManager {
	return &RoomManager{
		rooms:      make(map[string]*Hub),
		store:      gw,
		windowSize: windowSize,
	}
}

// Join binds the client to the room, creating the room on first join.
// Returns ErrNameTaken without any side effects when the display name is
// already active in the room.
//
// A join racing with a purge of the same room either registers before the
// purge observes an empty roster (the room survives) or finds the hub
// closed and recreates the room from scratch; it never sees partial state.
func (m *RoomManager) Join(roomID string, c *Client) (*Hub, error) {
	for {
		m.mu.Lock()
		hub, ok := m.rooms[roomID]
		if !ok {
			hub = newHub(roomID, m.store, m.windowSize, m)
			m.rooms[roomID] = hub
		}
		m.mu.Unlock()

		joined, err := hub.join(c)
		if err != nil {
			return nil, err
		}
		if joined {
			return hub, nil
		}

		// The hub purged under us. Make sure the dead entry is gone before
		// retrying, otherwise we could spin on the same pointer.
		m.evict(roomID, hub)
	}
}

// GetRoom returns the live hub for a room, or nil
func (m *RoomManager) GetRoom(roomID string) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[roomID]
}

// RoomCount returns the number of live rooms
func (m *RoomManager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

// evict drops the map entry if it still points at hub. Idempotent; the
// pointer comparison protects a recreated room under the same id.
func (m *RoomManager) evict(roomID string, hub *Hub) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rooms[roomID] == hub {
		delete(m.rooms, roomID)
	}
}
