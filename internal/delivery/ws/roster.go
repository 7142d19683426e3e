package ws

import (
	"errors"

	"github.com/Ashi3h/ChatRoom/internal/domain"
)

// ErrNameTaken is returned when a join reuses the display name of a
// currently active participant in the same room
var ErrNameTaken = errors.New("display name already taken in this room")

// Roster tracks the active participants of one room in registration order.
// It is not internally synchronized; the owning hub's lock guards it.
type Roster struct {
	clients map[string]*Client // keyed by connection id
	order   []string
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{
		clients: make(map[string]*Client),
	}
}

// Add registers a client. Fails with ErrNameTaken if an active participant
// of the room already uses the same display name; nothing is mutated then.
func (r *Roster) Add(c *Client) error {
	for _, existing := range r.clients {
		if existing.Participant.Name == c.Participant.Name {
			return ErrNameTaken
		}
	}
	r.clients[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

// Remove deregisters a connection. Removing an unknown id is a no-op, not
// an error, so duplicate disconnect signals are harmless. Returns the
// removed client and the remaining participant count.
func (r *Roster) Remove(connID string) (*Client, int, bool) {
	c, ok := r.clients[connID]
	if !ok {
		return nil, len(r.clients), false
	}
	delete(r.clients, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return c, len(r.clients), true
}

// Get returns the client for a connection id
func (r *Roster) Get(connID string) (*Client, bool) {
	c, ok := r.clients[connID]
	return c, ok
}

// Count returns the number of active participants
func (r *Roster) Count() int {
	return len(r.clients)
}

// Names returns the display names in registration order
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if c, ok := r.clients[id]; ok {
			names = append(names, c.Participant.Name)
		}
	}
	return names
}

// Each calls fn for every active client
func (r *Roster) Each(fn func(c *Client)) {
	for _, id := range r.order {
		if c, ok := r.clients[id]; ok {
			fn(c)
		}
	}
}

// ReadStates snapshots every participant's read progress, keyed by
// connection id. Recomputed from the live roster on each read event.
func (r *Roster) ReadStates() map[string]domain.ReadState {
	states := make(map[string]domain.ReadState, len(r.clients))
	for id, c := range r.clients {
		states[id] = domain.ReadState{
			Username:   c.Participant.Name,
			LastReadID: c.Participant.LastReadID,
		}
	}
	return states
}
