package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/Ashi3h/ChatRoom/internal/store"
)

// memGateway is an in-memory store.Gateway for hub tests. failSave lets a
// test simulate a store outage on the message write path.
type memGateway struct {
	mu       sync.Mutex
	rooms    map[string]bool
	members  map[string][]string
	messages map[string][]store.MessageRecord
	failSave bool
}

func newMemGateway() *memGateway {
	return &memGateway{
		rooms:    make(map[string]bool),
		members:  make(map[string][]string),
		messages: make(map[string][]store.MessageRecord),
	}
}

func (g *memGateway) EnsureRoom(_ context.Context, roomID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rooms[roomID] = true
	return nil
}

func (g *memGateway) AppendMember(_ context.Context, roomID, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members[roomID] = append(g.members[roomID], name)
	return nil
}

func (g *memGateway) SaveMessage(_ context.Context, rec *store.MessageRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failSave {
		return errors.New("store unavailable")
	}
	g.messages[rec.RoomID] = append(g.messages[rec.RoomID], *rec)
	return nil
}

func (g *memGateway) MessagesByRoom(_ context.Context, roomID string) ([]store.MessageRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	recs := make([]store.MessageRecord, len(g.messages[roomID]))
	copy(recs, g.messages[roomID])
	return recs, nil
}

func (g *memGateway) PurgeRoom(_ context.Context, roomID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.rooms, roomID)
	delete(g.members, roomID)
	delete(g.messages, roomID)
	return nil
}

func (g *memGateway) roomExists(roomID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rooms[roomID]
}

func (g *memGateway) messageCount(roomID string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.messages[roomID])
}

func (g *memGateway) memberLog(roomID string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	log := make([]string, len(g.members[roomID]))
	copy(log, g.members[roomID])
	return log
}
