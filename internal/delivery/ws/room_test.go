package ws

import (
	"fmt"
	"sync"
	"testing"
)

func TestRoomManager_JoinCreatesRoom(t *testing.T) {
	m, gw := newTestManager()

	if m.GetRoom("r1") != nil {
		t.Fatal("Expected no room before first join")
	}

	alice := newMockClient("r1", "alice")
	hub := mustJoin(t, m, alice)

	if m.GetRoom("r1") != hub {
		t.Error("Expected manager to hand out the live hub")
	}
	if m.RoomCount() != 1 {
		t.Errorf("Expected 1 room, got %d", m.RoomCount())
	}
	if !gw.roomExists("r1") {
		t.Error("Expected durable record for the room")
	}
}

func TestRoomManager_RoomsAreIndependent(t *testing.T) {
	m, _ := newTestManager()

	h1 := mustJoin(t, m, newMockClient("r1", "alice"))
	h2 := mustJoin(t, m, newMockClient("r2", "alice"))

	if h1 == h2 {
		t.Error("Different rooms must get different hubs")
	}
	// Same name in different rooms is not a conflict
	if m.RoomCount() != 2 {
		t.Errorf("Expected 2 rooms, got %d", m.RoomCount())
	}
}

func TestRoomManager_ConcurrentJoinsSameRoom(t *testing.T) {
	m, gw := newTestManager()

	const joiners = 20
	var wg sync.WaitGroup
	hubs := make([]*Hub, joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := newMockClient("r1", fmt.Sprintf("user-%d", i))
			hub, err := m.Join("r1", c)
			if err != nil {
				t.Errorf("join %d failed: %v", i, err)
				return
			}
			hubs[i] = hub
		}(i)
	}
	wg.Wait()

	for i := 1; i < joiners; i++ {
		if hubs[i] != hubs[0] {
			t.Fatal("Concurrent joins landed on different hubs for one room")
		}
	}
	if hubs[0].ClientCount() != joiners {
		t.Errorf("Expected %d participants, got %d", joiners, hubs[0].ClientCount())
	}
	if !gw.roomExists("r1") {
		t.Error("Expected a single durable room record")
	}
}

func TestRoomManager_EvictOnlyDropsMatchingHub(t *testing.T) {
	m, _ := newTestManager()

	alice := newMockClient("r1", "alice")
	old := mustJoin(t, m, alice)
	old.Leave(alice.ID) // purges and evicts

	bob := newMockClient("r1", "bob")
	fresh := mustJoin(t, m, bob)

	// A late evict for the purged hub must not remove the recreated room
	m.evict("r1", old)
	if m.GetRoom("r1") != fresh {
		t.Error("Stale evict removed the live hub")
	}
}

func TestRoomManager_JoinDuringPurgeChurn(t *testing.T) {
	m, _ := newTestManager()

	// Hammer join/leave of the same room from many goroutines; every join
	// must land on a live hub and every room must eventually purge.
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				c := newMockClient("churn", fmt.Sprintf("user-%d", i))
				hub, err := m.Join("churn", c)
				if err != nil {
					continue // another goroutine holds the name right now
				}
				hub.Leave(c.ID)
			}
		}(i)
	}
	wg.Wait()

	if m.RoomCount() != 0 {
		t.Errorf("Expected all rooms purged after churn, got %d", m.RoomCount())
	}
}
