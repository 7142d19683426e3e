package ws

import (
	"testing"

	"github.com/Ashi3h/ChatRoom/internal/domain"
)

func windowMsg(id int64) *domain.Message {
	msg := domain.NewMessage("r1", "alice", "text", domain.KindChat)
	msg.ID = id
	return msg
}

func TestWindow_AddAndFind(t *testing.T) {
	w := NewWindow(5)

	w.Add(windowMsg(1))
	w.Add(windowMsg(2))

	if w.Len() != 2 {
		t.Errorf("Expected 2 elements, got %d", w.Len())
	}
	if got := w.Find(1); got == nil || got.ID != 1 {
		t.Error("Expected to find message 1")
	}
	if got := w.Find(99); got != nil {
		t.Error("Expected nil for unknown id")
	}
}

func TestWindow_OverwritesOldestWhenFull(t *testing.T) {
	w := NewWindow(3)
	for id := int64(1); id <= 5; id++ {
		w.Add(windowMsg(id))
	}

	if w.Len() != 3 {
		t.Errorf("Expected capacity-bound length 3, got %d", w.Len())
	}
	if w.Find(1) != nil || w.Find(2) != nil {
		t.Error("Rotated-out messages must not be found")
	}
	for id := int64(3); id <= 5; id++ {
		if w.Find(id) == nil {
			t.Errorf("Expected message %d to remain", id)
		}
	}
}

func TestWindow_Clear(t *testing.T) {
	w := NewWindow(3)
	w.Add(windowMsg(1))
	w.Clear()

	if w.Len() != 0 {
		t.Errorf("Expected empty window, got %d", w.Len())
	}
	if w.Find(1) != nil {
		t.Error("Expected no hits after clear")
	}
}

func TestWindow_MinimumCapacity(t *testing.T) {
	w := NewWindow(0)
	w.Add(windowMsg(1))
	if w.Find(1) == nil {
		t.Error("Zero-capacity request must still hold one message")
	}
}
