package ws

import "github.com/Ashi3h/ChatRoom/internal/domain"

// Window is a fixed-size circular buffer over the room's most recent chat
// messages. It provides O(1) append and is the lookup target for reaction
// attachment; a message that has rotated out can no longer be reacted to.
type Window struct {
	data []*domain.Message
	head int // next write position
	size int // current number of elements
	cap  int // maximum capacity
}

// NewWindow creates a window with the given capacity
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{
		data: make([]*domain.Message, capacity),
		cap:  capacity,
	}
}

// Add appends a message, overwriting the oldest if full
func (w *Window) Add(msg *domain.Message) {
	w.data[w.head] = msg
	w.head = (w.head + 1) % w.cap

	if w.size < w.cap {
		w.size++
	}
}

// Find returns the message with the given id, or nil if it is not in the
// window. Scans newest first since reactions target recent messages.
func (w *Window) Find(id int64) *domain.Message {
	for i := 0; i < w.size; i++ {
		idx := (w.head - 1 - i + w.cap) % w.cap
		if msg := w.data[idx]; msg != nil && msg.ID == id {
			return msg
		}
	}
	return nil
}

// Len returns the current number of elements
func (w *Window) Len() int {
	return w.size
}

// Clear removes all elements
func (w *Window) Clear() {
	w.head = 0
	w.size = 0
	for i := range w.data {
		w.data[i] = nil
	}
}
