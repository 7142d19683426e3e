package ws

import "github.com/Ashi3h/ChatRoom/internal/domain"

// HandleRead records the participant's last-read message id and broadcasts
// the room-wide read summary. The id is accepted without checking that the
// message exists; ids are monotonic per room, so an out-of-order read event
// can never move a participant's watermark backwards. Every read event
// triggers a readUpdate, even when the watermark did not move.
func (h *Hub) HandleRead(c *Client, in domain.ReadInput) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.roster.Get(c.ID)
	if !ok {
		return
	}

	last := p.Participant.LastReadID
	if last == nil || in.MessageID > *last {
		id := in.MessageID
		p.Participant.LastReadID = &id
	}

	h.broadcastEventLocked(domain.EventReadUpdate, h.roster.ReadStates())
}
