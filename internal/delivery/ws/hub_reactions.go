package ws

import (
	"github.com/rs/zerolog/log"

	"github.com/Ashi3h/ChatRoom/internal/domain"
)

// HandleReaction appends {emoji, author} to the referenced message's
// reaction list and rebroadcasts the entry to the room. Reacting to a
// message outside the in-memory window is a silent no-op; reactions are
// not persisted and do not survive a room teardown.
func (h *Hub) HandleReaction(c *Client, in domain.ReactionInput) {
	if in.Emoji == "" || len(in.Emoji) > maxEmojiBytes {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.roster.Get(c.ID); !ok {
		return
	}

	msg := h.window.Find(in.MessageID)
	if msg == nil {
		log.Debug().Str("room", h.roomID).Int64("id", in.MessageID).
			Msg("reaction to unknown message dropped")
		return
	}

	// Append-only, no dedup: repeated reactions from one participant are
	// kept in submission order.
	msg.Reactions = append(msg.Reactions, domain.Reaction{
		Emoji:    in.Emoji,
		Username: c.Participant.Name,
	})

	h.broadcastEventLocked(domain.EventReaction, domain.ReactionPayload{
		MessageID: msg.ID,
		Emoji:     in.Emoji,
		Username:  c.Participant.Name,
	})
}
