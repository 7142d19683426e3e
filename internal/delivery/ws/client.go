package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Ashi3h/ChatRoom/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// Client represents a single websocket connection bound to one room
type Client struct {
	ID          string
	Participant *domain.Participant
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
}

// NewClient creates a client for an accepted connection. The hub binding
// happens during RoomManager.Join.
func NewClient(conn *websocket.Conn, roomID, name string) *Client {
	id := uuid.New().String()
	return &Client{
		ID: id,
		Participant: &domain.Participant{
			ID:     id,
			Name:   name,
			RoomID: roomID,
		},
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// ReadPump pumps frames from the websocket connection into the hub.
// The deferred Leave is the single disconnect handler for the whole
// connection lifetime; it reads the current room binding at disconnect
// time and is a no-op when invoked twice.
func (c *Client) ReadPump() {
	defer func() {
		if c.hub != nil {
			c.hub.Leave(c.ID)
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var evt domain.Event
		if err := json.Unmarshal(raw, &evt); err != nil {
			continue
		}
		c.dispatch(evt)
	}
}

// dispatch routes one inbound frame. Malformed or unknown frames are
// dropped without side effects.
func (c *Client) dispatch(evt domain.Event) {
	switch evt.Type {
	case domain.EventChat:
		if in, ok := decode[domain.ChatInput](evt.Payload); ok {
			c.hub.HandleChat(c, in)
		}
	case domain.EventTyping:
		if in, ok := decode[domain.TypingInput](evt.Payload); ok {
			c.hub.HandleTyping(c, in)
		}
	case domain.EventReaction:
		if in, ok := decode[domain.ReactionInput](evt.Payload); ok {
			c.hub.HandleReaction(c, in)
		}
	case domain.EventRead:
		if in, ok := decode[domain.ReadInput](evt.Payload); ok {
			c.hub.HandleRead(c, in)
		}
	}
}

// WritePump pumps messages from the hub to the websocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send adds a message to the client's send queue. Drops the message when
// the buffer is full rather than blocking the room's broadcast path.
func (c *Client) Send(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}
