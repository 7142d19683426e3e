package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Ashi3h/ChatRoom/internal/config"
	"github.com/Ashi3h/ChatRoom/internal/delivery/ws"
	"github.com/Ashi3h/ChatRoom/internal/domain"
)

// isOriginAllowed checks if the origin is in the allowed list
func isOriginAllowed(origin string) bool {
	// Empty origin is allowed (same-origin requests)
	if origin == "" {
		return true
	}

	for _, allowed := range config.AppConfig.AllowedOrigins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}
	return false
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return isOriginAllowed(r.Header.Get("Origin"))
	},
}

// Handler serves the websocket entry point and the stateless API routes
type Handler struct {
	rooms *ws.RoomManager
}

func NewHandler(rooms *ws.RoomManager) *Handler {
	return &Handler{rooms: rooms}
}

// HandleWebSocket upgrades the connection and joins it to a room. The room
// id and display name ride the query string; both are sanitized and must be
// non-empty before any side effect happens.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID := ws.SanitizeRoomID(r.URL.Query().Get("room"))
	if roomID == "" {
		http.Error(w, "Room id required", http.StatusBadRequest)
		return
	}

	name := ws.SanitizeName(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "Display name required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(conn, roomID, name)
	if _, err := h.rooms.Join(roomID, client); err != nil {
		// Name conflict: the requesting connection gets an explicit error
		// and stays unjoined; room state is untouched and the client may
		// retry with a different name.
		if data, encErr := domain.EncodeEvent(domain.EventJoinError, domain.JoinErrorPayload{
			Reason: err.Error(),
		}); encErr == nil {
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			conn.WriteMessage(websocket.TextMessage, data)
		}
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandleHealth reports liveness
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"rooms":  h.rooms.RoomCount(),
	})
}

// HandleGifSearch proxies GIF search requests to the GIPHY API. Pure
// pass-through; no state is kept server-side.
func (h *Handler) HandleGifSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Missing query parameter 'q'", http.StatusBadRequest)
		return
	}

	apiKey := config.AppConfig.GiphyAPIKey
	if apiKey == "" {
		http.Error(w, "GIF service not configured", http.StatusServiceUnavailable)
		return
	}

	giphyURL := "https://api.giphy.com/v1/gifs/search?api_key=" + apiKey +
		"&q=" + url.QueryEscape(query) + "&limit=33&rating=g"

	resp, err := http.Get(giphyURL)
	if err != nil {
		log.Error().Err(err).Msg("gif search upstream failed")
		http.Error(w, "Failed to fetch GIFs", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var giphyResp struct {
		Data []struct {
			Images struct {
				Original struct {
					URL string `json:"url"`
				} `json:"original"`
				FixedWidth struct {
					URL string `json:"url"`
				} `json:"fixed_width"`
			} `json:"images"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&giphyResp); err != nil {
		http.Error(w, "Failed to parse GIF response", http.StatusInternalServerError)
		return
	}

	type GifResult struct {
		URL     string `json:"url"`
		Preview string `json:"preview"`
	}

	results := make([]GifResult, 0, len(giphyResp.Data))
	for _, item := range giphyResp.Data {
		results = append(results, GifResult{
			URL:     item.Images.Original.URL,
			Preview: item.Images.FixedWidth.URL,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
