package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"quizboard/internal/api"
	"quizboard/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsSendBuffer = 16
)

// wsClient owns one connection. Only its writer goroutine writes to conn.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *wsClient) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// wsHub groups websocket subscribers by game id.
type wsHub struct {
	mu     sync.Mutex
	groups map[uint]map[*wsClient]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[uint]map[*wsClient]struct{}),
	}
}

func (h *wsHub) Add(gameID uint, conn *websocket.Conn) *wsClient {
	client := &wsClient{
		conn: conn,
		send: make(chan []byte, wsSendBuffer),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	group := h.groups[gameID]
	if group == nil {
		group = make(map[*wsClient]struct{})
		h.groups[gameID] = group
	}
	group[client] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(gameID, client)
	return client
}

func (h *wsHub) Remove(gameID uint, client *wsClient) {
	h.mu.Lock()
	if group := h.groups[gameID]; group != nil {
		delete(group, client)
		if len(group) == 0 {
			delete(h.groups, gameID)
		}
	}
	h.mu.Unlock()
	client.close()
}

func (h *wsHub) Subscribers(gameID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[gameID])
}

// Broadcast queues payload for every subscriber of the game without waiting on
// any socket. A subscriber whose queue is full is dropped.
func (h *wsHub) Broadcast(gameID uint, payload any) {
	h.mu.Lock()
	group := h.groups[gameID]
	clients := make([]*wsClient, 0, len(group))
	for client := range group {
		clients = append(clients, client)
	}
	h.mu.Unlock()
	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, client := range clients {
		select {
		case client.send <- data:
		case <-client.done:
		default:
			log.Printf("ws subscriber dropped game_id=%d reason=send_buffer_full", gameID)
			h.Remove(gameID, client)
		}
	}
}

func (h *wsHub) writeLoop(gameID uint, client *wsClient) {
	for {
		select {
		case data := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("ws write failed game_id=%d error=%v", gameID, err)
				h.Remove(gameID, client)
				return
			}
		case <-client.done:
			return
		}
	}
}

// checkOrigin accepts requests without an Origin header (non-browser clients)
// and otherwise requires the configured CORS origin unless it is "*".
func (s *Server) checkOrigin(r *http.Request) bool {
	allowed := s.cfg.CORSAllowOrigin
	if allowed == "" || allowed == "*" {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == allowed
}

func (s *Server) handleWebsocket(c *gin.Context) {
	var uri gameURI
	if !api.BindURI(c, &uri, pathMessages, "gameId must be a positive integer") {
		return
	}
	if _, err := s.games.FindGame(c.Request.Context(), uri.GameID); err != nil {
		if errors.Is(err, db.ErrGameNotFound) {
			api.Error(c, http.StatusNotFound, err.Error())
			return
		}
		api.InternalError(c, "load game", err)
		return
	}
	upgrader := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected game_id=%d remote=%s", uri.GameID, c.Request.RemoteAddr)
	client := s.ws.Add(uri.GameID, conn)
	go s.readWS(uri.GameID, client)
}

func (s *Server) readWS(gameID uint, client *wsClient) {
	defer s.ws.Remove(gameID, client)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected game_id=%d error=%v", gameID, err)
			return
		}
	}
}
