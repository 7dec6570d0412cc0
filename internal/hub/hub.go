package hub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"chatcore-backend/internal/models"
	"chatcore-backend/internal/snowflake"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub fans store events out to websocket clients. Each client is
// subscribed to at most one channel at a time and switches by sending
// a channel id as a text frame.
type Hub struct {
	sugar *zap.SugaredLogger
	ids   *snowflake.Generator

	mu      sync.Mutex
	clients map[int64]*client
	subs    map[int64][]int64 // channel id -> session ids
}

type client struct {
	sessionID int64
	userID    int64
	conn      *websocket.Conn
	wsChannel chan []byte
	channelID int64
}

func New(sugar *zap.SugaredLogger, ids *snowflake.Generator) *Hub {
	return &Hub{
		sugar:   sugar,
		ids:     ids,
		clients: make(map[int64]*client),
		subs:    make(map[int64][]int64),
	}
}

func (h *Hub) HandleClient(user *models.User, w http.ResponseWriter, r *http.Request) {
	h.sugar.Debugf("Connecting user ID [%d] to WebSocket", user.ID)

	sessionID, err := h.ids.Generate()
	if err != nil {
		h.sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.sugar.Error(err)
		return
	}
	defer conn.Close()

	c := &client{
		sessionID: sessionID,
		userID:    user.ID,
		conn:      conn,
		wsChannel: make(chan []byte, 16),
		channelID: -1,
	}

	h.setClient(c)
	defer h.deleteClient(sessionID)

	// pump queued events to the client
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case msg, ok := <-c.wsChannel:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					h.sugar.Debug(err)
					return
				}
			}
		}
	}()

	// each incoming text frame is a channel id to subscribe to
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.sugar.Debug(err)
			break
		}

		channelID, err := strconv.ParseInt(string(payload), 10, 64)
		if err != nil {
			h.sugar.Debugf("Session ID [%d] sent a malformed subscription frame", sessionID)
			continue
		}
		h.subscribe(sessionID, channelID)
	}
}

func (h *Hub) setClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.sessionID] = c
}

func (h *Hub) deleteClient(sessionID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, exists := h.clients[sessionID]
	if !exists {
		return
	}
	h.unsubscribeLocked(c)
	delete(h.clients, sessionID)
}

func (h *Hub) subscribe(sessionID int64, channelID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, exists := h.clients[sessionID]
	if !exists {
		return
	}

	h.unsubscribeLocked(c)
	c.channelID = channelID
	h.subs[channelID] = append(h.subs[channelID], sessionID)
	h.sugar.Debugf("Session ID [%d] subscribed to channel ID [%d]", sessionID, channelID)
}

func (h *Hub) unsubscribeLocked(c *client) {
	sessionIDs := h.subs[c.channelID]
	for i := range sessionIDs {
		if sessionIDs[i] == c.sessionID {
			sessionIDs[i] = sessionIDs[len(sessionIDs)-1]
			h.subs[c.channelID] = sessionIDs[:len(sessionIDs)-1]
			break
		}
	}

	// drop the channel entry once nobody is subscribed to it
	if len(h.subs[c.channelID]) == 0 {
		delete(h.subs, c.channelID)
	}
	c.channelID = -1
}

// Emit sends "<messageType>\n<json payload>" to every client
// subscribed to the channel. Slow clients are skipped rather than
// blocked on; the hub must never stall a store mutation.
func (h *Hub) Emit(messageType string, channelID int64, payload any) error {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(len(messageType) + 1 + len(jsonBytes))
	fmt.Fprintf(&buf, "%s\n", messageType)
	buf.Write(jsonBytes)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sessionID := range h.subs[channelID] {
		c, exists := h.clients[sessionID]
		if !exists {
			h.sugar.Warnf("Session ID %d is supposed to be available", sessionID)
			continue
		}
		select {
		case c.wsChannel <- buf.Bytes():
		default:
			h.sugar.Warnf("Dropping event for slow session ID %d", sessionID)
		}
	}
	return nil
}
