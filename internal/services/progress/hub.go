package progress

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/models"
)

const (
	// writeWait bounds how long a slow client can stall a write.
	writeWait = 10 * time.Second
	// pingPeriod keeps idle connections alive through proxies.
	pingPeriod = 30 * time.Second
	// sendBuffer is the per-subscriber outbound queue. A subscriber that
	// falls this far behind gets dropped rather than blocking the pipeline.
	sendBuffer = 16
)

// subscriber is one WebSocket connection watching a video.
type subscriber struct {
	id   string
	send chan []byte
}

// Hub fans progress updates out to WebSocket subscribers, grouped by
// video ID.
type Hub struct {
	mu       sync.RWMutex
	topics   map[string]map[string]*subscriber // videoID -> subscriber ID -> subscriber
	upgrader websocket.Upgrader
}

// NewHub creates a WebSocket broadcast hub. Origin checking is delegated
// to the CORS middleware in front of the upgrade endpoint.
func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[string]*subscriber),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Broadcast sends an update to every subscriber of the video.
func (h *Hub) Broadcast(videoID string, update models.ProgressUpdate) {
	payload, err := json.Marshal(update)
	if err != nil {
		log.Printf("⚠️  Failed to marshal progress update: %v", err)
		return
	}

	h.mu.RLock()
	subs := h.topics[videoID]
	var stale []string
	for id, sub := range subs {
		select {
		case sub.send <- payload:
		default:
			stale = append(stale, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range stale {
		log.Printf("⚠️  Dropping slow progress subscriber %s for video %s", id, videoID)
		h.unsubscribe(videoID, id)
	}
}

// SubscriberCount reports how many connections are watching a video.
func (h *Hub) SubscriberCount(videoID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[videoID])
}

// ServeWS upgrades the request to a WebSocket and streams progress updates
// for the video until the client disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, videoID string, latest *models.ProgressUpdate) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️  WebSocket upgrade failed: %v", err)
		return
	}

	sub := h.subscribe(videoID)
	log.Printf("🔌 Progress subscriber %s connected for video %s", sub.id, videoID)

	// Send the latest known state immediately so the client doesn't wait
	// for the next transition.
	if latest != nil {
		if payload, err := json.Marshal(latest); err == nil {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.TextMessage, payload)
		}
	}

	go h.writePump(conn, videoID, sub)
	h.readPump(conn, videoID, sub)
}

func (h *Hub) subscribe(videoID string) *subscriber {
	sub := &subscriber{
		id:   uuid.NewString(),
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	if h.topics[videoID] == nil {
		h.topics[videoID] = make(map[string]*subscriber)
	}
	h.topics[videoID][sub.id] = sub
	h.mu.Unlock()

	return sub
}

func (h *Hub) unsubscribe(videoID, subID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.topics[videoID]
	sub, ok := subs[subID]
	if !ok {
		return
	}
	delete(subs, subID)
	if len(subs) == 0 {
		delete(h.topics, videoID)
	}
	close(sub.send)
}

// writePump forwards queued updates to the connection and pings it
// periodically. Exits when the subscriber is unsubscribed.
func (h *Hub) writePump(conn *websocket.Conn, videoID string, sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-sub.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames (we expect none) and unsubscribes on
// disconnect.
func (h *Hub) readPump(conn *websocket.Conn, videoID string, sub *subscriber) {
	defer func() {
		h.unsubscribe(videoID, sub.id)
		conn.Close()
		log.Printf("🔌 Progress subscriber %s disconnected from video %s", sub.id, videoID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
