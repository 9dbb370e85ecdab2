package handlers

import (
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	dashboardClients   = make(map[*websocket.Conn]bool)
	dashboardClientsMu sync.RWMutex

	// gorilla connections allow a single concurrent writer
	broadcastMu sync.Mutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastRefresh tells every open dashboard that client or interaction
// data changed.
func BroadcastRefresh() {
	broadcastMu.Lock()
	defer broadcastMu.Unlock()

	dashboardClientsMu.RLock()
	if len(dashboardClients) == 0 {
		dashboardClientsMu.RUnlock()
		return
	}

	// Copy so the lock is not held while writing
	clients := make([]*websocket.Conn, 0, len(dashboardClients))
	for conn := range dashboardClients {
		clients = append(clients, conn)
	}
	dashboardClientsMu.RUnlock()

	for _, conn := range clients {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":    "refresh",
			"message": "Dashboard data updated",
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to dashboard: %v", err)
			dashboardClientsMu.Lock()
			delete(dashboardClients, conn)
			dashboardClientsMu.Unlock()
			conn.Close()
		}
	}
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	if origin == "" {
		return true
	}

	if parsed, err := url.Parse(origin); err == nil && parsed.Host == r.Host {
		return true
	}

	for _, allowed := range allowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}

func DashboardSocket(c *gin.Context) {
	upgrader := websocket.Upgrader{CheckOrigin: checkOrigin}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Register under broadcastMu so no refresh is written before the welcome
	broadcastMu.Lock()
	dashboardClientsMu.Lock()
	dashboardClients[conn] = true
	dashboardClientsMu.Unlock()

	err = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err == nil {
		err = conn.WriteJSON(map[string]string{
			"type":    "connected",
			"message": "WebSocket connection established",
		})
	}
	broadcastMu.Unlock()

	defer func() {
		dashboardClientsMu.Lock()
		delete(dashboardClients, conn)
		dashboardClientsMu.Unlock()
		conn.Close()
	}()

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Dashboard WebSocket error: %v", err)
			}
			break
		}
	}
}
