package web

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The host filter middleware already gates who reaches us
		return true
	},
}

// LiveFeed pushes review events to connected websocket clients
type LiveFeed struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

var (
	feed     *LiveFeed
	feedOnce sync.Once
)

// Feed returns the global live feed, creating it on first use
func Feed() *LiveFeed {
	feedOnce.Do(func() {
		feed = &LiveFeed{clients: make(map[*websocket.Conn]struct{})}
	})
	return feed
}

// SetupLiveFeed registers the websocket endpoint on the server
func SetupLiveFeed(s *Server) {
	s.GET("/api/whitelist/live", Feed().handleUpgrade)
}

func (f *LiveFeed) handleUpgrade(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Fallo al abrir websocket: "+err.Error(), "LiveFeed")
		return
	}

	f.mu.Lock()
	f.clients[conn] = struct{}{}
	total := len(f.clients)
	f.mu.Unlock()

	logger.Debug("Cliente de feed conectado, total: "+strconv.Itoa(total), "LiveFeed")

	// Drain reads so pings and close frames get processed
	go func() {
		defer f.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (f *LiveFeed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	_ = conn.Close()
}

// Broadcast sends a review event to every connected client. Clients
// whose write fails get dropped
func (f *LiveFeed) Broadcast(event models.ReviewEvent) {
	f.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(f.clients))
	for conn := range f.clients {
		conns = append(conns, conn)
	}
	f.mu.Unlock()

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(event); err != nil {
			f.drop(conn)
		}
	}
}

// ClientCount returns how many websocket clients are connected
func (f *LiveFeed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}
