// Package websocket pushes newly published comments to readers watching
// a post, so comment sections update without polling.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"bloghub/pkg/logger"
	"bloghub/pkg/models"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxFeedSize     = 1000
	cleanupInterval = 5 * time.Minute
)

// Event is one message pushed to feed subscribers
type Event struct {
	Type      string          `json:"type"` // "comment"
	PostID    string          `json:"post_id"`
	Comment   *models.Comment `json:"comment,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub fans comment events out to per-post feeds
type Hub struct {
	feedsMu sync.RWMutex
	feeds   map[string]*feed
	stop    chan struct{}
	wg      sync.WaitGroup
}

// feed is the set of clients watching one post
type feed struct {
	postID     string
	clientsMu  sync.RWMutex
	clients    map[*client]bool
	broadcast  chan *Event
	register   chan *client
	unregister chan *client
	stopped    bool
	stop       chan struct{}
	done       chan struct{}
}

type client struct {
	feed *feed
	conn *websocket.Conn
	send chan *Event
}

// NewHub creates the feed hub and starts the idle-feed sweeper
func NewHub() *Hub {
	hub := &Hub{
		feeds: make(map[string]*feed),
		stop:  make(chan struct{}),
	}

	hub.wg.Add(1)
	go hub.cleanupFeeds()

	return hub
}

// cleanupFeeds periodically drops feeds nobody is watching
func (h *Hub) cleanupFeeds() {
	defer h.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.feedsMu.Lock()
			for postID, f := range h.feeds {
				f.clientsMu.RLock()
				count := len(f.clients)
				f.clientsMu.RUnlock()

				if count == 0 {
					close(f.stop)
					delete(h.feeds, postID)
					logger.Debugf("dropped idle comment feed for post %s", postID)
				}
			}
			h.feedsMu.Unlock()

		case <-h.stop:
			return
		}
	}
}

func (h *Hub) getOrCreateFeed(postID string) *feed {
	h.feedsMu.Lock()
	defer h.feedsMu.Unlock()

	if f, exists := h.feeds[postID]; exists {
		return f
	}

	f := &feed{
		postID:     postID,
		clients:    make(map[*client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	h.feeds[postID] = f
	go f.run()

	return f
}

// PublishComment notifies everyone watching the post. A post nobody is
// watching costs nothing.
func (h *Hub) PublishComment(comment *models.Comment) {
	h.feedsMu.RLock()
	f, exists := h.feeds[comment.PostID]
	h.feedsMu.RUnlock()
	if !exists {
		return
	}

	event := &Event{
		Type:      "comment",
		PostID:    comment.PostID,
		Comment:   comment,
		Timestamp: time.Now(),
	}

	select {
	case f.broadcast <- event:
	default:
		logger.Warnf("comment feed for post %s is saturated, dropping event", comment.PostID)
	}
}

func (f *feed) run() {
	defer close(f.done)

	for {
		select {
		case c := <-f.register:
			f.handleRegister(c)
		case c := <-f.unregister:
			f.handleUnregister(c)
		case event := <-f.broadcast:
			f.broadcastToAll(event)
		case <-f.stop:
			f.handleStop()
			return
		}
	}
}

func (f *feed) handleRegister(c *client) {
	if f.stopped {
		return
	}

	f.clientsMu.Lock()
	if len(f.clients) >= maxFeedSize {
		f.clientsMu.Unlock()
		logger.Warnf("comment feed for post %s is full, rejecting subscriber", f.postID)
		c.conn.Close()
		return
	}
	f.clients[c] = true
	f.clientsMu.Unlock()
}

func (f *feed) handleUnregister(c *client) {
	if f.stopped {
		return
	}

	f.clientsMu.Lock()
	if _, ok := f.clients[c]; ok {
		delete(f.clients, c)
		close(c.send)
	}
	f.clientsMu.Unlock()
}

func (f *feed) handleStop() {
	f.stopped = true

	f.clientsMu.Lock()
	for c := range f.clients {
		close(c.send)
		c.conn.Close()
	}
	f.clients = nil
	f.clientsMu.Unlock()
}

func (f *feed) broadcastToAll(event *Event) {
	if f.stopped {
		return
	}

	f.clientsMu.RLock()
	defer f.clientsMu.RUnlock()

	for c := range f.clients {
		select {
		case c.send <- event:
		default:
			// Slow subscriber, drop it rather than block the feed
			go func(c *client) {
				select {
				case f.unregister <- c:
				case <-f.stop:
				}
			}(c)
		}
	}
}

// removeFeed drops the feed from the map unless it was already replaced
func (h *Hub) removeFeed(postID string, f *feed) {
	h.feedsMu.Lock()
	if h.feeds[postID] == f {
		delete(h.feeds, postID)
	}
	h.feedsMu.Unlock()
}

// Subscribe attaches a connection to the post's feed and starts its pumps
func (h *Hub) Subscribe(conn *websocket.Conn, postID string) {
	c := &client{
		conn: conn,
		send: make(chan *Event, 64),
	}

	// The idle sweeper can stop the feed between lookup and registration,
	// leaving nothing to receive on register. Guard the send with the
	// feed's stop channel and retry on a fresh feed.
	var f *feed
	for {
		f = h.getOrCreateFeed(postID)
		select {
		case f.register <- c:
		case <-f.stop:
			h.removeFeed(postID, f)
			continue
		}
		break
	}
	c.feed = f

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		c.writePump()
	}()
	go func() {
		defer h.wg.Done()
		c.readPump()
	}()
}

// FeedSize reports how many clients are watching a post
func (h *Hub) FeedSize(postID string) int {
	h.feedsMu.RLock()
	defer h.feedsMu.RUnlock()

	if f, exists := h.feeds[postID]; exists {
		f.clientsMu.RLock()
		defer f.clientsMu.RUnlock()
		return len(f.clients)
	}
	return 0
}

// Stop shuts down every feed and waits for the pumps to drain
func (h *Hub) Stop() {
	close(h.stop)

	h.feedsMu.Lock()
	for _, f := range h.feeds {
		close(f.stop)
	}
	h.feedsMu.Unlock()

	h.wg.Wait()
}

// readPump discards client input. The feed is one-way, but reading is
// still required to process pongs and notice disconnects.
func (c *client) readPump() {
	defer func() {
		// The feed may already be stopped, never block on a dead loop
		select {
		case c.feed.unregister <- c:
		case <-c.feed.stop:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debugf("comment feed read error: %v", err)
			}
			break
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				logger.Errorf("failed to marshal feed event: %v", err)
				continue
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.feed.stop:
			return
		}
	}
}
