package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/supplysight/sync-agent/internal/config"
	"github.com/supplysight/sync-agent/internal/version"
	"github.com/supplysight/sync-agent/pkg/types"
)

type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Handler receives a decoded update frame. Handlers for the same event type
// run in registration order on the read goroutine, so they should return
// quickly and hand anything slow to their own goroutine.
type Handler func(types.Update)

type subscription struct {
	id      int
	handler Handler
}

// Client maintains one WebSocket connection to the backend's /ws feed and
// fans inbound frames out to subscribers by event type.
//
// The connection is reference counted: it opens when the first subscriber
// registers and closes only after the last one unsubscribes, so no single
// consumer's teardown can kill the feed for everyone else. Reconnection is
// bounded; once the retry budget is spent the client stays down until
// Connect is called again.
type Client struct {
	config *config.Config

	mu        sync.Mutex
	conn      *websocket.Conn
	state     State
	attempts  int
	refs      int
	nextID    int
	listeners map[string][]subscription
	timer     *time.Timer
	closed    bool
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		config:    cfg,
		state:     StateDisconnected,
		listeners: make(map[string][]subscription),
	}
}

// Subscribe registers a handler for one event type and returns an unsubscribe
// func. The first subscription triggers a connection attempt.
func (c *Client) Subscribe(eventType string, handler Handler) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[eventType] = append(c.listeners[eventType], subscription{id: id, handler: handler})
	c.refs++
	first := c.refs == 1 && !c.closed
	c.mu.Unlock()

	if first {
		go c.dial()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			c.unsubscribe(eventType, id)
		})
	}
}

func (c *Client) unsubscribe(eventType string, id int) {
	c.mu.Lock()

	subs := c.listeners[eventType]
	for i, sub := range subs {
		if sub.id == id {
			c.listeners[eventType] = append(subs[:i:i], subs[i+1:]...)
			c.refs--
			break
		}
	}

	if c.refs > 0 {
		c.mu.Unlock()
		return
	}

	// Last subscriber gone: release the connection.
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.attempts = 0
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

// Connect dials the backend, resetting the reconnect budget. Use it to revive
// a client that has exhausted its automatic retries.
func (c *Client) Connect() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("websocket client is closed")
	}
	c.attempts = 0
	c.mu.Unlock()

	return c.dial()
}

func (c *Client) dial() error {
	c.mu.Lock()
	if c.closed || c.state != StateDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.state = StateConnecting
	c.mu.Unlock()

	scheme := "ws"
	if c.config.TLSEnabled {
		scheme = "wss"
	}

	u := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", c.config.BackendHost, c.config.BackendPort),
		Path:   "/ws",
	}

	headers := http.Header{}
	headers.Set("X-Bridge-ID", c.config.BridgeID)
	headers.Set("User-Agent", fmt.Sprintf("sync-bridge/%s", version.GetVersion()))
	if c.config.Token != "" {
		headers.Set("X-Bridge-Token", c.config.Token)
	}

	debugLog(c.config, "Connecting to WebSocket: %s", u.String())

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), headers)
	if err != nil {
		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()

		if resp != nil {
			log.Printf("WebSocket connection failed: %v (status: %s)", err, resp.Status)
		} else {
			log.Printf("WebSocket connection failed: %v", err)
		}

		c.scheduleReconnect()
		return fmt.Errorf("websocket connection failed: %w", err)
	}

	c.mu.Lock()
	if c.closed || c.refs == 0 {
		// Everyone left while we were dialing.
		c.state = StateDisconnected
		c.mu.Unlock()
		conn.Close()
		return nil
	}
	c.conn = conn
	c.state = StateConnected
	c.attempts = 0
	c.mu.Unlock()

	log.Printf("WebSocket connected successfully")

	go c.readLoop(conn)
	return nil
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			debugLog(c.config, "WebSocket read error: %v", err)
			c.handleDisconnection(conn)
			return
		}

		var update types.Update
		if err := json.Unmarshal(data, &update); err != nil {
			// Frames are independent: a bad one is dropped, the stream lives on.
			log.Printf("Dropping malformed WebSocket frame: %v", err)
			continue
		}

		c.dispatch(update)
	}
}

func (c *Client) dispatch(update types.Update) {
	c.mu.Lock()
	subs := c.listeners[update.Type]
	handlers := make([]Handler, len(subs))
	for i, sub := range subs {
		handlers[i] = sub.handler
	}
	c.mu.Unlock()

	if len(handlers) == 0 {
		debugLog(c.config, "No subscribers for event type %q", update.Type)
		return
	}

	for _, handler := range handlers {
		handler(update)
	}
}

func (c *Client) handleDisconnection(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn != conn {
		// A stale read loop for a connection already replaced or torn down.
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = nil
	c.state = StateDisconnected
	wanted := c.refs > 0 && !c.closed
	c.mu.Unlock()

	conn.Close()

	if wanted {
		c.scheduleReconnect()
	}
}

func (c *Client) scheduleReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.refs == 0 || c.state != StateDisconnected {
		return
	}

	if c.attempts >= c.config.MaxReconnectAttempts {
		log.Printf("WebSocket reconnect budget exhausted after %d attempts, staying disconnected", c.attempts)
		return
	}

	c.attempts++
	// Exponential backoff: delay, 2*delay, 4*delay, ...
	delay := c.config.ReconnectDelay * time.Duration(1<<(c.attempts-1))

	log.Printf("Scheduling WebSocket reconnect attempt %d/%d in %s",
		c.attempts, c.config.MaxReconnectAttempts, delay)

	c.timer = time.AfterFunc(delay, func() {
		c.dial()
	})
}

// State reports the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribers reports the number of registered handlers.
func (c *Client) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refs
}

// Close tears the client down for good, regardless of subscriber count.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}
