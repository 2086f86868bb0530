package web

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// LiveClient is a headless consumer of the /ws/live feed, for tooling
// that wants samples without a browser.
type LiveClient struct {
	url string

	mu     sync.Mutex
	ws     *websocket.Conn
	closed bool
}

// NewLiveClient creates a client for the dashboard at host:port.
func NewLiveClient(addr string) *LiveClient {
	return &LiveClient{url: fmt.Sprintf("ws://%s/ws/live", addr)}
}

// Connect dials the live websocket.
func (c *LiveClient) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	ws, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("web: connect live feed: %w", err)
	}

	c.mu.Lock()
	c.ws = ws
	c.closed = false
	c.mu.Unlock()
	return nil
}

// Next blocks until the next update arrives.
func (c *LiveClient) Next() (LiveUpdate, error) {
	c.mu.Lock()
	ws := c.ws
	c.mu.Unlock()
	if ws == nil {
		return LiveUpdate{}, fmt.Errorf("web: not connected")
	}

	_, data, err := ws.ReadMessage()
	if err != nil {
		return LiveUpdate{}, fmt.Errorf("web: read live feed: %w", err)
	}

	var u LiveUpdate
	if err := json.Unmarshal(data, &u); err != nil {
		return LiveUpdate{}, fmt.Errorf("web: decode live update: %w", err)
	}
	return u, nil
}

// Close shuts the connection down.
func (c *LiveClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.ws == nil {
		return nil
	}
	c.closed = true
	return c.ws.Close()
}
