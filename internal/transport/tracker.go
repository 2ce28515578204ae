package transport

import (
	"errors"
	"sync"
)

// ErrNotConnected is returned when no companion link is up.
var ErrNotConnected = errors.New("transport: companion not connected")

// Tracker keeps the single active companion connection. A new connection
// replaces the old one; sends with no connection fail synchronously so the
// retry discipline can latch the failure.
type Tracker struct {
	mu   sync.Mutex
	conn *Connection
}

// NewTracker builds an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Set installs the active connection.
func (t *Tracker) Set(conn *Connection) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conn = conn
}

// Clear removes conn if it is still the active one.
func (t *Tracker) Clear(conn *Connection) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == conn {
		t.conn = nil
	}
}

// Send forwards to the active connection.
func (t *Tracker) Send(payload []byte) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}
	return conn.Send(payload)
}
