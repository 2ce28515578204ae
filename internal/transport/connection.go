package transport

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"glucoface/internal/protocol"
)

// ErrSendBusy is returned when the outbound buffer has no room, the
// message-sized-link equivalent of resource exhaustion.
var ErrSendBusy = errors.New("transport: send buffer full")

// ErrConnClosed is returned when the write pump has exited and the
// connection can no longer deliver messages.
var ErrConnClosed = errors.New("transport: connection closed")

// PushHandler consumes decoded companion pushes. Implementations post into
// the engine loop; the transport never touches engine state directly.
type PushHandler interface {
	HandlePush(push *protocol.Push)
	HandleDropped(reason error)
}

// ResultFunc receives the outcome of each started send.
type ResultFunc func(err error)

// Connection wraps one companion websocket with read/write pumps.
type Connection struct {
	ws           *websocket.Conn
	send         chan []byte
	handler      PushHandler
	onResult     ResultFunc
	writeTimeout time.Duration
	logger       *zap.Logger
	onClose      func()

	mu     sync.Mutex
	closed bool
}

// NewConnection builds the wrapper around an upgraded websocket.
func NewConnection(ws *websocket.Conn, handler PushHandler, onResult ResultFunc, writeTimeout time.Duration, logger *zap.Logger, onClose func()) *Connection {
	return &Connection{
		ws:           ws,
		send:         make(chan []byte, 8),
		handler:      handler,
		onResult:     onResult,
		writeTimeout: writeTimeout,
		logger:       logger,
		onClose:      onClose,
	}
}

// Start launches the write pump and blocks on the read pump.
func (c *Connection) Start(ctx context.Context) {
	go c.writePump(ctx)
	c.readPump(ctx)
}

func (c *Connection) readPump(ctx context.Context) {
	defer c.cleanup()
	c.ws.SetReadLimit(4096)
	c.ws.SetReadDeadline(time.Now().Add(90 * time.Second))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, message, err := c.ws.ReadMessage()
		if err != nil {
			c.logger.Info("companion connection closed", zap.Error(err))
			return
		}

		push, err := protocol.DecodePush(message)
		if err != nil {
			// Observed only; the next tick requests fresh data anyway.
			c.handler.HandleDropped(err)
			continue
		}
		c.handler.HandlePush(push)
	}
}

func (c *Connection) writePump(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer c.failPending()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.send:
			err := c.write(websocket.TextMessage, msg)
			c.onResult(err)
			if err != nil {
				_ = c.ws.Close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				_ = c.ws.Close()
				return
			}
		}
	}
}

// failPending marks the connection unwritable and reports a failure for
// every message still queued, so no send is ever left without a result.
// Runs exactly once, on write pump exit.
func (c *Connection) failPending() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	for {
		select {
		case <-c.send:
			c.onResult(ErrConnClosed)
		default:
			return
		}
	}
}

func (c *Connection) write(messageType int, payload []byte) error {
	c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.ws.WriteMessage(messageType, payload)
}

// Send enqueues a message. A full buffer or an exited write pump fails the
// start synchronously. The mutex orders Send against failPending: anything
// enqueued before the pump exits is drained with a failure result there.
func (c *Connection) Send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- msg:
		return nil
	default:
		return ErrSendBusy
	}
}

func (c *Connection) cleanup() {
	_ = c.ws.Close()
	if c.onClose != nil {
		c.onClose()
	}
}
