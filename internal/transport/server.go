package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server upgrades HTTP requests on the companion endpoint to WebSockets.
type Server struct {
	tracker      *Tracker
	handler      PushHandler
	onResult     ResultFunc
	writeTimeout time.Duration
	logger       *zap.Logger
	upgrader     websocket.Upgrader
}

// NewServer builds the companion websocket server.
func NewServer(tracker *Tracker, handler PushHandler, onResult ResultFunc, writeTimeout time.Duration, logger *zap.Logger) *Server {
	return &Server{
		tracker:      tracker,
		handler:      handler,
		onResult:     onResult,
		writeTimeout: writeTimeout,
		logger:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS is the HTTP handler for the companion websocket endpoint.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	var conn *Connection
	conn = NewConnection(ws, s.handler, s.onResult, s.writeTimeout, s.logger, func() {
		s.tracker.Clear(conn)
		cancel()
	})
	s.tracker.Set(conn)

	go conn.Start(ctx)
	s.logger.Info("companion connected", zap.String("remote", r.RemoteAddr))
}
