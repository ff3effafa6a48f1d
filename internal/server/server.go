package server

import (
	"log"

	"github.com/gorilla/websocket"

	"github.com/sparkchat/sparkd/internal/auth"
	"github.com/sparkchat/sparkd/internal/message"
	"github.com/sparkchat/sparkd/internal/stats"
)

// ChatServer owns the connection registry and wires protocol handlers to
// the auth and message services.
type ChatServer struct {
	log      *log.Logger
	auth     *auth.Service
	messages *message.Service
	registry *Registry
	stats    stats.StatsProvider
}

func NewChatServer(logger *log.Logger, authSvc *auth.Service, msgSvc *message.Service, statsProvider stats.StatsProvider) *ChatServer {
	return &ChatServer{
		log:      logger,
		auth:     authSvc,
		messages: msgSvc,
		registry: NewRegistry(logger),
		stats:    statsProvider,
	}
}

func (cs *ChatServer) Registry() *Registry {
	return cs.registry
}

// ServeConn runs the protocol for one websocket connection. It blocks until
// the connection closes.
func (cs *ChatServer) ServeConn(conn *websocket.Conn) {
	client := NewClient(conn, cs, cs.log)
	cs.stats.Incr(stats.MetricActiveConnections)

	go client.WritePump()
	client.ReadPump()
}

func (cs *ChatServer) broadcast(roomId string, event Event) {
	cs.stats.Incr(stats.MetricBroadcasts)
	cs.registry.BroadcastToRoom(roomId, event)
}
