package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/sparkchat/sparkd/internal/auth"
	"github.com/sparkchat/sparkd/internal/config"
	"github.com/sparkchat/sparkd/internal/server"
)

// Server exposes the auth RPC endpoints and the websocket entry point.
// Everything past the upgrade is handled in-protocol by the chat server.
type Server struct {
	log            *log.Logger
	auth           *auth.Service
	cs             *server.ChatServer
	mux            *http.Server
	allowedOrigins []string
}

func NewServer(logger *log.Logger, authSvc *auth.Service, cs *server.ChatServer, cfg *config.Config, mux *http.ServeMux) *Server {
	s := &Server{
		log:            logger,
		auth:           authSvc,
		cs:             cs,
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("POST /api/auth/validate", s.validate)
	mux.HandleFunc("POST /api/auth/logout", s.logout)
	mux.HandleFunc("GET /ws", s.serveWs)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	s.mux = &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}
	return s
}

// Handler returns the fully wrapped handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.mux.Handler
}

func (s *Server) Start() error {
	s.log.Printf("starting server on %s", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Println("server shutdown complete")
	return nil
}
