package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/sparkchat/sparkd/internal/types"
)

const (
	statusSuccess = "Success"
	statusError   = "Error"
)

type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func successResponse(data any) Response {
	return Response{Status: statusSuccess, Data: data}
}

func errorResponse(message string) Response {
	return Response{Status: statusError, Message: message}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenRequest struct {
	Token string `json:"token"`
}

// SessionData is the payload returned by register and login.
type SessionData struct {
	User  types.User `json:"user"`
	Token string     `json:"token"`
}

func (s *Server) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

// writeError maps business failures onto HTTP status codes; anything
// unrecognized is reported as a generic database error.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case types.IsInvalidInput(err):
		s.writeJson(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, types.ErrUserExists):
		s.writeJson(w, http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, types.ErrInvalidCredentials),
		errors.Is(err, types.ErrInvalidSession),
		errors.Is(err, types.ErrUserNotFound):
		s.writeJson(w, http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		s.log.Printf("internal error: %v", err)
		s.writeJson(w, http.StatusInternalServerError, errorResponse("database error"))
	}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJson(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	user, token, err := s.auth.Register(req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJson(w, http.StatusCreated, successResponse(SessionData{User: user, Token: token}))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJson(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	user, token, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJson(w, http.StatusOK, successResponse(SessionData{User: user, Token: token}))
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJson(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	user, err := s.auth.ValidateSession(req.Token)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJson(w, http.StatusOK, successResponse(user))
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJson(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	if err := s.auth.Logout(req.Token); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJson(w, http.StatusOK, successResponse(nil))
}

// serveWs upgrades the connection and hands it to the chat server. No HTTP
// auth here; the protocol authenticates in-band.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			return slices.Contains(s.allowedOrigins, origin)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Println("ws upgrade:", err)
		return
	}

	s.cs.ServeConn(conn)
}
