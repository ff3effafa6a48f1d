package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sparkchat/sparkd/internal/database"
	"github.com/sparkchat/sparkd/internal/types"
)

const (
	sessionTokenLength = 64
	sessionTTL         = 30 * 24 * time.Hour

	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 8
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Service manages user accounts and session tokens. Sessions are opaque
// random tokens stored server side, so logout revokes them immediately.
type Service struct {
	mu  sync.Mutex
	log *log.Logger
	db  database.Repository
}

func NewService(logger *log.Logger, db database.Repository) *Service {
	return &Service{
		log: logger,
		db:  db,
	}
}

// Register creates the account and logs the user straight in, returning a
// fresh session token alongside the user.
func (s *Service) Register(username, email, password string) (types.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return types.User{}, "", types.NewInvalidInputError(
			fmt.Sprintf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength))
	}
	if len(email) < 5 || !strings.Contains(email, "@") {
		return types.User{}, "", types.NewInvalidInputError("invalid email address")
	}
	if len(password) < minPasswordLength {
		return types.User{}, "", types.NewInvalidInputError(
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.GetUserByUsername(username)
	if err == nil {
		return types.User{}, "", types.ErrUserExists
	}
	if !errors.Is(err, database.ErrNotFound) {
		return types.User{}, "", fmt.Errorf("lookup user: %w", err)
	}

	pwdHash, err := hashPassword(password)
	if err != nil {
		return types.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.db.CreateUser(database.CreateUserParams{
		Id:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: pwdHash,
	})
	if err != nil {
		return types.User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueSession(&user)
	if err != nil {
		return types.User{}, "", err
	}

	s.log.Printf("registered user %q", user.Username)
	return userView(user), token, nil
}

// Login checks the credentials and issues a new session token.
func (s *Service) Login(username, password string) (types.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.db.GetUserByUsername(strings.TrimSpace(username))
	if errors.Is(err, database.ErrNotFound) {
		return types.User{}, "", types.ErrInvalidCredentials
	}
	if err != nil {
		return types.User{}, "", fmt.Errorf("lookup user: %w", err)
	}

	if !verifyPassword(user.PasswordHash, password) {
		return types.User{}, "", types.ErrInvalidCredentials
	}

	token, err := s.issueSession(&user)
	if err != nil {
		return types.User{}, "", err
	}

	return userView(user), token, nil
}

func (s *Service) issueSession(user *database.User) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	if _, err := s.db.CreateSession(user.Id, token, time.Now().UTC().Add(sessionTTL)); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	now := time.Now().UTC()
	if err := s.db.UpdateLastLogin(user.Id, now); err != nil {
		s.log.Printf("failed to update last login for %q: %s", user.Username, err)
	}
	user.LastLogin = &now

	return token, nil
}

// ValidateSession resolves a token to its user. Expired sessions are
// deleted on the spot and reported as invalid.
func (s *Service) ValidateSession(token string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.db.GetSessionByToken(token)
	if errors.Is(err, database.ErrNotFound) {
		return types.User{}, types.ErrInvalidSession
	}
	if err != nil {
		return types.User{}, fmt.Errorf("lookup session: %w", err)
	}

	if session.ExpiresAt.Before(time.Now().UTC()) {
		if err := s.db.DeleteSession(token); err != nil {
			s.log.Printf("failed to delete expired session: %s", err)
		}
		return types.User{}, types.ErrInvalidSession
	}

	user, err := s.db.GetUserById(session.UserId)
	if errors.Is(err, database.ErrNotFound) {
		return types.User{}, types.ErrUserNotFound
	}
	if err != nil {
		return types.User{}, fmt.Errorf("lookup user: %w", err)
	}

	return userView(user), nil
}

// Logout deletes the session. Unknown tokens are not an error.
func (s *Service) Logout(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.DeleteSession(token)
}

func (s *Service) CleanupExpiredSessions() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.DeleteExpiredSessions(time.Now().UTC())
}

func generateToken() (string, error) {
	buf := make([]byte, sessionTokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}

func userView(user database.User) types.User {
	return types.User{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		Presence:  user.Presence,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}
