package server

import (
	"fmt"
	"log"
	"sync"

	"github.com/sparkchat/sparkd/internal/types"
)

// Registry tracks live connections, their room subscriptions and the
// per-room typing sets. It is a cache of "connected and joined" state only;
// persisted membership stays authoritative for access control.
type Registry struct {
	mu      sync.RWMutex
	log     *log.Logger
	clients map[string]*Client
	rooms   map[string]map[string]struct{}
	typing  map[string]map[string]struct{}
}

func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		log:     logger,
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]struct{}),
		typing:  make(map[string]map[string]struct{}),
	}
}

func (r *Registry) AddClient(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[c.user.Id] = c
}

// RemoveClient drops the connection and purges the user from every room
// subscription and typing set.
func (r *Registry) RemoveClient(userId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, userId)
	for roomId, members := range r.rooms {
		delete(members, userId)
		if len(members) == 0 {
			delete(r.rooms, roomId)
		}
	}
	for roomId, typers := range r.typing {
		delete(typers, userId)
		if len(typers) == 0 {
			delete(r.typing, roomId)
		}
	}
}

func (r *Registry) JoinRoom(roomId, userId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.joinRoomLocked(roomId, userId)
}

func (r *Registry) joinRoomLocked(roomId, userId string) error {
	if _, ok := r.clients[userId]; !ok {
		return fmt.Errorf("client not found")
	}
	if r.rooms[roomId] == nil {
		r.rooms[roomId] = make(map[string]struct{})
	}
	r.rooms[roomId][userId] = struct{}{}
	return nil
}

func (r *Registry) LeaveRoom(roomId, userId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[userId]; !ok {
		return fmt.Errorf("client not found")
	}
	if members, ok := r.rooms[roomId]; ok {
		delete(members, userId)
		if len(members) == 0 {
			delete(r.rooms, roomId)
		}
	}
	if typers, ok := r.typing[roomId]; ok {
		delete(typers, userId)
		if len(typers) == 0 {
			delete(r.typing, roomId)
		}
	}
	return nil
}

// RestoreRooms bulk-subscribes a freshly authenticated connection to its
// persisted rooms.
func (r *Registry) RestoreRooms(userId string, roomIds []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, roomId := range roomIds {
		if err := r.joinRoomLocked(roomId, userId); err != nil {
			return err
		}
	}
	return nil
}

// BroadcastToRoom queues the event on every subscribed connection. Delivery
// is best-effort: a full or closed channel is skipped, never an error.
func (r *Registry) BroadcastToRoom(roomId string, event Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for userId := range r.rooms[roomId] {
		client, ok := r.clients[userId]
		if !ok {
			continue
		}
		if !client.queueEvent(event) {
			r.log.Printf("dropped event for user %s in room %s", userId, roomId)
		}
	}
}

// SendToUser queues the event on the user's connection if they are online.
func (r *Registry) SendToUser(userId string, event Event) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[userId]
	if !ok {
		return false
	}
	return client.queueEvent(event)
}

func (r *Registry) IsConnected(userId string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.clients[userId]
	return ok
}

// ClientRooms returns the room ids the user's connection is subscribed to.
func (r *Registry) ClientRooms(userId string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var roomIds []string
	for roomId, members := range r.rooms {
		if _, ok := members[userId]; ok {
			roomIds = append(roomIds, roomId)
		}
	}
	return roomIds
}

// SetTyping marks the user as typing (or not) in a room they are subscribed
// to.
func (r *Registry) SetTyping(userId, roomId string, isTyping bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomId]
	if !ok {
		return fmt.Errorf("not subscribed to room")
	}
	if _, ok := members[userId]; !ok {
		return fmt.Errorf("not subscribed to room")
	}

	if isTyping {
		if r.typing[roomId] == nil {
			r.typing[roomId] = make(map[string]struct{})
		}
		r.typing[roomId][userId] = struct{}{}
	} else if typers, ok := r.typing[roomId]; ok {
		delete(typers, userId)
		if len(typers) == 0 {
			delete(r.typing, roomId)
		}
	}
	return nil
}

// TypingUsers returns who is currently typing in the room.
func (r *Registry) TypingUsers(roomId string) []types.TypingUser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typers := make([]types.TypingUser, 0, len(r.typing[roomId]))
	for userId := range r.typing[roomId] {
		client, ok := r.clients[userId]
		if !ok {
			continue
		}
		typers = append(typers, types.TypingUser{
			UserId:   userId,
			Username: client.user.Username,
		})
	}
	return typers
}
