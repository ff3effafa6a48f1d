package database

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sparkchat/sparkd/internal/types"
)

// MemoryRepository is an in-memory Repository used by tests. It applies the
// same uniqueness and lookup semantics as the Postgres implementation.
type MemoryRepository struct {
	mu        sync.Mutex
	users     map[string]User
	sessions  map[string]Session
	rooms     map[string]Room
	members   map[string][]RoomMember
	messages  map[string]Message
	mentions  map[string]Mention
	sessionId int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:    make(map[string]User),
		sessions: make(map[string]Session),
		rooms:    make(map[string]Room),
		members:  make(map[string][]RoomMember),
		messages: make(map[string]Message),
		mentions: make(map[string]Mention),
	}
}

func (db *MemoryRepository) CreateUser(params CreateUserParams) (User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	user := User{
		Id:           params.Id,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Presence:     types.PresenceOffline,
		CreatedAt:    time.Now().UTC(),
	}
	db.users[user.Id] = user
	return user, nil
}

func (db *MemoryRepository) GetUserByUsername(username string) (User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, user := range db.users {
		if user.Username == username {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (db *MemoryRepository) GetUserById(id string) (User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	user, ok := db.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (db *MemoryRepository) UpdateLastLogin(userId string, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if user, ok := db.users[userId]; ok {
		user.LastLogin = &at
		db.users[userId] = user
	}
	return nil
}

func (db *MemoryRepository) UpdateUserPresence(userId string, presence types.Presence) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if user, ok := db.users[userId]; ok {
		user.Presence = presence
		db.users[userId] = user
	}
	return nil
}

func (db *MemoryRepository) UpdateUserStatus(userId, status string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if user, ok := db.users[userId]; ok {
		user.Status = status
		db.users[userId] = user
	}
	return nil
}

func (db *MemoryRepository) CreateSession(userId, token string, expiresAt time.Time) (Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.sessionId++
	session := Session{
		Id:        db.sessionId,
		UserId:    userId,
		Token:     token,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}
	db.sessions[token] = session
	return session, nil
}

func (db *MemoryRepository) GetSessionByToken(token string) (Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	session, ok := db.sessions[token]
	if !ok {
		return Session{}, ErrNotFound
	}
	return session, nil
}

func (db *MemoryRepository) DeleteSession(token string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.sessions, token)
	return nil
}

func (db *MemoryRepository) DeleteExpiredSessions(now time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for token, session := range db.sessions {
		if session.ExpiresAt.Before(now) {
			delete(db.sessions, token)
		}
	}
	return nil
}

func (db *MemoryRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	room := Room{
		Id:          params.Id,
		Name:        params.Name,
		Description: params.Description,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}
	db.rooms[room.Id] = room
	return room, nil
}

func (db *MemoryRepository) GetRoomById(id string) (Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	room, ok := db.rooms[id]
	if !ok {
		return Room{}, ErrNotFound
	}
	return room, nil
}

func (db *MemoryRepository) GetAllRooms() ([]Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rooms := make([]Room, 0, len(db.rooms))
	for _, room := range db.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
	return rooms, nil
}

func (db *MemoryRepository) AddRoomMember(roomId, userId string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, m := range db.members[roomId] {
		if m.UserId == userId {
			return nil
		}
	}
	db.members[roomId] = append(db.members[roomId], RoomMember{
		RoomId:   roomId,
		UserId:   userId,
		JoinedAt: time.Now().UTC(),
	})
	return nil
}

func (db *MemoryRepository) RemoveRoomMember(roomId, userId string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	members := db.members[roomId]
	for i, m := range members {
		if m.UserId == userId {
			db.members[roomId] = append(members[:i], members[i+1:]...)
			break
		}
	}
	return nil
}

func (db *MemoryRepository) IsRoomMember(roomId, userId string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, m := range db.members[roomId] {
		if m.UserId == userId {
			return true, nil
		}
	}
	return false, nil
}

func (db *MemoryRepository) GetUserRooms(userId string) ([]Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var memberships []RoomMember
	for _, members := range db.members {
		for _, m := range members {
			if m.UserId == userId {
				memberships = append(memberships, m)
			}
		}
	}
	sort.Slice(memberships, func(i, j int) bool {
		return memberships[i].JoinedAt.Before(memberships[j].JoinedAt)
	})

	var rooms []Room
	for _, m := range memberships {
		if room, ok := db.rooms[m.RoomId]; ok {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

func (db *MemoryRepository) GetRoomMembers(roomId string) ([]User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var users []User
	for _, m := range db.members[roomId] {
		if user, ok := db.users[m.UserId]; ok {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}

func (db *MemoryRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	msg := Message{
		Id:               params.Id,
		SenderId:         params.SenderId,
		MessageType:      params.MessageType,
		RoomId:           params.RoomId,
		ReceiverId:       params.ReceiverId,
		Content:          params.Content,
		SentAt:           time.Now().UTC(),
		ReplyToMessageId: params.ReplyToMessageId,
	}
	db.messages[msg.Id] = msg
	return msg, nil
}

func (db *MemoryRepository) GetMessageById(id string) (Message, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	msg, ok := db.messages[id]
	if !ok {
		return Message{}, ErrNotFound
	}
	return msg, nil
}

func (db *MemoryRepository) GetRoomMessages(roomId string, limit, offset int) ([]Message, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var messages []Message
	for _, msg := range db.messages {
		if msg.RoomId == roomId {
			messages = append(messages, msg)
		}
	}
	return paginate(messages, limit, offset), nil
}

func (db *MemoryRepository) GetPrivateMessagesBetween(userId, otherId string, limit, offset int) ([]Message, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var messages []Message
	for _, msg := range db.messages {
		if msg.MessageType != types.MessageTypePrivate {
			continue
		}
		if (msg.SenderId == userId && msg.ReceiverId == otherId) ||
			(msg.SenderId == otherId && msg.ReceiverId == userId) {
			messages = append(messages, msg)
		}
	}
	return paginate(messages, limit, offset), nil
}

func (db *MemoryRepository) GetReceivedPrivateMessages(receiverId string, unreadOnly bool, limit, offset int) ([]Message, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var messages []Message
	for _, msg := range db.messages {
		if msg.MessageType != types.MessageTypePrivate || msg.ReceiverId != receiverId {
			continue
		}
		if unreadOnly && msg.IsRead {
			continue
		}
		messages = append(messages, msg)
	}
	return paginate(messages, limit, offset), nil
}

func (db *MemoryRepository) MarkPrivateMessageRead(messageId string, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if msg, ok := db.messages[messageId]; ok && msg.MessageType == types.MessageTypePrivate && !msg.IsRead {
		msg.IsRead = true
		msg.ReadAt = &at
		db.messages[messageId] = msg
	}
	return nil
}

func (db *MemoryRepository) MarkPrivateConversationRead(receiverId, senderId string, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for id, msg := range db.messages {
		if msg.MessageType == types.MessageTypePrivate && msg.ReceiverId == receiverId &&
			msg.SenderId == senderId && !msg.IsRead {
			msg.IsRead = true
			msg.ReadAt = &at
			db.messages[id] = msg
		}
	}
	return nil
}

func (db *MemoryRepository) CountUnreadPrivateMessages(receiverId string) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var count int64
	for _, msg := range db.messages {
		if msg.MessageType == types.MessageTypePrivate && msg.ReceiverId == receiverId && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

func (db *MemoryRepository) EditMessage(messageId, content string, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if msg, ok := db.messages[messageId]; ok {
		msg.Content = content
		msg.IsEdited = true
		msg.EditedAt = &at
		db.messages[messageId] = msg
	}
	return nil
}

func (db *MemoryRepository) DeleteMessage(messageId, senderId string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if msg, ok := db.messages[messageId]; ok && msg.SenderId == senderId {
		delete(db.messages, messageId)
	}
	return nil
}

func (db *MemoryRepository) UpdateMessageReactions(messageId string, reactions []types.Reaction) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if msg, ok := db.messages[messageId]; ok {
		msg.Reactions = reactions
		db.messages[messageId] = msg
	}
	return nil
}

func (db *MemoryRepository) PinMessage(messageId, userId string, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if msg, ok := db.messages[messageId]; ok {
		msg.IsPinned = true
		msg.PinnedAt = &at
		msg.PinnedBy = userId
		db.messages[messageId] = msg
	}
	return nil
}

func (db *MemoryRepository) UnpinMessage(messageId string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if msg, ok := db.messages[messageId]; ok {
		msg.IsPinned = false
		msg.PinnedAt = nil
		msg.PinnedBy = ""
		db.messages[messageId] = msg
	}
	return nil
}

func (db *MemoryRepository) GetPinnedMessages(roomId string) ([]Message, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var messages []Message
	for _, msg := range db.messages {
		if msg.RoomId == roomId && msg.IsPinned {
			messages = append(messages, msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].PinnedAt.After(*messages[j].PinnedAt)
	})
	return messages, nil
}

func (db *MemoryRepository) CreateMention(params CreateMentionParams) (Mention, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := time.Now().UTC()
	mention := Mention{
		Id:              params.Id,
		MessageId:       params.MessageId,
		MentionedUserId: params.MentionedUserId,
		NotifiedAt:      &now,
		CreatedAt:       now,
	}
	db.mentions[mention.Id] = mention
	return mention, nil
}

func (db *MemoryRepository) CountUnreadMentions(userId string) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var count int64
	for _, mention := range db.mentions {
		if mention.MentionedUserId == userId && !mention.IsRead {
			count++
		}
	}
	return count, nil
}

func (db *MemoryRepository) MarkMentionRead(userId, messageId string, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for id, mention := range db.mentions {
		if mention.MentionedUserId == userId && mention.MessageId == messageId && !mention.IsRead {
			mention.IsRead = true
			mention.ReadAt = &at
			db.mentions[id] = mention
		}
	}
	return nil
}

func (db *MemoryRepository) MarkRoomMentionsRead(userId, roomId string, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for id, mention := range db.mentions {
		if mention.MentionedUserId != userId || mention.IsRead {
			continue
		}
		if msg, ok := db.messages[mention.MessageId]; ok && msg.RoomId == roomId {
			mention.IsRead = true
			mention.ReadAt = &at
			db.mentions[id] = mention
		}
	}
	return nil
}

func (db *MemoryRepository) GetUserMentionMessages(userId string, limit, offset int) ([]Message, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	seen := make(map[string]struct{})
	var messages []Message
	for _, mention := range db.mentions {
		if mention.MentionedUserId != userId {
			continue
		}
		if _, ok := seen[mention.MessageId]; ok {
			continue
		}
		seen[mention.MessageId] = struct{}{}
		if msg, ok := db.messages[mention.MessageId]; ok {
			messages = append(messages, msg)
		}
	}
	return paginate(messages, limit, offset), nil
}

// paginate sorts newest first and applies limit and offset, matching the
// SQL queries.
func paginate(messages []Message, limit, offset int) []Message {
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].SentAt.Equal(messages[j].SentAt) {
			return strings.Compare(messages[i].Id, messages[j].Id) > 0
		}
		return messages[i].SentAt.After(messages[j].SentAt)
	})
	if offset >= len(messages) {
		return nil
	}
	messages = messages[offset:]
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages
}
