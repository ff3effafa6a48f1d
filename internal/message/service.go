package message

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teris-io/shortid"

	"github.com/sparkchat/sparkd/internal/database"
	"github.com/sparkchat/sparkd/internal/types"
)

const (
	maxContentLength = 10_000
	maxRoomNameLen   = 100
	maxStatusLen     = 100

	defaultHistoryLimit = 50
	defaultMentionLimit = 100
	maxPageLimit        = 100

	// display name attached to server announcements
	serverSenderName = "Server"
)

// Service implements chat semantics on top of the Repository. Rooms,
// messages, reactions, pins, private messages and mentions all go through
// here; connection state does not.
type Service struct {
	mu  sync.Mutex
	log *log.Logger
	db  database.Repository

	generateRoomId func() (string, error)
}

func NewService(logger *log.Logger, db database.Repository) *Service {
	return &Service{
		log:            logger,
		db:             db,
		generateRoomId: shortid.Generate,
	}
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", types.NewInvalidInputError("message content cannot be empty")
	}
	if len(content) > maxContentLength {
		return "", types.NewInvalidInputError(
			fmt.Sprintf("message content cannot exceed %d characters", maxContentLength))
	}
	return content, nil
}

func clampPage(limit, offset, defaultLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *Service) CreateRoom(userId, name, description string) (types.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Room{}, types.NewInvalidInputError("room name cannot be empty")
	}
	if len(name) > maxRoomNameLen {
		return types.Room{}, types.NewInvalidInputError(
			fmt.Sprintf("room name cannot exceed %d characters", maxRoomNameLen))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	roomId, err := s.generateRoomId()
	if err != nil {
		return types.Room{}, fmt.Errorf("generate room id: %w", err)
	}

	room, err := s.db.CreateRoom(database.CreateRoomParams{
		Id:          roomId,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   userId,
	})
	if err != nil {
		return types.Room{}, fmt.Errorf("create room: %w", err)
	}

	if err := s.db.AddRoomMember(room.Id, userId); err != nil {
		return types.Room{}, fmt.Errorf("add creator to room: %w", err)
	}

	s.log.Printf("room %q created by %s", room.Name, userId)
	return roomView(room), nil
}

func (s *Service) GetRoom(roomId string) (types.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.getRoom(roomId)
	if err != nil {
		return types.Room{}, err
	}
	return roomView(room), nil
}

func (s *Service) GetAllRooms() ([]types.RoomInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := s.db.GetAllRooms()
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return roomInfos(rooms), nil
}

func (s *Service) GetUserRooms(userId string) ([]types.RoomInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := s.db.GetUserRooms(userId)
	if err != nil {
		return nil, fmt.Errorf("list user rooms: %w", err)
	}
	return roomInfos(rooms), nil
}

// JoinRoom adds the user to the room's member list. Joining a room twice
// is a no-op.
func (s *Service) JoinRoom(roomId, userId string) (types.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.getRoom(roomId)
	if err != nil {
		return types.Room{}, err
	}

	if err := s.db.AddRoomMember(roomId, userId); err != nil {
		return types.Room{}, fmt.Errorf("add room member: %w", err)
	}
	return roomView(room), nil
}

func (s *Service) LeaveRoom(roomId, userId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getRoom(roomId); err != nil {
		return err
	}
	if err := s.db.RemoveRoomMember(roomId, userId); err != nil {
		return fmt.Errorf("remove room member: %w", err)
	}
	return nil
}

func (s *Service) GetRoomMembers(roomId string) ([]types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getRoom(roomId); err != nil {
		return nil, err
	}

	members, err := s.db.GetRoomMembers(roomId)
	if err != nil {
		return nil, fmt.Errorf("list room members: %w", err)
	}

	users := make([]types.User, 0, len(members))
	for _, m := range members {
		users = append(users, types.User{
			Id:       m.Id,
			Username: m.Username,
			Presence: m.Presence,
			Status:   m.Status,
		})
	}
	return users, nil
}

func (s *Service) IsRoomMember(roomId, userId string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.IsRoomMember(roomId, userId)
}

// SendRoomMessage persists a message to a room the sender belongs to and
// records a mention row for every resolved @name. It returns the rendered
// message and the ids of the mentioned users.
func (s *Service) SendRoomMessage(senderId, roomId, content, replyTo string) (types.RoomMessage, []string, error) {
	content, err := validateContent(content)
	if err != nil {
		return types.RoomMessage{}, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.getRoom(roomId)
	if err != nil {
		return types.RoomMessage{}, nil, err
	}

	isMember, err := s.db.IsRoomMember(roomId, senderId)
	if err != nil {
		return types.RoomMessage{}, nil, fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return types.RoomMessage{}, nil, types.NewInvalidInputError("you are not a member of this room")
	}

	if replyTo != "" {
		parent, err := s.db.GetMessageById(replyTo)
		if errors.Is(err, database.ErrNotFound) || (err == nil && parent.RoomId != roomId) {
			return types.RoomMessage{}, nil, types.NewInvalidInputError("reply target not found in this room")
		}
		if err != nil {
			return types.RoomMessage{}, nil, fmt.Errorf("lookup reply target: %w", err)
		}
	}

	members, err := s.db.GetRoomMembers(roomId)
	if err != nil {
		return types.RoomMessage{}, nil, fmt.Errorf("list room members: %w", err)
	}
	mentioned, err := s.resolveMentions(content, members, senderId)
	if err != nil {
		return types.RoomMessage{}, nil, err
	}

	msg, err := s.db.CreateMessage(database.CreateMessageParams{
		Id:               uuid.NewString(),
		SenderId:         senderId,
		MessageType:      types.MessageTypeRoom,
		RoomId:           roomId,
		Content:          content,
		ReplyToMessageId: replyTo,
	})
	if err != nil {
		return types.RoomMessage{}, nil, fmt.Errorf("create message: %w", err)
	}

	mentionedIds := make([]string, 0, len(mentioned))
	for _, user := range mentioned {
		if _, err := s.db.CreateMention(database.CreateMentionParams{
			Id:              uuid.NewString(),
			MessageId:       msg.Id,
			MentionedUserId: user.Id,
		}); err != nil {
			return types.RoomMessage{}, nil, fmt.Errorf("create mention: %w", err)
		}
		mentionedIds = append(mentionedIds, user.Id)
	}

	rendered, err := s.renderRoomMessage(room, msg, newUsernameCache())
	if err != nil {
		return types.RoomMessage{}, nil, err
	}
	return rendered, mentionedIds, nil
}

// SendRoomAnnouncement persists a server message, such as a join or leave
// notice. Announcements never carry mentions.
func (s *Service) SendRoomAnnouncement(actorId, roomId, content string) (types.RoomMessage, error) {
	content, err := validateContent(content)
	if err != nil {
		return types.RoomMessage{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.getRoom(roomId)
	if err != nil {
		return types.RoomMessage{}, err
	}

	msg, err := s.db.CreateMessage(database.CreateMessageParams{
		Id:          uuid.NewString(),
		SenderId:    actorId,
		MessageType: types.MessageTypeServer,
		RoomId:      roomId,
		Content:     content,
	})
	if err != nil {
		return types.RoomMessage{}, fmt.Errorf("create announcement: %w", err)
	}

	return s.renderRoomMessage(room, msg, newUsernameCache())
}

// GetRoomMessages returns the room's history newest first. Only members can
// read it.
func (s *Service) GetRoomMessages(userId, roomId string, limit, offset int) ([]types.RoomMessage, error) {
	limit, offset = clampPage(limit, offset, defaultHistoryLimit)

	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.getRoom(roomId)
	if err != nil {
		return nil, err
	}

	isMember, err := s.db.IsRoomMember(roomId, userId)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return nil, types.NewInvalidInputError("you are not a member of this room")
	}

	messages, err := s.db.GetRoomMessages(roomId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get room messages: %w", err)
	}

	return s.renderRoomMessages(room, messages)
}

func (s *Service) SendPrivateMessage(senderId, receiverId, content string) (types.PrivateMessage, error) {
	content, err := validateContent(content)
	if err != nil {
		return types.PrivateMessage{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.GetUserById(receiverId); errors.Is(err, database.ErrNotFound) {
		return types.PrivateMessage{}, types.NewInvalidInputError("recipient not found")
	} else if err != nil {
		return types.PrivateMessage{}, fmt.Errorf("lookup recipient: %w", err)
	}

	msg, err := s.db.CreateMessage(database.CreateMessageParams{
		Id:          uuid.NewString(),
		SenderId:    senderId,
		MessageType: types.MessageTypePrivate,
		ReceiverId:  receiverId,
		Content:     content,
	})
	if err != nil {
		return types.PrivateMessage{}, fmt.Errorf("create private message: %w", err)
	}

	return s.renderPrivateMessage(msg, newUsernameCache())
}

// GetPrivateMessages returns the conversation with withUserId when set, or
// the user's received inbox otherwise. unreadOnly applies to the inbox view.
func (s *Service) GetPrivateMessages(userId, withUserId string, unreadOnly bool, limit, offset int) ([]types.PrivateMessage, error) {
	limit, offset = clampPage(limit, offset, defaultHistoryLimit)

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		messages []database.Message
		err      error
	)
	if withUserId != "" {
		messages, err = s.db.GetPrivateMessagesBetween(userId, withUserId, limit, offset)
	} else {
		messages, err = s.db.GetReceivedPrivateMessages(userId, unreadOnly, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("get private messages: %w", err)
	}

	cache := newUsernameCache()
	rendered := make([]types.PrivateMessage, 0, len(messages))
	for _, msg := range messages {
		pm, err := s.renderPrivateMessage(msg, cache)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, pm)
	}
	return rendered, nil
}

func (s *Service) MarkPrivateMessageRead(messageId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.MarkPrivateMessageRead(messageId, time.Now().UTC())
}

func (s *Service) MarkPrivateConversationRead(receiverId, senderId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.MarkPrivateConversationRead(receiverId, senderId, time.Now().UTC())
}

func (s *Service) UnreadPrivateMessageCount(receiverId string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.CountUnreadPrivateMessages(receiverId)
}

func (s *Service) EditMessage(messageId, content string) error {
	content, err := validateContent(content)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.EditMessage(messageId, content, time.Now().UTC())
}

// DeleteMessage removes the message only when requesterId is its sender.
// Anything else is a silent no-op.
func (s *Service) DeleteMessage(messageId, requesterId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.DeleteMessage(messageId, requesterId)
}

// AddReaction records the user's reaction under the emoji and returns the
// message's updated reaction list. Reacting twice with the same emoji is a
// no-op. The read-modify-write is serialized through the service mutex, so
// concurrent updates to one message resolve last-writer-wins.
func (s *Service) AddReaction(messageId, userId, emoji string) ([]types.Reaction, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, types.NewInvalidInputError("emoji cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.getMessage(messageId)
	if err != nil {
		return nil, err
	}

	user, err := s.db.GetUserById(userId)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	reactions := msg.Reactions
	found := false
	for i, r := range reactions {
		if r.Emoji != emoji {
			continue
		}
		found = true
		for _, id := range r.UserIds {
			if id == userId {
				return reactions, nil
			}
		}
		r.UserIds = append(r.UserIds, userId)
		r.Usernames = append(r.Usernames, user.Username)
		r.Count = len(r.UserIds)
		reactions[i] = r
	}
	if !found {
		reactions = append(reactions, types.Reaction{
			Emoji:     emoji,
			Count:     1,
			UserIds:   []string{userId},
			Usernames: []string{user.Username},
		})
	}

	if err := s.db.UpdateMessageReactions(messageId, reactions); err != nil {
		return nil, fmt.Errorf("update reactions: %w", err)
	}
	return reactions, nil
}

// RemoveReaction drops the user's reaction and removes the emoji bucket when
// it empties. Removing a reaction that was never added is a no-op.
func (s *Service) RemoveReaction(messageId, userId, emoji string) ([]types.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.getMessage(messageId)
	if err != nil {
		return nil, err
	}

	reactions := msg.Reactions
	for i, r := range reactions {
		if r.Emoji != emoji {
			continue
		}
		for j, id := range r.UserIds {
			if id != userId {
				continue
			}
			r.UserIds = append(r.UserIds[:j], r.UserIds[j+1:]...)
			r.Usernames = append(r.Usernames[:j], r.Usernames[j+1:]...)
			r.Count = len(r.UserIds)
			if r.Count == 0 {
				reactions = append(reactions[:i], reactions[i+1:]...)
			} else {
				reactions[i] = r
			}
			if err := s.db.UpdateMessageReactions(messageId, reactions); err != nil {
				return nil, fmt.Errorf("update reactions: %w", err)
			}
			return reactions, nil
		}
		break
	}
	return reactions, nil
}

// PinMessage pins a room message. Pinning an already pinned message updates
// who pinned it and when.
func (s *Service) PinMessage(messageId, userId string) (types.RoomMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.getMessage(messageId)
	if err != nil {
		return types.RoomMessage{}, err
	}
	if msg.RoomId == "" {
		return types.RoomMessage{}, types.NewInvalidInputError("only room messages can be pinned")
	}

	now := time.Now().UTC()
	if err := s.db.PinMessage(messageId, userId, now); err != nil {
		return types.RoomMessage{}, fmt.Errorf("pin message: %w", err)
	}

	msg.IsPinned = true
	msg.PinnedAt = &now
	msg.PinnedBy = userId

	room, err := s.getRoom(msg.RoomId)
	if err != nil {
		return types.RoomMessage{}, err
	}
	return s.renderRoomMessage(room, msg, newUsernameCache())
}

func (s *Service) UnpinMessage(messageId string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.getMessage(messageId)
	if err != nil {
		return "", err
	}

	if err := s.db.UnpinMessage(messageId); err != nil {
		return "", fmt.Errorf("unpin message: %w", err)
	}
	return msg.RoomId, nil
}

func (s *Service) GetPinnedMessages(roomId string) ([]types.RoomMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, err := s.getRoom(roomId)
	if err != nil {
		return nil, err
	}

	messages, err := s.db.GetPinnedMessages(roomId)
	if err != nil {
		return nil, fmt.Errorf("get pinned messages: %w", err)
	}
	return s.renderRoomMessages(room, messages)
}

func (s *Service) UpdateUserPresence(userId string, presence types.Presence) error {
	if !types.ValidPresence(presence) {
		return types.NewInvalidInputError(fmt.Sprintf("unknown presence %q", presence))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.UpdateUserPresence(userId, presence)
}

func (s *Service) UpdateUserStatus(userId, status string) error {
	status = strings.TrimSpace(status)
	if len(status) > maxStatusLen {
		return types.NewInvalidInputError(
			fmt.Sprintf("status cannot exceed %d characters", maxStatusLen))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.UpdateUserStatus(userId, status)
}

func (s *Service) UnreadMentionsCount(userId string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.CountUnreadMentions(userId)
}

func (s *Service) MarkMentionRead(userId, messageId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.MarkMentionRead(userId, messageId, time.Now().UTC())
}

func (s *Service) MarkRoomMentionsRead(userId, roomId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.MarkRoomMentionsRead(userId, roomId, time.Now().UTC())
}

// GetUserMentions returns the messages that mention the user, newest first,
// rendered with their room context.
func (s *Service) GetUserMentions(userId string, limit, offset int) ([]types.RoomMessage, error) {
	limit, offset = clampPage(limit, offset, defaultMentionLimit)

	s.mu.Lock()
	defer s.mu.Unlock()

	messages, err := s.db.GetUserMentionMessages(userId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get mention messages: %w", err)
	}

	cache := newUsernameCache()
	rooms := make(map[string]database.Room)
	rendered := make([]types.RoomMessage, 0, len(messages))
	for _, msg := range messages {
		room, ok := rooms[msg.RoomId]
		if !ok {
			room, err = s.getRoom(msg.RoomId)
			if err != nil {
				return nil, err
			}
			rooms[msg.RoomId] = room
		}
		rm, err := s.renderRoomMessage(room, msg, cache)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, rm)
	}
	return rendered, nil
}

func (s *Service) getRoom(roomId string) (database.Room, error) {
	room, err := s.db.GetRoomById(roomId)
	if errors.Is(err, database.ErrNotFound) {
		return database.Room{}, types.NewInvalidInputError("room not found")
	}
	if err != nil {
		return database.Room{}, fmt.Errorf("lookup room: %w", err)
	}
	return room, nil
}

func (s *Service) getMessage(messageId string) (database.Message, error) {
	msg, err := s.db.GetMessageById(messageId)
	if errors.Is(err, database.ErrNotFound) {
		return database.Message{}, types.NewInvalidInputError("message not found")
	}
	if err != nil {
		return database.Message{}, fmt.Errorf("lookup message: %w", err)
	}
	return msg, nil
}

type usernameCache map[string]string

func newUsernameCache() usernameCache {
	return make(usernameCache)
}

func (s *Service) lookupUsername(cache usernameCache, userId string) (string, error) {
	if name, ok := cache[userId]; ok {
		return name, nil
	}
	user, err := s.db.GetUserById(userId)
	if errors.Is(err, database.ErrNotFound) {
		// sender account may have been removed; keep the message readable
		cache[userId] = "unknown"
		return "unknown", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	cache[userId] = user.Username
	return user.Username, nil
}

func (s *Service) renderRoomMessages(room database.Room, messages []database.Message) ([]types.RoomMessage, error) {
	cache := newUsernameCache()
	rendered := make([]types.RoomMessage, 0, len(messages))
	for _, msg := range messages {
		rm, err := s.renderRoomMessage(room, msg, cache)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, rm)
	}
	return rendered, nil
}

func (s *Service) renderRoomMessage(room database.Room, msg database.Message, cache usernameCache) (types.RoomMessage, error) {
	rm := types.RoomMessage{
		Id:          msg.Id,
		MessageType: msg.MessageType,
		RoomId:      room.Id,
		RoomName:    room.Name,
		Content:     msg.Content,
		SentAt:      msg.SentAt,
		IsEdited:    msg.IsEdited,
		EditedAt:    msg.EditedAt,
		Reactions:   msg.Reactions,
		IsPinned:    msg.IsPinned,
		PinnedAt:    msg.PinnedAt,
	}

	if msg.MessageType == types.MessageTypeServer {
		rm.SenderUsername = serverSenderName
	} else {
		name, err := s.lookupUsername(cache, msg.SenderId)
		if err != nil {
			return types.RoomMessage{}, err
		}
		rm.SenderUsername = name

		members, err := s.db.GetRoomMembers(room.Id)
		if err != nil {
			return types.RoomMessage{}, fmt.Errorf("list room members: %w", err)
		}
		mentioned, err := s.resolveMentions(msg.Content, members, msg.SenderId)
		if err != nil {
			return types.RoomMessage{}, err
		}
		for _, user := range mentioned {
			rm.Mentions = append(rm.Mentions, user.Username)
		}
	}

	if msg.PinnedBy != "" {
		name, err := s.lookupUsername(cache, msg.PinnedBy)
		if err != nil {
			return types.RoomMessage{}, err
		}
		rm.PinnedBy = name
	}

	if msg.ReplyToMessageId != "" {
		parent, err := s.db.GetMessageById(msg.ReplyToMessageId)
		if err == nil {
			senderName := serverSenderName
			if parent.MessageType != types.MessageTypeServer {
				senderName, err = s.lookupUsername(cache, parent.SenderId)
				if err != nil {
					return types.RoomMessage{}, err
				}
			}
			rm.ReplyTo = &types.ReplyContext{
				Id:             parent.Id,
				SenderUsername: senderName,
				Content:        parent.Content,
				SentAt:         parent.SentAt,
			}
		} else if !errors.Is(err, database.ErrNotFound) {
			return types.RoomMessage{}, fmt.Errorf("lookup reply target: %w", err)
		}
	}

	return rm, nil
}

func (s *Service) renderPrivateMessage(msg database.Message, cache usernameCache) (types.PrivateMessage, error) {
	sender, err := s.lookupUsername(cache, msg.SenderId)
	if err != nil {
		return types.PrivateMessage{}, err
	}
	receiver, err := s.lookupUsername(cache, msg.ReceiverId)
	if err != nil {
		return types.PrivateMessage{}, err
	}

	return types.PrivateMessage{
		Id:               msg.Id,
		SenderUsername:   sender,
		ReceiverUsername: receiver,
		Content:          msg.Content,
		SentAt:           msg.SentAt,
		ReadAt:           msg.ReadAt,
		IsRead:           msg.IsRead,
		IsEdited:         msg.IsEdited,
		EditedAt:         msg.EditedAt,
	}, nil
}

func roomView(room database.Room) types.Room {
	return types.Room{
		Id:          room.Id,
		Name:        room.Name,
		Description: room.Description,
		CreatedBy:   room.CreatedBy,
		CreatedAt:   room.CreatedAt,
	}
}

func roomInfos(rooms []database.Room) []types.RoomInfo {
	infos := make([]types.RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		infos = append(infos, types.RoomInfo{
			Id:          room.Id,
			Name:        room.Name,
			Description: room.Description,
		})
	}
	return infos
}
