package database

import (
	"errors"
	"time"

	"github.com/sparkchat/sparkd/internal/types"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

type Repository interface {
	CreateUser(params CreateUserParams) (User, error)
	GetUserByUsername(username string) (User, error)
	GetUserById(id string) (User, error)
	UpdateLastLogin(userId string, at time.Time) error
	UpdateUserPresence(userId string, presence types.Presence) error
	UpdateUserStatus(userId, status string) error

	CreateSession(userId, token string, expiresAt time.Time) (Session, error)
	GetSessionByToken(token string) (Session, error)
	DeleteSession(token string) error
	DeleteExpiredSessions(now time.Time) error

	CreateRoom(params CreateRoomParams) (Room, error)
	GetRoomById(id string) (Room, error)
	GetAllRooms() ([]Room, error)
	AddRoomMember(roomId, userId string) error
	RemoveRoomMember(roomId, userId string) error
	IsRoomMember(roomId, userId string) (bool, error)
	GetUserRooms(userId string) ([]Room, error)
	GetRoomMembers(roomId string) ([]User, error)

	CreateMessage(params CreateMessageParams) (Message, error)
	GetMessageById(id string) (Message, error)
	GetRoomMessages(roomId string, limit, offset int) ([]Message, error)
	GetPrivateMessagesBetween(userId, otherId string, limit, offset int) ([]Message, error)
	GetReceivedPrivateMessages(receiverId string, unreadOnly bool, limit, offset int) ([]Message, error)
	MarkPrivateMessageRead(messageId string, at time.Time) error
	MarkPrivateConversationRead(receiverId, senderId string, at time.Time) error
	CountUnreadPrivateMessages(receiverId string) (int64, error)
	EditMessage(messageId, content string, at time.Time) error
	DeleteMessage(messageId, senderId string) error
	UpdateMessageReactions(messageId string, reactions []types.Reaction) error
	PinMessage(messageId, userId string, at time.Time) error
	UnpinMessage(messageId string) error
	GetPinnedMessages(roomId string) ([]Message, error)

	CreateMention(params CreateMentionParams) (Mention, error)
	CountUnreadMentions(userId string) (int64, error)
	MarkMentionRead(userId, messageId string, at time.Time) error
	MarkRoomMentionsRead(userId, roomId string, at time.Time) error
	GetUserMentionMessages(userId string, limit, offset int) ([]Message, error)
}
