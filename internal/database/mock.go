package database

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sparkchat/sparkd/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(params CreateUserParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockRepository) GetUserByUsername(username string) (User, error) {
	args := m.Called(username)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockRepository) GetUserById(id string) (User, error) {
	args := m.Called(id)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockRepository) UpdateLastLogin(userId string, at time.Time) error {
	args := m.Called(userId, at)
	return args.Error(0)
}
func (m *MockRepository) UpdateUserPresence(userId string, presence types.Presence) error {
	args := m.Called(userId, presence)
	return args.Error(0)
}
func (m *MockRepository) UpdateUserStatus(userId, status string) error {
	args := m.Called(userId, status)
	return args.Error(0)
}
func (m *MockRepository) CreateSession(userId, token string, expiresAt time.Time) (Session, error) {
	args := m.Called(userId, token, expiresAt)
	return args.Get(0).(Session), args.Error(1)
}
func (m *MockRepository) GetSessionByToken(token string) (Session, error) {
	args := m.Called(token)
	return args.Get(0).(Session), args.Error(1)
}
func (m *MockRepository) DeleteSession(token string) error {
	args := m.Called(token)
	return args.Error(0)
}
func (m *MockRepository) DeleteExpiredSessions(now time.Time) error {
	args := m.Called(now)
	return args.Error(0)
}
func (m *MockRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	args := m.Called(params)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockRepository) GetRoomById(id string) (Room, error) {
	args := m.Called(id)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockRepository) GetAllRooms() ([]Room, error) {
	args := m.Called()
	return args.Get(0).([]Room), args.Error(1)
}
func (m *MockRepository) AddRoomMember(roomId, userId string) error {
	args := m.Called(roomId, userId)
	return args.Error(0)
}
func (m *MockRepository) RemoveRoomMember(roomId, userId string) error {
	args := m.Called(roomId, userId)
	return args.Error(0)
}
func (m *MockRepository) IsRoomMember(roomId, userId string) (bool, error) {
	args := m.Called(roomId, userId)
	return args.Bool(0), args.Error(1)
}
func (m *MockRepository) GetUserRooms(userId string) ([]Room, error) {
	args := m.Called(userId)
	return args.Get(0).([]Room), args.Error(1)
}
func (m *MockRepository) GetRoomMembers(roomId string) ([]User, error) {
	args := m.Called(roomId)
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockRepository) GetMessageById(id string) (Message, error) {
	args := m.Called(id)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockRepository) GetRoomMessages(roomId string, limit, offset int) ([]Message, error) {
	args := m.Called(roomId, limit, offset)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockRepository) GetPrivateMessagesBetween(userId, otherId string, limit, offset int) ([]Message, error) {
	args := m.Called(userId, otherId, limit, offset)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockRepository) GetReceivedPrivateMessages(receiverId string, unreadOnly bool, limit, offset int) ([]Message, error) {
	args := m.Called(receiverId, unreadOnly, limit, offset)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockRepository) MarkPrivateMessageRead(messageId string, at time.Time) error {
	args := m.Called(messageId, at)
	return args.Error(0)
}
func (m *MockRepository) MarkPrivateConversationRead(receiverId, senderId string, at time.Time) error {
	args := m.Called(receiverId, senderId, at)
	return args.Error(0)
}
func (m *MockRepository) CountUnreadPrivateMessages(receiverId string) (int64, error) {
	args := m.Called(receiverId)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRepository) EditMessage(messageId, content string, at time.Time) error {
	args := m.Called(messageId, content, at)
	return args.Error(0)
}
func (m *MockRepository) DeleteMessage(messageId, senderId string) error {
	args := m.Called(messageId, senderId)
	return args.Error(0)
}
func (m *MockRepository) UpdateMessageReactions(messageId string, reactions []types.Reaction) error {
	args := m.Called(messageId, reactions)
	return args.Error(0)
}
func (m *MockRepository) PinMessage(messageId, userId string, at time.Time) error {
	args := m.Called(messageId, userId, at)
	return args.Error(0)
}
func (m *MockRepository) UnpinMessage(messageId string) error {
	args := m.Called(messageId)
	return args.Error(0)
}
func (m *MockRepository) GetPinnedMessages(roomId string) ([]Message, error) {
	args := m.Called(roomId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockRepository) CreateMention(params CreateMentionParams) (Mention, error) {
	args := m.Called(params)
	return args.Get(0).(Mention), args.Error(1)
}
func (m *MockRepository) CountUnreadMentions(userId string) (int64, error) {
	args := m.Called(userId)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRepository) MarkMentionRead(userId, messageId string, at time.Time) error {
	args := m.Called(userId, messageId, at)
	return args.Error(0)
}
func (m *MockRepository) MarkRoomMentionsRead(userId, roomId string, at time.Time) error {
	args := m.Called(userId, roomId, at)
	return args.Error(0)
}
func (m *MockRepository) GetUserMentionMessages(userId string, limit, offset int) ([]Message, error) {
	args := m.Called(userId, limit, offset)
	return args.Get(0).([]Message), args.Error(1)
}
