package server

import (
	"github.com/sparkchat/sparkd/internal/types"
)

// Event is a server-to-client frame. Every variant carries its own "type"
// discriminator and marshals flat.
type Event interface {
	event()
}

const (
	EventAuthenticated       = "Authenticated"
	EventError               = "Error"
	EventRoomCreated         = "RoomCreated"
	EventRoomList            = "RoomList"
	EventRoomJoined          = "RoomJoined"
	EventRoomLeft            = "RoomLeft"
	EventNewMessage          = "NewMessage"
	EventMessageSent         = "MessageSent"
	EventRoomHistory         = "RoomHistory"
	EventUserJoined          = "UserJoined"
	EventUserLeft            = "UserLeft"
	EventMessageEdited       = "MessageEdited"
	EventMessageDeleted      = "MessageDeleted"
	EventUserRoomList        = "UserRoomList"
	EventRoomMembers         = "RoomMembers"
	EventPresenceChanged     = "PresenceChanged"
	EventStatusChanged       = "StatusChanged"
	EventTypingStatusChanged = "TypingStatusChanged"
	EventMentionNotification = "MentionNotification"
	EventUnreadMentionsCount = "UnreadMentionsCount"
	EventReactionAdded       = "ReactionAdded"
	EventReactionRemoved     = "ReactionRemoved"
	EventMessagePinned       = "MessagePinned"
	EventMessageUnpinned     = "MessageUnpinned"
	EventPinnedMessages      = "PinnedMessages"
)

type AuthenticatedEvent struct {
	Type string     `json:"type"`
	User types.User `json:"user"`
}

func (AuthenticatedEvent) event() {}

func NewAuthenticatedEvent(user types.User) AuthenticatedEvent {
	return AuthenticatedEvent{Type: EventAuthenticated, User: user}
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (ErrorEvent) event() {}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventError, Message: message}
}

type RoomCreatedEvent struct {
	Type string     `json:"type"`
	Room types.Room `json:"room"`
}

func (RoomCreatedEvent) event() {}

func NewRoomCreatedEvent(room types.Room) RoomCreatedEvent {
	return RoomCreatedEvent{Type: EventRoomCreated, Room: room}
}

type RoomListEvent struct {
	Type  string           `json:"type"`
	Rooms []types.RoomInfo `json:"rooms"`
}

func (RoomListEvent) event() {}

func NewRoomListEvent(rooms []types.RoomInfo) RoomListEvent {
	return RoomListEvent{Type: EventRoomList, Rooms: rooms}
}

type RoomJoinedEvent struct {
	Type string         `json:"type"`
	Room types.RoomInfo `json:"room"`
}

func (RoomJoinedEvent) event() {}

func NewRoomJoinedEvent(room types.RoomInfo) RoomJoinedEvent {
	return RoomJoinedEvent{Type: EventRoomJoined, Room: room}
}

type RoomLeftEvent struct {
	Type   string `json:"type"`
	RoomId string `json:"room_id"`
}

func (RoomLeftEvent) event() {}

func NewRoomLeftEvent(roomId string) RoomLeftEvent {
	return RoomLeftEvent{Type: EventRoomLeft, RoomId: roomId}
}

type NewMessageEvent struct {
	Type    string            `json:"type"`
	Message types.RoomMessage `json:"message"`
}

func (NewMessageEvent) event() {}

func NewNewMessageEvent(message types.RoomMessage) NewMessageEvent {
	return NewMessageEvent{Type: EventNewMessage, Message: message}
}

type MessageSentEvent struct {
	Type      string `json:"type"`
	MessageId string `json:"message_id"`
}

func (MessageSentEvent) event() {}

func NewMessageSentEvent(messageId string) MessageSentEvent {
	return MessageSentEvent{Type: EventMessageSent, MessageId: messageId}
}

type RoomHistoryEvent struct {
	Type     string              `json:"type"`
	RoomId   string              `json:"room_id"`
	Messages []types.RoomMessage `json:"messages"`
}

func (RoomHistoryEvent) event() {}

func NewRoomHistoryEvent(roomId string, messages []types.RoomMessage) RoomHistoryEvent {
	return RoomHistoryEvent{Type: EventRoomHistory, RoomId: roomId, Messages: messages}
}

type UserJoinedEvent struct {
	Type     string `json:"type"`
	RoomId   string `json:"room_id"`
	UserId   string `json:"user_id"`
	Username string `json:"username"`
}

func (UserJoinedEvent) event() {}

func NewUserJoinedEvent(roomId, userId, username string) UserJoinedEvent {
	return UserJoinedEvent{Type: EventUserJoined, RoomId: roomId, UserId: userId, Username: username}
}

type UserLeftEvent struct {
	Type     string `json:"type"`
	RoomId   string `json:"room_id"`
	UserId   string `json:"user_id"`
	Username string `json:"username"`
}

func (UserLeftEvent) event() {}

func NewUserLeftEvent(roomId, userId, username string) UserLeftEvent {
	return UserLeftEvent{Type: EventUserLeft, RoomId: roomId, UserId: userId, Username: username}
}

type MessageEditedEvent struct {
	Type      string `json:"type"`
	RoomId    string `json:"room_id"`
	MessageId string `json:"message_id"`
	Content   string `json:"content"`
}

func (MessageEditedEvent) event() {}

func NewMessageEditedEvent(roomId, messageId, content string) MessageEditedEvent {
	return MessageEditedEvent{Type: EventMessageEdited, RoomId: roomId, MessageId: messageId, Content: content}
}

type MessageDeletedEvent struct {
	Type      string `json:"type"`
	RoomId    string `json:"room_id"`
	MessageId string `json:"message_id"`
}

func (MessageDeletedEvent) event() {}

func NewMessageDeletedEvent(roomId, messageId string) MessageDeletedEvent {
	return MessageDeletedEvent{Type: EventMessageDeleted, RoomId: roomId, MessageId: messageId}
}

type UserRoomListEvent struct {
	Type  string           `json:"type"`
	Rooms []types.RoomInfo `json:"rooms"`
}

func (UserRoomListEvent) event() {}

func NewUserRoomListEvent(rooms []types.RoomInfo) UserRoomListEvent {
	return UserRoomListEvent{Type: EventUserRoomList, Rooms: rooms}
}

type RoomMembersEvent struct {
	Type    string       `json:"type"`
	RoomId  string       `json:"room_id"`
	Members []types.User `json:"members"`
}

func (RoomMembersEvent) event() {}

func NewRoomMembersEvent(roomId string, members []types.User) RoomMembersEvent {
	return RoomMembersEvent{Type: EventRoomMembers, RoomId: roomId, Members: members}
}

type PresenceChangedEvent struct {
	Type     string         `json:"type"`
	UserId   string         `json:"user_id"`
	Username string         `json:"username"`
	Presence types.Presence `json:"presence"`
}

func (PresenceChangedEvent) event() {}

func NewPresenceChangedEvent(userId, username string, presence types.Presence) PresenceChangedEvent {
	return PresenceChangedEvent{Type: EventPresenceChanged, UserId: userId, Username: username, Presence: presence}
}

type StatusChangedEvent struct {
	Type     string `json:"type"`
	UserId   string `json:"user_id"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

func (StatusChangedEvent) event() {}

func NewStatusChangedEvent(userId, username, status string) StatusChangedEvent {
	return StatusChangedEvent{Type: EventStatusChanged, UserId: userId, Username: username, Status: status}
}

type TypingStatusChangedEvent struct {
	Type        string             `json:"type"`
	RoomId      string             `json:"room_id"`
	TypingUsers []types.TypingUser `json:"typing_users"`
}

func (TypingStatusChangedEvent) event() {}

func NewTypingStatusChangedEvent(roomId string, typingUsers []types.TypingUser) TypingStatusChangedEvent {
	return TypingStatusChangedEvent{Type: EventTypingStatusChanged, RoomId: roomId, TypingUsers: typingUsers}
}

type MentionNotificationEvent struct {
	Type    string            `json:"type"`
	Message types.RoomMessage `json:"message"`
}

func (MentionNotificationEvent) event() {}

func NewMentionNotificationEvent(message types.RoomMessage) MentionNotificationEvent {
	return MentionNotificationEvent{Type: EventMentionNotification, Message: message}
}

type UnreadMentionsCountEvent struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

func (UnreadMentionsCountEvent) event() {}

func NewUnreadMentionsCountEvent(count int64) UnreadMentionsCountEvent {
	return UnreadMentionsCountEvent{Type: EventUnreadMentionsCount, Count: count}
}

type ReactionAddedEvent struct {
	Type      string           `json:"type"`
	RoomId    string           `json:"room_id"`
	MessageId string           `json:"message_id"`
	Reactions []types.Reaction `json:"reactions"`
}

func (ReactionAddedEvent) event() {}

func NewReactionAddedEvent(roomId, messageId string, reactions []types.Reaction) ReactionAddedEvent {
	return ReactionAddedEvent{Type: EventReactionAdded, RoomId: roomId, MessageId: messageId, Reactions: reactions}
}

type ReactionRemovedEvent struct {
	Type      string           `json:"type"`
	RoomId    string           `json:"room_id"`
	MessageId string           `json:"message_id"`
	Reactions []types.Reaction `json:"reactions"`
}

func (ReactionRemovedEvent) event() {}

func NewReactionRemovedEvent(roomId, messageId string, reactions []types.Reaction) ReactionRemovedEvent {
	return ReactionRemovedEvent{Type: EventReactionRemoved, RoomId: roomId, MessageId: messageId, Reactions: reactions}
}

type MessagePinnedEvent struct {
	Type    string            `json:"type"`
	RoomId  string            `json:"room_id"`
	Message types.RoomMessage `json:"message"`
}

func (MessagePinnedEvent) event() {}

func NewMessagePinnedEvent(roomId string, message types.RoomMessage) MessagePinnedEvent {
	return MessagePinnedEvent{Type: EventMessagePinned, RoomId: roomId, Message: message}
}

type MessageUnpinnedEvent struct {
	Type      string `json:"type"`
	RoomId    string `json:"room_id"`
	MessageId string `json:"message_id"`
}

func (MessageUnpinnedEvent) event() {}

func NewMessageUnpinnedEvent(roomId, messageId string) MessageUnpinnedEvent {
	return MessageUnpinnedEvent{Type: EventMessageUnpinned, RoomId: roomId, MessageId: messageId}
}

type PinnedMessagesEvent struct {
	Type     string              `json:"type"`
	RoomId   string              `json:"room_id"`
	Messages []types.RoomMessage `json:"messages"`
}

func (PinnedMessagesEvent) event() {}

func NewPinnedMessagesEvent(roomId string, messages []types.RoomMessage) PinnedMessagesEvent {
	return PinnedMessagesEvent{Type: EventPinnedMessages, RoomId: roomId, Messages: messages}
}
