package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sparkchat/sparkd/internal/stats"
	"github.com/sparkchat/sparkd/internal/types"
)

// handleCommand decodes one inbound frame and dispatches it. Before
// authentication only Authenticate is accepted; anything else gets an Error
// event and the connection stays open.
func (c *Client) handleCommand(raw []byte) {
	cmd, err := DecodeCommand(raw)
	if err != nil {
		c.log.Println("bad frame:", err)
		c.queueEvent(NewErrorEvent("invalid command"))
		return
	}

	if !c.authenticated {
		authCmd, ok := cmd.(AuthenticateCommand)
		if !ok {
			c.queueEvent(NewErrorEvent("authentication required"))
			return
		}
		c.handleAuthenticate(authCmd)
		return
	}

	switch cmd := cmd.(type) {
	case AuthenticateCommand:
		c.queueEvent(NewErrorEvent("already authenticated"))
	case CreateRoomCommand:
		c.handleCreateRoom(cmd)
	case GetAllRoomsCommand:
		c.handleGetAllRooms(cmd)
	case JoinRoomCommand:
		c.handleJoinRoom(cmd)
	case LeaveRoomCommand:
		c.handleLeaveRoom(cmd)
	case SendMessageCommand:
		c.handleSendMessage(cmd)
	case GetRoomHistoryCommand:
		c.handleGetRoomHistory(cmd)
	case EditMessageCommand:
		c.handleEditMessage(cmd)
	case DeleteMessageCommand:
		c.handleDeleteMessage(cmd)
	case GetUserRoomsCommand:
		c.handleGetUserRooms(cmd)
	case GetRoomMembersCommand:
		c.handleGetRoomMembers(cmd)
	case UpdatePresenceCommand:
		c.handleUpdatePresence(cmd)
	case UpdateStatusCommand:
		c.handleUpdateStatus(cmd)
	case UpdateTypingCommand:
		c.handleUpdateTyping(cmd)
	case GetUnreadMentionsCountCommand:
		c.handleGetUnreadMentionsCount(cmd)
	case MarkMentionsReadCommand:
		c.handleMarkMentionsRead(cmd)
	case MarkRoomMentionsReadCommand:
		c.handleMarkRoomMentionsRead(cmd)
	case GetUserMentionsCommand:
		c.handleGetUserMentions(cmd)
	case AddReactionCommand:
		c.handleAddReaction(cmd)
	case RemoveReactionCommand:
		c.handleRemoveReaction(cmd)
	case PinMessageCommand:
		c.handlePinMessage(cmd)
	case UnpinMessageCommand:
		c.handleUnpinMessage(cmd)
	case GetPinnedMessagesCommand:
		c.handleGetPinnedMessages(cmd)
	default:
		c.queueEvent(NewErrorEvent("unknown command"))
	}
}

// sendError delivers a business failure to the originating connection only.
// Internal failures are logged and reported generically.
func (c *Client) sendError(err error) {
	c.queueEvent(NewErrorEvent(errorMessage(c, err)))
}

func errorMessage(c *Client, err error) string {
	switch {
	case types.IsInvalidInput(err),
		errors.Is(err, types.ErrInvalidCredentials),
		errors.Is(err, types.ErrUserExists),
		errors.Is(err, types.ErrUserNotFound),
		errors.Is(err, types.ErrInvalidSession):
		return err.Error()
	}
	c.log.Println("internal error:", err)
	return "database error"
}

func (c *Client) handleAuthenticate(cmd AuthenticateCommand) {
	user, err := c.server.auth.ValidateSession(cmd.Token)
	if err != nil {
		c.server.stats.Incr(stats.MetricAuthFailures)
		c.sendError(err)
		return
	}

	c.user = user
	c.authenticated = true
	c.server.registry.AddClient(c)

	if err := c.server.messages.UpdateUserPresence(user.Id, types.PresenceOnline); err != nil {
		c.log.Printf("failed to set presence for %s: %s", user.Username, err)
	}
	c.user.Presence = types.PresenceOnline

	c.queueEvent(NewAuthenticatedEvent(c.user))

	rooms, err := c.server.messages.GetUserRooms(user.Id)
	if err != nil {
		c.sendError(err)
		return
	}

	roomIds := make([]string, 0, len(rooms))
	for _, room := range rooms {
		roomIds = append(roomIds, room.Id)
	}
	if err := c.server.registry.RestoreRooms(user.Id, roomIds); err != nil {
		c.log.Printf("failed to restore rooms for %s: %s", user.Username, err)
	}

	for _, room := range rooms {
		c.queueEvent(NewRoomJoinedEvent(room))
		c.server.broadcast(room.Id, NewPresenceChangedEvent(user.Id, user.Username, types.PresenceOnline))
	}

	c.log.Printf("user %q authenticated", user.Username)
}

func (c *Client) handleCreateRoom(cmd CreateRoomCommand) {
	room, err := c.server.messages.CreateRoom(c.user.Id, cmd.Name, cmd.Description)
	if err != nil {
		c.sendError(err)
		return
	}

	if err := c.server.registry.JoinRoom(room.Id, c.user.Id); err != nil {
		c.log.Printf("failed to subscribe creator to room %s: %s", room.Id, err)
	}

	c.server.stats.Incr(stats.MetricRoomsCreated)
	c.queueEvent(NewRoomCreatedEvent(room))
}

func (c *Client) handleGetAllRooms(GetAllRoomsCommand) {
	rooms, err := c.server.messages.GetAllRooms()
	if err != nil {
		c.sendError(err)
		return
	}
	c.queueEvent(NewRoomListEvent(rooms))
}

func (c *Client) handleJoinRoom(cmd JoinRoomCommand) {
	room, err := c.server.messages.JoinRoom(cmd.RoomId, c.user.Id)
	if err != nil {
		c.sendError(err)
		return
	}

	if err := c.server.registry.JoinRoom(cmd.RoomId, c.user.Id); err != nil {
		c.log.Printf("failed to subscribe %s to room %s: %s", c.user.Username, cmd.RoomId, err)
	}

	c.queueEvent(NewRoomJoinedEvent(types.RoomInfo{
		Id:          room.Id,
		Name:        room.Name,
		Description: room.Description,
	}))
	c.server.broadcast(cmd.RoomId, NewUserJoinedEvent(cmd.RoomId, c.user.Id, c.user.Username))
	c.announce(cmd.RoomId, fmt.Sprintf("%s has joined the room", c.user.Username))
	c.broadcastRoomMembers(cmd.RoomId)
}

func (c *Client) handleLeaveRoom(cmd LeaveRoomCommand) {
	isMember, err := c.server.messages.IsRoomMember(cmd.RoomId, c.user.Id)
	if err != nil {
		c.sendError(err)
		return
	}
	if !isMember {
		c.sendError(types.NewInvalidInputError("you are not a member of this room"))
		return
	}

	// persist the notice before membership is dropped so it lands while the
	// leaver still counts as a member
	c.announce(cmd.RoomId, fmt.Sprintf("%s has left the room", c.user.Username))

	if err := c.server.messages.LeaveRoom(cmd.RoomId, c.user.Id); err != nil {
		c.sendError(err)
		return
	}

	if err := c.server.registry.LeaveRoom(cmd.RoomId, c.user.Id); err != nil {
		c.log.Printf("failed to unsubscribe %s from room %s: %s", c.user.Username, cmd.RoomId, err)
	}

	c.queueEvent(NewRoomLeftEvent(cmd.RoomId))
	c.server.broadcast(cmd.RoomId, NewUserLeftEvent(cmd.RoomId, c.user.Id, c.user.Username))
	c.broadcastRoomMembers(cmd.RoomId)
}

func (c *Client) handleSendMessage(cmd SendMessageCommand) {
	msg, mentioned, err := c.server.messages.SendRoomMessage(c.user.Id, cmd.RoomId, cmd.Content, cmd.ReplyToMessageId)
	if err != nil {
		c.sendError(err)
		return
	}

	c.server.stats.Incr(stats.MetricMessagesSent)
	c.queueEvent(NewMessageSentEvent(msg.Id))
	c.server.broadcast(cmd.RoomId, NewNewMessageEvent(msg))

	for _, userId := range mentioned {
		c.server.registry.SendToUser(userId, NewMentionNotificationEvent(msg))
	}
}

func (c *Client) handleGetRoomHistory(cmd GetRoomHistoryCommand) {
	messages, err := c.server.messages.GetRoomMessages(c.user.Id, cmd.RoomId, cmd.Limit, cmd.Offset)
	if err != nil {
		c.sendError(err)
		return
	}
	c.queueEvent(NewRoomHistoryEvent(cmd.RoomId, messages))
}

func (c *Client) handleEditMessage(cmd EditMessageCommand) {
	if err := c.server.messages.EditMessage(cmd.MessageId, cmd.NewContent); err != nil {
		c.sendError(err)
		return
	}
	c.server.broadcast(cmd.RoomId, NewMessageEditedEvent(cmd.RoomId, cmd.MessageId, strings.TrimSpace(cmd.NewContent)))
}

func (c *Client) handleDeleteMessage(cmd DeleteMessageCommand) {
	if err := c.server.messages.DeleteMessage(cmd.MessageId, c.user.Id); err != nil {
		c.sendError(err)
		return
	}
	// broadcast even when the delete was a silent no-op
	c.server.broadcast(cmd.RoomId, NewMessageDeletedEvent(cmd.RoomId, cmd.MessageId))
}

func (c *Client) handleGetUserRooms(GetUserRoomsCommand) {
	rooms, err := c.server.messages.GetUserRooms(c.user.Id)
	if err != nil {
		c.sendError(err)
		return
	}
	c.queueEvent(NewUserRoomListEvent(rooms))
}

func (c *Client) handleGetRoomMembers(cmd GetRoomMembersCommand) {
	members, err := c.server.messages.GetRoomMembers(cmd.RoomId)
	if err != nil {
		c.sendError(err)
		return
	}
	c.queueEvent(NewRoomMembersEvent(cmd.RoomId, members))
}

func (c *Client) handleUpdatePresence(cmd UpdatePresenceCommand) {
	if err := c.server.messages.UpdateUserPresence(c.user.Id, cmd.Presence); err != nil {
		c.sendError(err)
		return
	}
	c.user.Presence = cmd.Presence

	for _, roomId := range c.server.registry.ClientRooms(c.user.Id) {
		c.server.broadcast(roomId, NewPresenceChangedEvent(c.user.Id, c.user.Username, cmd.Presence))
	}
}

func (c *Client) handleUpdateStatus(cmd UpdateStatusCommand) {
	if err := c.server.messages.UpdateUserStatus(c.user.Id, cmd.Status); err != nil {
		c.sendError(err)
		return
	}
	c.user.Status = strings.TrimSpace(cmd.Status)

	for _, roomId := range c.server.registry.ClientRooms(c.user.Id) {
		c.server.broadcast(roomId, NewStatusChangedEvent(c.user.Id, c.user.Username, c.user.Status))
	}
}

func (c *Client) handleUpdateTyping(cmd UpdateTypingCommand) {
	if err := c.server.registry.SetTyping(c.user.Id, cmd.RoomId, cmd.IsTyping); err != nil {
		// registry errors are user-facing, not internal
		c.queueEvent(NewErrorEvent(err.Error()))
		return
	}
	c.server.broadcast(cmd.RoomId, NewTypingStatusChangedEvent(cmd.RoomId, c.server.registry.TypingUsers(cmd.RoomId)))
}

func (c *Client) handleGetUnreadMentionsCount(cmd GetUnreadMentionsCountCommand) {
	// only answer for the authenticated user
	if cmd.UserId != "" && cmd.UserId != c.user.Id {
		return
	}
	count, err := c.server.messages.UnreadMentionsCount(c.user.Id)
	if err != nil {
		c.sendError(err)
		return
	}
	c.queueEvent(NewUnreadMentionsCountEvent(count))
}

func (c *Client) handleMarkMentionsRead(cmd MarkMentionsReadCommand) {
	if err := c.server.messages.MarkMentionRead(c.user.Id, cmd.MessageId); err != nil {
		c.sendError(err)
		return
	}
	c.sendUnreadMentionsCount()
}

func (c *Client) handleMarkRoomMentionsRead(cmd MarkRoomMentionsReadCommand) {
	if err := c.server.messages.MarkRoomMentionsRead(c.user.Id, cmd.RoomId); err != nil {
		c.sendError(err)
		return
	}
	c.sendUnreadMentionsCount()
}

func (c *Client) handleGetUserMentions(cmd GetUserMentionsCommand) {
	messages, err := c.server.messages.GetUserMentions(c.user.Id, cmd.Limit, cmd.Offset)
	if err != nil {
		c.sendError(err)
		return
	}
	// mention results reuse the history event with a sentinel room id
	c.queueEvent(NewRoomHistoryEvent("mentions", messages))
}

func (c *Client) handleAddReaction(cmd AddReactionCommand) {
	reactions, err := c.server.messages.AddReaction(cmd.MessageId, c.user.Id, cmd.Emoji)
	if err != nil {
		c.sendError(err)
		return
	}
	c.server.broadcast(cmd.RoomId, NewReactionAddedEvent(cmd.RoomId, cmd.MessageId, reactions))
}

func (c *Client) handleRemoveReaction(cmd RemoveReactionCommand) {
	reactions, err := c.server.messages.RemoveReaction(cmd.MessageId, c.user.Id, cmd.Emoji)
	if err != nil {
		c.sendError(err)
		return
	}
	c.server.broadcast(cmd.RoomId, NewReactionRemovedEvent(cmd.RoomId, cmd.MessageId, reactions))
}

func (c *Client) handlePinMessage(cmd PinMessageCommand) {
	msg, err := c.server.messages.PinMessage(cmd.MessageId, c.user.Id)
	if err != nil {
		c.sendError(err)
		return
	}
	c.server.broadcast(msg.RoomId, NewMessagePinnedEvent(msg.RoomId, msg))
}

func (c *Client) handleUnpinMessage(cmd UnpinMessageCommand) {
	roomId, err := c.server.messages.UnpinMessage(cmd.MessageId)
	if err != nil {
		c.sendError(err)
		return
	}
	if roomId == "" {
		roomId = cmd.RoomId
	}
	c.server.broadcast(roomId, NewMessageUnpinnedEvent(roomId, cmd.MessageId))
}

func (c *Client) handleGetPinnedMessages(cmd GetPinnedMessagesCommand) {
	messages, err := c.server.messages.GetPinnedMessages(cmd.RoomId)
	if err != nil {
		c.sendError(err)
		return
	}
	c.queueEvent(NewPinnedMessagesEvent(cmd.RoomId, messages))
}

// announce persists a server message and broadcasts it like any other room
// message.
func (c *Client) announce(roomId, content string) {
	ann, err := c.server.messages.SendRoomAnnouncement(c.user.Id, roomId, content)
	if err != nil {
		c.log.Printf("failed to announce in room %s: %s", roomId, err)
		return
	}
	c.server.broadcast(roomId, NewNewMessageEvent(ann))
}

func (c *Client) broadcastRoomMembers(roomId string) {
	members, err := c.server.messages.GetRoomMembers(roomId)
	if err != nil {
		c.log.Printf("failed to list members of room %s: %s", roomId, err)
		return
	}
	c.server.broadcast(roomId, NewRoomMembersEvent(roomId, members))
}

func (c *Client) sendUnreadMentionsCount() {
	count, err := c.server.messages.UnreadMentionsCount(c.user.Id)
	if err != nil {
		c.sendError(err)
		return
	}
	c.queueEvent(NewUnreadMentionsCountEvent(count))
}

// cleanup runs once when the connection dies: presence goes Offline, the
// user's rooms hear about it, and the registry forgets the connection.
func (c *Client) cleanup() {
	c.server.stats.Decr(stats.MetricActiveConnections)

	if !c.authenticated {
		return
	}

	if err := c.server.messages.UpdateUserPresence(c.user.Id, types.PresenceOffline); err != nil {
		c.log.Printf("failed to set presence for %s: %s", c.user.Username, err)
	}

	rooms := c.server.registry.ClientRooms(c.user.Id)
	c.server.registry.RemoveClient(c.user.Id)
	for _, roomId := range rooms {
		c.server.broadcast(roomId, NewPresenceChangedEvent(c.user.Id, c.user.Username, types.PresenceOffline))
	}

	c.log.Printf("user %q disconnected", c.user.Username)
}
