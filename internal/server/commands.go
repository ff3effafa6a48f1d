package server

import (
	"encoding/json"
	"fmt"

	"github.com/sparkchat/sparkd/internal/types"
)

// Command is a client-to-server frame, tagged by a "type" discriminator.
type Command interface {
	command()
}

const (
	CmdAuthenticate           = "Authenticate"
	CmdCreateRoom             = "CreateRoom"
	CmdGetAllRooms            = "GetAllRooms"
	CmdJoinRoom               = "JoinRoom"
	CmdLeaveRoom              = "LeaveRoom"
	CmdSendMessage            = "SendMessage"
	CmdGetRoomHistory         = "GetRoomHistory"
	CmdEditMessage            = "EditMessage"
	CmdDeleteMessage          = "DeleteMessage"
	CmdGetUserRooms           = "GetUserRooms"
	CmdGetRoomMembers         = "GetRoomMembers"
	CmdUpdatePresence         = "UpdatePresence"
	CmdUpdateStatus           = "UpdateStatus"
	CmdUpdateTyping           = "UpdateTyping"
	CmdGetUnreadMentionsCount = "GetUnreadMentionsCount"
	CmdMarkMentionsRead       = "MarkMentionsRead"
	CmdMarkRoomMentionsRead   = "MarkRoomMentionsRead"
	CmdGetUserMentions        = "GetUserMentions"
	CmdAddReaction            = "AddReaction"
	CmdRemoveReaction         = "RemoveReaction"
	CmdPinMessage             = "PinMessage"
	CmdUnpinMessage           = "UnpinMessage"
	CmdGetPinnedMessages      = "GetPinnedMessages"
)

type AuthenticateCommand struct {
	Token string `json:"token"`
}

func (AuthenticateCommand) command() {}

type CreateRoomCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (CreateRoomCommand) command() {}

type GetAllRoomsCommand struct{}

func (GetAllRoomsCommand) command() {}

type JoinRoomCommand struct {
	RoomId string `json:"room_id"`
}

func (JoinRoomCommand) command() {}

type LeaveRoomCommand struct {
	RoomId string `json:"room_id"`
}

func (LeaveRoomCommand) command() {}

type SendMessageCommand struct {
	RoomId           string `json:"room_id"`
	Content          string `json:"content"`
	ReplyToMessageId string `json:"reply_to_message_id,omitempty"`
}

func (SendMessageCommand) command() {}

type GetRoomHistoryCommand struct {
	RoomId string `json:"room_id"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

func (GetRoomHistoryCommand) command() {}

type EditMessageCommand struct {
	RoomId     string `json:"room_id"`
	MessageId  string `json:"message_id"`
	NewContent string `json:"new_content"`
}

func (EditMessageCommand) command() {}

type DeleteMessageCommand struct {
	RoomId    string `json:"room_id"`
	MessageId string `json:"message_id"`
}

func (DeleteMessageCommand) command() {}

type GetUserRoomsCommand struct {
	UserId string `json:"user_id"`
}

func (GetUserRoomsCommand) command() {}

type GetRoomMembersCommand struct {
	RoomId string `json:"room_id"`
}

func (GetRoomMembersCommand) command() {}

type UpdatePresenceCommand struct {
	UserId   string         `json:"user_id"`
	Presence types.Presence `json:"presence"`
}

func (UpdatePresenceCommand) command() {}

type UpdateStatusCommand struct {
	UserId string `json:"user_id"`
	Status string `json:"status"`
}

func (UpdateStatusCommand) command() {}

type UpdateTypingCommand struct {
	RoomId   string `json:"room_id"`
	IsTyping bool   `json:"is_typing"`
}

func (UpdateTypingCommand) command() {}

type GetUnreadMentionsCountCommand struct {
	UserId string `json:"user_id"`
}

func (GetUnreadMentionsCountCommand) command() {}

type MarkMentionsReadCommand struct {
	MessageId string `json:"message_id"`
}

func (MarkMentionsReadCommand) command() {}

type MarkRoomMentionsReadCommand struct {
	RoomId string `json:"room_id"`
}

func (MarkRoomMentionsReadCommand) command() {}

type GetUserMentionsCommand struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

func (GetUserMentionsCommand) command() {}

type AddReactionCommand struct {
	RoomId    string `json:"room_id"`
	MessageId string `json:"message_id"`
	Emoji     string `json:"emoji"`
}

func (AddReactionCommand) command() {}

type RemoveReactionCommand struct {
	RoomId    string `json:"room_id"`
	MessageId string `json:"message_id"`
	Emoji     string `json:"emoji"`
}

func (RemoveReactionCommand) command() {}

type PinMessageCommand struct {
	RoomId    string `json:"room_id"`
	MessageId string `json:"message_id"`
}

func (PinMessageCommand) command() {}

type UnpinMessageCommand struct {
	RoomId    string `json:"room_id"`
	MessageId string `json:"message_id"`
}

func (UnpinMessageCommand) command() {}

type GetPinnedMessagesCommand struct {
	RoomId string `json:"room_id"`
}

func (GetPinnedMessagesCommand) command() {}

// DecodeCommand peeks the frame's "type" field and unmarshals the matching
// variant. Unknown types are an error, not a silent drop.
func DecodeCommand(raw []byte) (Command, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("parse command: %w", err)
	}

	var (
		cmd Command
		err error
	)
	switch envelope.Type {
	case CmdAuthenticate:
		cmd, err = decodeAs[AuthenticateCommand](raw)
	case CmdCreateRoom:
		cmd, err = decodeAs[CreateRoomCommand](raw)
	case CmdGetAllRooms:
		cmd, err = decodeAs[GetAllRoomsCommand](raw)
	case CmdJoinRoom:
		cmd, err = decodeAs[JoinRoomCommand](raw)
	case CmdLeaveRoom:
		cmd, err = decodeAs[LeaveRoomCommand](raw)
	case CmdSendMessage:
		cmd, err = decodeAs[SendMessageCommand](raw)
	case CmdGetRoomHistory:
		cmd, err = decodeAs[GetRoomHistoryCommand](raw)
	case CmdEditMessage:
		cmd, err = decodeAs[EditMessageCommand](raw)
	case CmdDeleteMessage:
		cmd, err = decodeAs[DeleteMessageCommand](raw)
	case CmdGetUserRooms:
		cmd, err = decodeAs[GetUserRoomsCommand](raw)
	case CmdGetRoomMembers:
		cmd, err = decodeAs[GetRoomMembersCommand](raw)
	case CmdUpdatePresence:
		cmd, err = decodeAs[UpdatePresenceCommand](raw)
	case CmdUpdateStatus:
		cmd, err = decodeAs[UpdateStatusCommand](raw)
	case CmdUpdateTyping:
		cmd, err = decodeAs[UpdateTypingCommand](raw)
	case CmdGetUnreadMentionsCount:
		cmd, err = decodeAs[GetUnreadMentionsCountCommand](raw)
	case CmdMarkMentionsRead:
		cmd, err = decodeAs[MarkMentionsReadCommand](raw)
	case CmdMarkRoomMentionsRead:
		cmd, err = decodeAs[MarkRoomMentionsReadCommand](raw)
	case CmdGetUserMentions:
		cmd, err = decodeAs[GetUserMentionsCommand](raw)
	case CmdAddReaction:
		cmd, err = decodeAs[AddReactionCommand](raw)
	case CmdRemoveReaction:
		cmd, err = decodeAs[RemoveReactionCommand](raw)
	case CmdPinMessage:
		cmd, err = decodeAs[PinMessageCommand](raw)
	case CmdUnpinMessage:
		cmd, err = decodeAs[UnpinMessageCommand](raw)
	case CmdGetPinnedMessages:
		cmd, err = decodeAs[GetPinnedMessagesCommand](raw)
	default:
		return nil, fmt.Errorf("unknown command type %q", envelope.Type)
	}
	return cmd, err
}

func decodeAs[T Command](raw []byte) (Command, error) {
	var cmd T
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return nil, fmt.Errorf("parse command: %w", err)
	}
	return cmd, nil
}
