package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCommand(t *testing.T) {
	tcases := []struct {
		name     string
		raw      string
		expected Command
	}{
		{
			name:     "authenticate",
			raw:      `{"type":"Authenticate","token":"abc"}`,
			expected: AuthenticateCommand{Token: "abc"},
		},
		{
			name:     "create room",
			raw:      `{"type":"CreateRoom","name":"general","description":"chat"}`,
			expected: CreateRoomCommand{Name: "general", Description: "chat"},
		},
		{
			name:     "send message with reply",
			raw:      `{"type":"SendMessage","room_id":"r1","content":"hi","reply_to_message_id":"m1"}`,
			expected: SendMessageCommand{RoomId: "r1", Content: "hi", ReplyToMessageId: "m1"},
		},
		{
			name:     "history with paging",
			raw:      `{"type":"GetRoomHistory","room_id":"r1","limit":10,"offset":20}`,
			expected: GetRoomHistoryCommand{RoomId: "r1", Limit: 10, Offset: 20},
		},
		{
			name:     "typing",
			raw:      `{"type":"UpdateTyping","room_id":"r1","is_typing":true}`,
			expected: UpdateTypingCommand{RoomId: "r1", IsTyping: true},
		},
		{
			name:     "reaction",
			raw:      `{"type":"AddReaction","room_id":"r1","message_id":"m1","emoji":"👍"}`,
			expected: AddReactionCommand{RoomId: "r1", MessageId: "m1", Emoji: "👍"},
		},
		{
			name:     "no payload",
			raw:      `{"type":"GetAllRooms"}`,
			expected: GetAllRoomsCommand{},
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := DecodeCommand([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cmd)
		})
	}
}

func TestDecodeCommandErrors(t *testing.T) {
	_, err := DecodeCommand([]byte(`{"type":"NoSuchCommand"}`))
	assert.ErrorContains(t, err, "unknown command type")

	_, err = DecodeCommand([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeCommand([]byte(`{"type":"SendMessage","content":7}`))
	assert.Error(t, err)
}
