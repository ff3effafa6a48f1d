package message

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkchat/sparkd/internal/database"
	"github.com/sparkchat/sparkd/internal/testutil"
	"github.com/sparkchat/sparkd/internal/types"
)

func newTestService(t *testing.T) (*Service, *database.MemoryRepository) {
	db := database.NewMemoryRepository()
	svc := NewService(testutil.TestLogger(t), db)

	var n int
	svc.generateRoomId = func() (string, error) {
		n++
		return fmt.Sprintf("room-%d", n), nil
	}
	return svc, db
}

func seedUser(t *testing.T, db *database.MemoryRepository, username string) database.User {
	t.Helper()
	user, err := db.CreateUser(database.CreateUserParams{
		Id:           "user-" + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return user
}

func TestCreateRoom(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")

	room, err := svc.CreateRoom(alice.Id, "general", "the general room")
	require.NoError(t, err)
	assert.Equal(t, "room-1", room.Id)
	assert.Equal(t, "general", room.Name)
	assert.Equal(t, alice.Id, room.CreatedBy)

	// the creator joins automatically
	isMember, err := svc.IsRoomMember(room.Id, alice.Id)
	require.NoError(t, err)
	assert.True(t, isMember)

	_, err = svc.CreateRoom(alice.Id, "   ", "")
	assert.True(t, types.IsInvalidInput(err))

	_, err = svc.CreateRoom(alice.Id, strings.Repeat("x", maxRoomNameLen+1), "")
	assert.True(t, types.IsInvalidInput(err))
}

func TestJoinAndLeaveRoom(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)

	_, err = svc.JoinRoom(room.Id, bob.Id)
	require.NoError(t, err)

	// joining twice is a no-op
	_, err = svc.JoinRoom(room.Id, bob.Id)
	require.NoError(t, err)

	members, err := svc.GetRoomMembers(room.Id)
	require.NoError(t, err)
	require.Len(t, members, 2)

	require.NoError(t, svc.LeaveRoom(room.Id, bob.Id))
	require.NoError(t, svc.LeaveRoom(room.Id, bob.Id))

	members, err = svc.GetRoomMembers(room.Id)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "alice", members[0].Username)

	_, err = svc.JoinRoom("no-such-room", bob.Id)
	assert.True(t, types.IsInvalidInput(err))
}

func TestSendRoomMessage(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)

	msg, mentioned, err := svc.SendRoomMessage(alice.Id, room.Id, "hello world", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", msg.SenderUsername)
	assert.Equal(t, room.Id, msg.RoomId)
	assert.Equal(t, "general", msg.RoomName)
	assert.Equal(t, "hello world", msg.Content)
	assert.Empty(t, mentioned)

	// non-members cannot post
	_, _, err = svc.SendRoomMessage(bob.Id, room.Id, "hi", "")
	assert.True(t, types.IsInvalidInput(err))

	_, _, err = svc.SendRoomMessage(alice.Id, room.Id, "   ", "")
	assert.True(t, types.IsInvalidInput(err))

	_, _, err = svc.SendRoomMessage(alice.Id, room.Id, strings.Repeat("a", maxContentLength+1), "")
	assert.True(t, types.IsInvalidInput(err))
}

func TestSendRoomMessageReply(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)

	parent, _, err := svc.SendRoomMessage(alice.Id, room.Id, "original", "")
	require.NoError(t, err)

	reply, _, err := svc.SendRoomMessage(alice.Id, room.Id, "reply", parent.Id)
	require.NoError(t, err)
	require.NotNil(t, reply.ReplyTo)
	assert.Equal(t, parent.Id, reply.ReplyTo.Id)
	assert.Equal(t, "original", reply.ReplyTo.Content)
	assert.Equal(t, "alice", reply.ReplyTo.SenderUsername)

	// reply target must exist in the same room
	other, err := svc.CreateRoom(alice.Id, "other", "")
	require.NoError(t, err)
	_, _, err = svc.SendRoomMessage(alice.Id, other.Id, "cross-room reply", parent.Id)
	assert.True(t, types.IsInvalidInput(err))

	_, _, err = svc.SendRoomMessage(alice.Id, room.Id, "dangling reply", "missing-id")
	assert.True(t, types.IsInvalidInput(err))
}

func TestMentions(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)
	_, err = svc.JoinRoom(room.Id, bob.Id)
	require.NoError(t, err)
	_, err = svc.JoinRoom(room.Id, carol.Id)
	require.NoError(t, err)

	t.Run("single mention", func(t *testing.T) {
		msg, mentioned, err := svc.SendRoomMessage(alice.Id, room.Id, "hey @bob, look at this", "")
		require.NoError(t, err)
		assert.Equal(t, []string{bob.Id}, mentioned)
		assert.Equal(t, []string{"bob"}, msg.Mentions)
	})

	t.Run("everyone excludes sender", func(t *testing.T) {
		_, mentioned, err := svc.SendRoomMessage(alice.Id, room.Id, "@everyone meeting now", "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{bob.Id, carol.Id}, mentioned)
	})

	t.Run("everyone is case-insensitive", func(t *testing.T) {
		_, mentioned, err := svc.SendRoomMessage(alice.Id, room.Id, "@EVERYONE hello", "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{bob.Id, carol.Id}, mentioned)
	})

	t.Run("registered non-member is mentioned", func(t *testing.T) {
		dave := seedUser(t, db, "dave")
		msg, mentioned, err := svc.SendRoomMessage(alice.Id, room.Id, "hi @dave", "")
		require.NoError(t, err)
		assert.Equal(t, []string{dave.Id}, mentioned)
		assert.Equal(t, []string{"dave"}, msg.Mentions)
	})

	t.Run("unknown names are dropped", func(t *testing.T) {
		_, mentioned, err := svc.SendRoomMessage(alice.Id, room.Id, "ping @nosuchuser", "")
		require.NoError(t, err)
		assert.Empty(t, mentioned)
	})

	t.Run("self mention is dropped", func(t *testing.T) {
		_, mentioned, err := svc.SendRoomMessage(alice.Id, room.Id, "note to @alice", "")
		require.NoError(t, err)
		assert.Empty(t, mentioned)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		_, mentioned, err := svc.SendRoomMessage(alice.Id, room.Id, "@bob @bob @everyone", "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{bob.Id, carol.Id}, mentioned)
	})
}

func TestUnreadMentions(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)
	_, err = svc.JoinRoom(room.Id, bob.Id)
	require.NoError(t, err)

	msg, _, err := svc.SendRoomMessage(alice.Id, room.Id, "hi @bob", "")
	require.NoError(t, err)

	count, err := svc.UnreadMentionsCount(bob.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.MarkMentionRead(bob.Id, msg.Id))

	count, err = svc.UnreadMentionsCount(bob.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, _, err = svc.SendRoomMessage(alice.Id, room.Id, "@bob one", "")
	require.NoError(t, err)
	_, _, err = svc.SendRoomMessage(alice.Id, room.Id, "@bob two", "")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRoomMentionsRead(bob.Id, room.Id))

	count, err = svc.UnreadMentionsCount(bob.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	mentions, err := svc.GetUserMentions(bob.Id, 0, 0)
	require.NoError(t, err)
	assert.Len(t, mentions, 3)
}

func TestGetRoomMessages(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err := svc.SendRoomMessage(alice.Id, room.Id, fmt.Sprintf("message %d", i), "")
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	messages, err := svc.GetRoomMessages(alice.Id, room.Id, 0, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	// newest first
	assert.Equal(t, "message 2", messages[0].Content)
	assert.Equal(t, "message 0", messages[2].Content)

	messages, err = svc.GetRoomMessages(alice.Id, room.Id, 2, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	messages, err = svc.GetRoomMessages(alice.Id, room.Id, 2, 2)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	// non-members cannot read history
	_, err = svc.GetRoomMessages(bob.Id, room.Id, 0, 0)
	assert.True(t, types.IsInvalidInput(err))
}

func TestClampPage(t *testing.T) {
	limit, offset := clampPage(0, -5, defaultHistoryLimit)
	assert.Equal(t, defaultHistoryLimit, limit)
	assert.Equal(t, 0, offset)

	limit, _ = clampPage(1000, 0, defaultHistoryLimit)
	assert.Equal(t, maxPageLimit, limit)

	limit, offset = clampPage(10, 20, defaultHistoryLimit)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)
}

func TestEditMessage(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)

	msg, _, err := svc.SendRoomMessage(alice.Id, room.Id, "first draft", "")
	require.NoError(t, err)

	require.NoError(t, svc.EditMessage(msg.Id, "second draft"))

	messages, err := svc.GetRoomMessages(alice.Id, room.Id, 0, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "second draft", messages[0].Content)
	assert.True(t, messages[0].IsEdited)
	assert.NotNil(t, messages[0].EditedAt)

	assert.True(t, types.IsInvalidInput(svc.EditMessage(msg.Id, " ")))
}

func TestDeleteMessage(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)
	_, err = svc.JoinRoom(room.Id, bob.Id)
	require.NoError(t, err)

	msg, _, err := svc.SendRoomMessage(alice.Id, room.Id, "delete me", "")
	require.NoError(t, err)

	// only the sender can delete; anyone else is a silent no-op
	require.NoError(t, svc.DeleteMessage(msg.Id, bob.Id))
	messages, err := svc.GetRoomMessages(alice.Id, room.Id, 0, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	require.NoError(t, svc.DeleteMessage(msg.Id, alice.Id))
	messages, err = svc.GetRoomMessages(alice.Id, room.Id, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestReactions(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)
	_, err = svc.JoinRoom(room.Id, bob.Id)
	require.NoError(t, err)

	msg, _, err := svc.SendRoomMessage(alice.Id, room.Id, "react to this", "")
	require.NoError(t, err)

	reactions, err := svc.AddReaction(msg.Id, alice.Id, "👍")
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, 1, reactions[0].Count)

	// same user, same emoji is a no-op
	reactions, err = svc.AddReaction(msg.Id, alice.Id, "👍")
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, 1, reactions[0].Count)

	reactions, err = svc.AddReaction(msg.Id, bob.Id, "👍")
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, 2, reactions[0].Count)
	assert.ElementsMatch(t, []string{"alice", "bob"}, reactions[0].Usernames)

	reactions, err = svc.AddReaction(msg.Id, bob.Id, "🎉")
	require.NoError(t, err)
	assert.Len(t, reactions, 2)

	reactions, err = svc.RemoveReaction(msg.Id, alice.Id, "👍")
	require.NoError(t, err)
	require.Len(t, reactions, 2)

	// the bucket disappears once the last user removes theirs
	reactions, err = svc.RemoveReaction(msg.Id, bob.Id, "👍")
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "🎉", reactions[0].Emoji)

	// removing a reaction that was never added is a no-op
	reactions, err = svc.RemoveReaction(msg.Id, alice.Id, "🚀")
	require.NoError(t, err)
	assert.Len(t, reactions, 1)

	_, err = svc.AddReaction(msg.Id, alice.Id, "  ")
	assert.True(t, types.IsInvalidInput(err))

	_, err = svc.AddReaction("missing", alice.Id, "👍")
	assert.True(t, types.IsInvalidInput(err))
}

func TestPins(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)

	first, _, err := svc.SendRoomMessage(alice.Id, room.Id, "pin one", "")
	require.NoError(t, err)
	second, _, err := svc.SendRoomMessage(alice.Id, room.Id, "pin two", "")
	require.NoError(t, err)

	pinned, err := svc.PinMessage(first.Id, alice.Id)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)
	assert.Equal(t, "alice", pinned.PinnedBy)
	require.NotNil(t, pinned.PinnedAt)

	time.Sleep(time.Millisecond)
	_, err = svc.PinMessage(second.Id, alice.Id)
	require.NoError(t, err)

	// newest pin first
	messages, err := svc.GetPinnedMessages(room.Id)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, second.Id, messages[0].Id)
	assert.Equal(t, first.Id, messages[1].Id)

	roomId, err := svc.UnpinMessage(first.Id)
	require.NoError(t, err)
	assert.Equal(t, room.Id, roomId)

	messages, err = svc.GetPinnedMessages(room.Id)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, second.Id, messages[0].Id)
}

func TestPinPrivateMessageRejected(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	pm, err := svc.SendPrivateMessage(alice.Id, bob.Id, "just for you")
	require.NoError(t, err)

	_, err = svc.PinMessage(pm.Id, alice.Id)
	assert.True(t, types.IsInvalidInput(err))
}

func TestPrivateMessages(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	pm, err := svc.SendPrivateMessage(alice.Id, bob.Id, "hello bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", pm.SenderUsername)
	assert.Equal(t, "bob", pm.ReceiverUsername)
	assert.False(t, pm.IsRead)

	_, err = svc.SendPrivateMessage(alice.Id, "no-such-user", "hi")
	assert.True(t, types.IsInvalidInput(err))

	count, err := svc.UnreadPrivateMessageCount(bob.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	inbox, err := svc.GetPrivateMessages(bob.Id, "", true, 0, 0)
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	require.NoError(t, svc.MarkPrivateMessageRead(pm.Id))

	count, err = svc.UnreadPrivateMessageCount(bob.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	inbox, err = svc.GetPrivateMessages(bob.Id, "", true, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, inbox)

	// conversation view includes both directions
	_, err = svc.SendPrivateMessage(bob.Id, alice.Id, "hello alice")
	require.NoError(t, err)

	conv, err := svc.GetPrivateMessages(alice.Id, bob.Id, false, 0, 0)
	require.NoError(t, err)
	assert.Len(t, conv, 2)
}

func TestMarkPrivateConversationRead(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.SendPrivateMessage(alice.Id, bob.Id, "one")
	require.NoError(t, err)
	_, err = svc.SendPrivateMessage(alice.Id, bob.Id, "two")
	require.NoError(t, err)

	require.NoError(t, svc.MarkPrivateConversationRead(bob.Id, alice.Id))

	count, err := svc.UnreadPrivateMessageCount(bob.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPresenceAndStatus(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")

	require.NoError(t, svc.UpdateUserPresence(alice.Id, types.PresenceAway))
	user, err := db.GetUserById(alice.Id)
	require.NoError(t, err)
	assert.Equal(t, types.PresenceAway, user.Presence)

	assert.True(t, types.IsInvalidInput(svc.UpdateUserPresence(alice.Id, "Invisible")))

	require.NoError(t, svc.UpdateUserStatus(alice.Id, "out to lunch"))
	user, err = db.GetUserById(alice.Id)
	require.NoError(t, err)
	assert.Equal(t, "out to lunch", user.Status)

	err = svc.UpdateUserStatus(alice.Id, strings.Repeat("x", maxStatusLen+1))
	assert.True(t, types.IsInvalidInput(err))
}

func TestSendRoomAnnouncement(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	room, err := svc.CreateRoom(alice.Id, "general", "")
	require.NoError(t, err)

	msg, err := svc.SendRoomAnnouncement(alice.Id, room.Id, "alice has joined the room")
	require.NoError(t, err)
	assert.Equal(t, serverSenderName, msg.SenderUsername)
	assert.Equal(t, types.MessageTypeServer, msg.MessageType)
	assert.Empty(t, msg.Mentions)

	messages, err := svc.GetRoomMessages(alice.Id, room.Id, 0, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, types.MessageTypeServer, messages[0].MessageType)
}

func TestGetRooms(t *testing.T) {
	svc, db := newTestService(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	r1, err := svc.CreateRoom(alice.Id, "general", "chat")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	r2, err := svc.CreateRoom(bob.Id, "random", "")
	require.NoError(t, err)

	all, err := svc.GetAllRooms()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, r1.Id, all[0].Id)
	assert.Equal(t, r2.Id, all[1].Id)

	_, err = svc.JoinRoom(r2.Id, alice.Id)
	require.NoError(t, err)

	mine, err := svc.GetUserRooms(alice.Id)
	require.NoError(t, err)
	require.Len(t, mine, 2)
}
