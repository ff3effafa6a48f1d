package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkchat/sparkd/internal/testutil"
	"github.com/sparkchat/sparkd/internal/types"
)

func newRegistryClient(t *testing.T, id, username string) *Client {
	c := NewClient(nil, nil, testutil.TestLogger(t))
	c.user = types.User{Id: id, Username: username}
	c.authenticated = true
	return c
}

func TestRegistryJoinLeave(t *testing.T) {
	r := NewRegistry(testutil.TestLogger(t))

	// joining before the client is registered fails
	err := r.JoinRoom("room1", "u1")
	assert.EqualError(t, err, "client not found")

	alice := newRegistryClient(t, "u1", "alice")
	r.AddClient(alice)
	assert.True(t, r.IsConnected("u1"))

	require.NoError(t, r.JoinRoom("room1", "u1"))
	assert.Equal(t, []string{"room1"}, r.ClientRooms("u1"))

	require.NoError(t, r.LeaveRoom("room1", "u1"))
	assert.Empty(t, r.ClientRooms("u1"))

	err = r.LeaveRoom("room1", "u2")
	assert.EqualError(t, err, "client not found")
}

func TestRegistryRestoreRooms(t *testing.T) {
	r := NewRegistry(testutil.TestLogger(t))

	alice := newRegistryClient(t, "u1", "alice")
	r.AddClient(alice)

	require.NoError(t, r.RestoreRooms("u1", []string{"room1", "room2"}))
	assert.ElementsMatch(t, []string{"room1", "room2"}, r.ClientRooms("u1"))
}

func TestRegistryRemoveClientPurgesState(t *testing.T) {
	r := NewRegistry(testutil.TestLogger(t))

	alice := newRegistryClient(t, "u1", "alice")
	r.AddClient(alice)
	require.NoError(t, r.JoinRoom("room1", "u1"))
	require.NoError(t, r.SetTyping("u1", "room1", true))

	r.RemoveClient("u1")

	assert.False(t, r.IsConnected("u1"))
	assert.Empty(t, r.ClientRooms("u1"))
	assert.Empty(t, r.TypingUsers("room1"))
}

func TestRegistryBroadcast(t *testing.T) {
	r := NewRegistry(testutil.TestLogger(t))

	alice := newRegistryClient(t, "u1", "alice")
	bob := newRegistryClient(t, "u2", "bob")
	r.AddClient(alice)
	r.AddClient(bob)
	require.NoError(t, r.JoinRoom("room1", "u1"))
	require.NoError(t, r.JoinRoom("room1", "u2"))

	r.BroadcastToRoom("room1", NewRoomLeftEvent("room1"))

	assert.Len(t, alice.send, 1)
	assert.Len(t, bob.send, 1)

	// subscribers of other rooms hear nothing
	r.BroadcastToRoom("room2", NewRoomLeftEvent("room2"))
	assert.Len(t, alice.send, 1)
}

func TestRegistryBroadcastBestEffort(t *testing.T) {
	r := NewRegistry(testutil.TestLogger(t))

	alice := newRegistryClient(t, "u1", "alice")
	r.AddClient(alice)
	require.NoError(t, r.JoinRoom("room1", "u1"))

	for i := 0; i < sendQueueSize; i++ {
		require.True(t, alice.queueEvent(NewRoomLeftEvent("room1")))
	}

	// a full queue drops the event instead of blocking
	r.BroadcastToRoom("room1", NewRoomLeftEvent("room1"))
	assert.Len(t, alice.send, sendQueueSize)
}

func TestRegistrySendToUser(t *testing.T) {
	r := NewRegistry(testutil.TestLogger(t))

	alice := newRegistryClient(t, "u1", "alice")
	r.AddClient(alice)

	assert.True(t, r.SendToUser("u1", NewUnreadMentionsCountEvent(1)))
	assert.Len(t, alice.send, 1)

	assert.False(t, r.SendToUser("u2", NewUnreadMentionsCountEvent(1)))
}

func TestRegistryTyping(t *testing.T) {
	r := NewRegistry(testutil.TestLogger(t))

	alice := newRegistryClient(t, "u1", "alice")
	r.AddClient(alice)

	// typing requires a room subscription
	err := r.SetTyping("u1", "room1", true)
	assert.EqualError(t, err, "not subscribed to room")

	require.NoError(t, r.JoinRoom("room1", "u1"))
	require.NoError(t, r.SetTyping("u1", "room1", true))

	typers := r.TypingUsers("room1")
	require.Len(t, typers, 1)
	assert.Equal(t, types.TypingUser{UserId: "u1", Username: "alice"}, typers[0])

	require.NoError(t, r.SetTyping("u1", "room1", false))
	assert.Empty(t, r.TypingUsers("room1"))

	// leaving a room clears the typing flag too
	require.NoError(t, r.SetTyping("u1", "room1", true))
	require.NoError(t, r.LeaveRoom("room1", "u1"))
	assert.Empty(t, r.TypingUsers("room1"))
}
