package types

import (
	"time"
)

// Presence is a user's live availability state.
type Presence string

const (
	PresenceOnline        Presence = "Online"
	PresenceOffline       Presence = "Offline"
	PresenceAway          Presence = "Away"
	PresenceDoNotDisturb  Presence = "DoNotDisturb"
	PresenceAppearOffline Presence = "AppearOffline"
)

// ValidPresence reports whether p is one of the known presence states.
func ValidPresence(p Presence) bool {
	switch p {
	case PresenceOnline, PresenceOffline, PresenceAway, PresenceDoNotDisturb, PresenceAppearOffline:
		return true
	}
	return false
}

type MessageType string

const (
	MessageTypeRoom    MessageType = "room"
	MessageTypePrivate MessageType = "private"
	MessageTypeServer  MessageType = "server"
)

type User struct {
	Id        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Presence  Presence   `json:"presence"`
	Status    string     `json:"status,omitempty"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type Room struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Reaction is an emoji-keyed tally of the users who reacted to a message.
// UserIds and Usernames are parallel lists in insertion order.
type Reaction struct {
	Emoji     string   `json:"emoji"`
	Count     int      `json:"count"`
	UserIds   []string `json:"user_ids"`
	Usernames []string `json:"usernames"`
}

// ReplyContext is the rendered view of the message a reply points at. It is
// attached to responses only and never stored redundantly.
type ReplyContext struct {
	Id             string    `json:"id"`
	SenderUsername string    `json:"sender_username"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sent_at"`
}

type RoomMessage struct {
	Id             string        `json:"id"`
	SenderUsername string        `json:"sender_username"`
	MessageType    MessageType   `json:"message_type"`
	RoomId         string        `json:"room_id"`
	RoomName       string        `json:"room_name"`
	Content        string        `json:"content"`
	SentAt         time.Time     `json:"sent_at"`
	IsEdited       bool          `json:"is_edited"`
	EditedAt       *time.Time    `json:"edited_at,omitempty"`
	Mentions       []string      `json:"mentions"`
	ReplyTo        *ReplyContext `json:"reply_to,omitempty"`
	Reactions      []Reaction    `json:"reactions"`
	IsPinned       bool          `json:"is_pinned"`
	PinnedAt       *time.Time    `json:"pinned_at,omitempty"`
	PinnedBy       string        `json:"pinned_by,omitempty"`
}

type PrivateMessage struct {
	Id               string     `json:"id"`
	SenderUsername   string     `json:"sender_username"`
	ReceiverUsername string     `json:"receiver_username"`
	Content          string     `json:"content"`
	SentAt           time.Time  `json:"sent_at"`
	ReadAt           *time.Time `json:"read_at,omitempty"`
	IsRead           bool       `json:"is_read"`
	IsEdited         bool       `json:"is_edited"`
	EditedAt         *time.Time `json:"edited_at,omitempty"`
}

type RoomInfo struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TypingUser struct {
	UserId   string `json:"user_id"`
	Username string `json:"username"`
}
