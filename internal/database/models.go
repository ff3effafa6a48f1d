package database

import (
	"time"

	"github.com/sparkchat/sparkd/internal/types"
)

type User struct {
	Id           string
	Username     string
	Email        string
	PasswordHash string
	Presence     types.Presence
	Status       string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

type Session struct {
	Id        int64
	UserId    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Room struct {
	Id          string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}

type RoomMember struct {
	RoomId   string
	UserId   string
	JoinedAt time.Time
}

type Message struct {
	Id               string
	SenderId         string
	MessageType      types.MessageType
	RoomId           string
	ReceiverId       string
	Content          string
	SentAt           time.Time
	ReadAt           *time.Time
	IsRead           bool
	IsEdited         bool
	EditedAt         *time.Time
	ReplyToMessageId string
	Reactions        []types.Reaction
	IsPinned         bool
	PinnedAt         *time.Time
	PinnedBy         string
}

type Mention struct {
	Id              string
	MessageId       string
	MentionedUserId string
	IsRead          bool
	NotifiedAt      *time.Time
	ReadAt          *time.Time
	CreatedAt       time.Time
}

type CreateUserParams struct {
	Id           string
	Username     string
	Email        string
	PasswordHash string
}

type CreateRoomParams struct {
	Id          string
	Name        string
	Description string
	CreatedBy   string
}

type CreateMessageParams struct {
	Id               string
	SenderId         string
	MessageType      types.MessageType
	RoomId           string
	ReceiverId       string
	Content          string
	ReplyToMessageId string
}

type CreateMentionParams struct {
	Id              string
	MessageId       string
	MentionedUserId string
}
