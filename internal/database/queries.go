package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sparkchat/sparkd/internal/types"
)

const messageColumns = `id, sender_id, message_type, room_id, receiver_id, content, sent_at,
	read_at, is_read, is_edited, edited_at, reply_to_message_id, reactions,
	is_pinned, pinned_at, pinned_by`

func (db *PgRepository) CreateUser(params CreateUserParams) (User, error) {
	user := User{
		Id:           params.Id,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Presence:     types.PresenceOffline,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := db.conn.Exec(
		`INSERT INTO users (id, username, email, password_hash, presence, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.Id, user.Username, user.Email, user.PasswordHash, user.Presence, user.Status, user.CreatedAt,
	)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (db *PgRepository) GetUserByUsername(username string) (User, error) {
	row := db.conn.QueryRow(
		`SELECT id, username, email, password_hash, presence, status, created_at, last_login
		FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (db *PgRepository) GetUserById(id string) (User, error) {
	row := db.conn.QueryRow(
		`SELECT id, username, email, password_hash, presence, status, created_at, last_login
		FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (db *PgRepository) UpdateLastLogin(userId string, at time.Time) error {
	_, err := db.conn.Exec(`UPDATE users SET last_login = $1 WHERE id = $2`, at, userId)
	return err
}

func (db *PgRepository) UpdateUserPresence(userId string, presence types.Presence) error {
	_, err := db.conn.Exec(`UPDATE users SET presence = $1 WHERE id = $2`, presence, userId)
	return err
}

func (db *PgRepository) UpdateUserStatus(userId, status string) error {
	_, err := db.conn.Exec(`UPDATE users SET status = $1 WHERE id = $2`, status, userId)
	return err
}

func (db *PgRepository) CreateSession(userId, token string, expiresAt time.Time) (Session, error) {
	session := Session{
		UserId:    userId,
		Token:     token,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}

	err := db.conn.QueryRow(
		`INSERT INTO sessions (user_id, token, created_at, expires_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		session.UserId, session.Token, session.CreatedAt, session.ExpiresAt,
	).Scan(&session.Id)
	if err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

func (db *PgRepository) GetSessionByToken(token string) (Session, error) {
	var session Session
	err := db.conn.QueryRow(
		`SELECT id, user_id, token, created_at, expires_at FROM sessions WHERE token = $1`, token,
	).Scan(&session.Id, &session.UserId, &session.Token, &session.CreatedAt, &session.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	return session, nil
}

func (db *PgRepository) DeleteSession(token string) error {
	_, err := db.conn.Exec(`DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (db *PgRepository) DeleteExpiredSessions(now time.Time) error {
	_, err := db.conn.Exec(`DELETE FROM sessions WHERE expires_at < $1`, now)
	return err
}

func (db *PgRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	room := Room{
		Id:          params.Id,
		Name:        params.Name,
		Description: params.Description,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := db.conn.Exec(
		`INSERT INTO rooms (id, name, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		room.Id, room.Name, room.Description, room.CreatedBy, room.CreatedAt,
	)
	if err != nil {
		return Room{}, fmt.Errorf("create room: %w", err)
	}

	return room, nil
}

func (db *PgRepository) GetRoomById(id string) (Room, error) {
	var room Room
	err := db.conn.QueryRow(
		`SELECT id, name, description, created_by, created_at FROM rooms WHERE id = $1`, id,
	).Scan(&room.Id, &room.Name, &room.Description, &room.CreatedBy, &room.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Room{}, ErrNotFound
	}
	if err != nil {
		return Room{}, err
	}
	return room, nil
}

func (db *PgRepository) GetAllRooms() ([]Room, error) {
	rows, err := db.conn.Query(
		`SELECT id, name, description, created_by, created_at FROM rooms ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.Id, &room.Name, &room.Description, &room.CreatedBy, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (db *PgRepository) AddRoomMember(roomId, userId string) error {
	_, err := db.conn.Exec(
		`INSERT INTO room_members (room_id, user_id, joined_at)
		VALUES ($1, $2, $3) ON CONFLICT (room_id, user_id) DO NOTHING`,
		roomId, userId, time.Now().UTC(),
	)
	return err
}

func (db *PgRepository) RemoveRoomMember(roomId, userId string) error {
	_, err := db.conn.Exec(
		`DELETE FROM room_members WHERE room_id = $1 AND user_id = $2`, roomId, userId)
	return err
}

func (db *PgRepository) IsRoomMember(roomId, userId string) (bool, error) {
	var exists bool
	err := db.conn.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM room_members WHERE room_id = $1 AND user_id = $2)`,
		roomId, userId,
	).Scan(&exists)
	return exists, err
}

func (db *PgRepository) GetUserRooms(userId string) ([]Room, error) {
	rows, err := db.conn.Query(
		`SELECT r.id, r.name, r.description, r.created_by, r.created_at
		FROM rooms r JOIN room_members m ON m.room_id = r.id
		WHERE m.user_id = $1 ORDER BY m.joined_at`, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.Id, &room.Name, &room.Description, &room.CreatedBy, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (db *PgRepository) GetRoomMembers(roomId string) ([]User, error) {
	rows, err := db.conn.Query(
		`SELECT u.id, u.username, u.email, u.password_hash, u.presence, u.status, u.created_at, u.last_login
		FROM users u JOIN room_members m ON m.user_id = u.id
		WHERE m.room_id = $1 ORDER BY u.username`, roomId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (db *PgRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	msg := Message{
		Id:               params.Id,
		SenderId:         params.SenderId,
		MessageType:      params.MessageType,
		RoomId:           params.RoomId,
		ReceiverId:       params.ReceiverId,
		Content:          params.Content,
		SentAt:           time.Now().UTC(),
		ReplyToMessageId: params.ReplyToMessageId,
	}

	_, err := db.conn.Exec(
		`INSERT INTO messages (id, sender_id, message_type, room_id, receiver_id, content, sent_at, reply_to_message_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		msg.Id, msg.SenderId, msg.MessageType, nullString(msg.RoomId), nullString(msg.ReceiverId),
		msg.Content, msg.SentAt, nullString(msg.ReplyToMessageId),
	)
	if err != nil {
		return Message{}, fmt.Errorf("create message: %w", err)
	}

	return msg, nil
}

func (db *PgRepository) GetMessageById(id string) (Message, error) {
	row := db.conn.QueryRow(
		`SELECT `+messageColumns+` FROM messages WHERE id = $1`, id)
	return scanMessage(row)
}

func (db *PgRepository) GetRoomMessages(roomId string, limit, offset int) ([]Message, error) {
	rows, err := db.conn.Query(
		`SELECT `+messageColumns+` FROM messages
		WHERE room_id = $1 ORDER BY sent_at DESC LIMIT $2 OFFSET $3`,
		roomId, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (db *PgRepository) GetPrivateMessagesBetween(userId, otherId string, limit, offset int) ([]Message, error) {
	rows, err := db.conn.Query(
		`SELECT `+messageColumns+` FROM messages
		WHERE message_type = 'private'
		AND ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))
		ORDER BY sent_at DESC LIMIT $3 OFFSET $4`,
		userId, otherId, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (db *PgRepository) GetReceivedPrivateMessages(receiverId string, unreadOnly bool, limit, offset int) ([]Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
		WHERE message_type = 'private' AND receiver_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY sent_at DESC LIMIT $2 OFFSET $3`

	rows, err := db.conn.Query(query, receiverId, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (db *PgRepository) MarkPrivateMessageRead(messageId string, at time.Time) error {
	_, err := db.conn.Exec(
		`UPDATE messages SET is_read = TRUE, read_at = $1
		WHERE id = $2 AND message_type = 'private' AND is_read = FALSE`,
		at, messageId)
	return err
}

func (db *PgRepository) MarkPrivateConversationRead(receiverId, senderId string, at time.Time) error {
	_, err := db.conn.Exec(
		`UPDATE messages SET is_read = TRUE, read_at = $1
		WHERE message_type = 'private' AND receiver_id = $2 AND sender_id = $3 AND is_read = FALSE`,
		at, receiverId, senderId)
	return err
}

func (db *PgRepository) CountUnreadPrivateMessages(receiverId string) (int64, error) {
	var count int64
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM messages
		WHERE message_type = 'private' AND receiver_id = $1 AND is_read = FALSE`,
		receiverId,
	).Scan(&count)
	return count, err
}

func (db *PgRepository) EditMessage(messageId, content string, at time.Time) error {
	_, err := db.conn.Exec(
		`UPDATE messages SET content = $1, is_edited = TRUE, edited_at = $2 WHERE id = $3`,
		content, at, messageId)
	return err
}

func (db *PgRepository) DeleteMessage(messageId, senderId string) error {
	_, err := db.conn.Exec(
		`DELETE FROM messages WHERE id = $1 AND sender_id = $2`, messageId, senderId)
	return err
}

func (db *PgRepository) UpdateMessageReactions(messageId string, reactions []types.Reaction) error {
	encoded, err := encodeReactions(reactions)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(
		`UPDATE messages SET reactions = $1 WHERE id = $2`, encoded, messageId)
	return err
}

func (db *PgRepository) PinMessage(messageId, userId string, at time.Time) error {
	_, err := db.conn.Exec(
		`UPDATE messages SET is_pinned = TRUE, pinned_at = $1, pinned_by = $2 WHERE id = $3`,
		at, userId, messageId)
	return err
}

func (db *PgRepository) UnpinMessage(messageId string) error {
	_, err := db.conn.Exec(
		`UPDATE messages SET is_pinned = FALSE, pinned_at = NULL, pinned_by = NULL WHERE id = $1`,
		messageId)
	return err
}

func (db *PgRepository) GetPinnedMessages(roomId string) ([]Message, error) {
	rows, err := db.conn.Query(
		`SELECT `+messageColumns+` FROM messages
		WHERE room_id = $1 AND is_pinned = TRUE ORDER BY pinned_at DESC`, roomId)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (db *PgRepository) CreateMention(params CreateMentionParams) (Mention, error) {
	now := time.Now().UTC()
	mention := Mention{
		Id:              params.Id,
		MessageId:       params.MessageId,
		MentionedUserId: params.MentionedUserId,
		NotifiedAt:      &now,
		CreatedAt:       now,
	}

	_, err := db.conn.Exec(
		`INSERT INTO message_mentions (id, message_id, mentioned_user_id, notified_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		mention.Id, mention.MessageId, mention.MentionedUserId, mention.NotifiedAt, mention.CreatedAt,
	)
	if err != nil {
		return Mention{}, fmt.Errorf("create mention: %w", err)
	}

	return mention, nil
}

func (db *PgRepository) CountUnreadMentions(userId string) (int64, error) {
	var count int64
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM message_mentions WHERE mentioned_user_id = $1 AND is_read = FALSE`,
		userId,
	).Scan(&count)
	return count, err
}

func (db *PgRepository) MarkMentionRead(userId, messageId string, at time.Time) error {
	_, err := db.conn.Exec(
		`UPDATE message_mentions SET is_read = TRUE, read_at = $1
		WHERE mentioned_user_id = $2 AND message_id = $3 AND is_read = FALSE`,
		at, userId, messageId)
	return err
}

func (db *PgRepository) MarkRoomMentionsRead(userId, roomId string, at time.Time) error {
	_, err := db.conn.Exec(
		`UPDATE message_mentions SET is_read = TRUE, read_at = $1
		WHERE mentioned_user_id = $2 AND is_read = FALSE
		AND message_id IN (SELECT id FROM messages WHERE room_id = $3)`,
		at, userId, roomId)
	return err
}

func (db *PgRepository) GetUserMentionMessages(userId string, limit, offset int) ([]Message, error) {
	rows, err := db.conn.Query(
		`SELECT m.id, m.sender_id, m.message_type, m.room_id, m.receiver_id, m.content, m.sent_at,
			m.read_at, m.is_read, m.is_edited, m.edited_at, m.reply_to_message_id, m.reactions,
			m.is_pinned, m.pinned_at, m.pinned_by
		FROM messages m JOIN message_mentions mm ON mm.message_id = m.id
		WHERE mm.mentioned_user_id = $1
		ORDER BY m.sent_at DESC LIMIT $2 OFFSET $3`,
		userId, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		user      User
		status    sql.NullString
		lastLogin sql.NullTime
	)
	err := row.Scan(&user.Id, &user.Username, &user.Email, &user.PasswordHash,
		&user.Presence, &status, &user.CreatedAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	user.Status = status.String
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return user, nil
}

func scanMessage(row rowScanner) (Message, error) {
	var (
		msg       Message
		roomId    sql.NullString
		recvId    sql.NullString
		readAt    sql.NullTime
		editedAt  sql.NullTime
		replyTo   sql.NullString
		reactions string
		pinnedAt  sql.NullTime
		pinnedBy  sql.NullString
	)
	err := row.Scan(&msg.Id, &msg.SenderId, &msg.MessageType, &roomId, &recvId,
		&msg.Content, &msg.SentAt, &readAt, &msg.IsRead, &msg.IsEdited, &editedAt,
		&replyTo, &reactions, &msg.IsPinned, &pinnedAt, &pinnedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return Message{}, ErrNotFound
	}
	if err != nil {
		return Message{}, err
	}

	msg.RoomId = roomId.String
	msg.ReceiverId = recvId.String
	msg.ReplyToMessageId = replyTo.String
	msg.PinnedBy = pinnedBy.String
	if readAt.Valid {
		msg.ReadAt = &readAt.Time
	}
	if editedAt.Valid {
		msg.EditedAt = &editedAt.Time
	}
	if pinnedAt.Valid {
		msg.PinnedAt = &pinnedAt.Time
	}

	msg.Reactions, err = decodeReactions(reactions)
	if err != nil {
		return Message{}, err
	}

	return msg, nil
}

func collectMessages(rows *sql.Rows) ([]Message, error) {
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func encodeReactions(reactions []types.Reaction) (string, error) {
	if reactions == nil {
		reactions = []types.Reaction{}
	}
	data, err := json.Marshal(reactions)
	if err != nil {
		return "", fmt.Errorf("encode reactions: %w", err)
	}
	return string(data), nil
}

func decodeReactions(raw string) ([]types.Reaction, error) {
	if raw == "" {
		return nil, nil
	}
	var reactions []types.Reaction
	if err := json.Unmarshal([]byte(raw), &reactions); err != nil {
		return nil, fmt.Errorf("decode reactions: %w", err)
	}
	if len(reactions) == 0 {
		return nil, nil
	}
	return reactions, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
