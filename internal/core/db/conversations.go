package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/slackmd/slackmd/pkg/slackparse"
)

// Conversation is an archived paste with its parsed messages
type Conversation struct {
	ID           string
	Title        string
	Source       string
	Format       string
	ImportedAt   time.Time
	MessageCount int
}

// SaveConversation stores parsed messages under a new ULID and returns it
func (db *DB) SaveConversation(title, source, format string, messages []slackparse.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages to save")
	}
	if title == "" {
		title = deriveTitle(messages)
	}

	id := ulid.Make().String()

	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO conversations (id, title, source, format, message_count)
		VALUES (?, ?, ?, ?, ?)
	`, id, title, source, format, len(messages))
	if err != nil {
		return "", fmt.Errorf("insert conversation: %w", err)
	}

	for i, m := range messages {
		reactions, err := json.Marshal(m.Reactions)
		if err != nil {
			return "", fmt.Errorf("marshal reactions: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO messages (conversation_id, sequence, username, timestamp, text, reactions, thread_info, avatar)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, i, m.Username, m.Timestamp, m.Text, string(reactions), m.ThreadInfo, m.Avatar)
		if err != nil {
			return "", fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetConversation loads a conversation and its messages in sequence order
func (db *DB) GetConversation(id string) (*Conversation, []slackparse.Message, error) {
	var c Conversation
	var imported string
	err := db.conn.QueryRow(`
		SELECT id, title, COALESCE(source, ''), COALESCE(format, ''), imported_at, message_count
		FROM conversations WHERE id = ?
	`, id).Scan(&c.ID, &c.Title, &c.Source, &c.Format, &imported, &c.MessageCount)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("conversation %s not found", id)
	}
	if err != nil {
		return nil, nil, err
	}
	c.ImportedAt = parseStoredTime(imported)

	rows, err := db.conn.Query(`
		SELECT username, COALESCE(timestamp, ''), COALESCE(text, ''), COALESCE(reactions, ''), COALESCE(thread_info, ''), COALESCE(avatar, '')
		FROM messages WHERE conversation_id = ? ORDER BY sequence
	`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var messages []slackparse.Message
	for rows.Next() {
		var m slackparse.Message
		var reactions string
		if err := rows.Scan(&m.Username, &m.Timestamp, &m.Text, &reactions, &m.ThreadInfo, &m.Avatar); err != nil {
			return nil, nil, err
		}
		if reactions != "" && reactions != "null" {
			if err := json.Unmarshal([]byte(reactions), &m.Reactions); err != nil {
				return nil, nil, fmt.Errorf("unmarshal reactions: %w", err)
			}
		}
		messages = append(messages, m)
	}
	return &c, messages, rows.Err()
}

// ListConversations returns archived conversations, most recent first
func (db *DB) ListConversations(limit int) ([]Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT id, title, COALESCE(source, ''), COALESCE(format, ''), imported_at, message_count
		FROM conversations
		ORDER BY imported_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Conversation
	for rows.Next() {
		var c Conversation
		var imported string
		if err := rows.Scan(&c.ID, &c.Title, &c.Source, &c.Format, &imported, &c.MessageCount); err != nil {
			return nil, err
		}
		c.ImportedAt = parseStoredTime(imported)
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteConversation removes a conversation; messages cascade
func (db *DB) DeleteConversation(id string) error {
	res, err := db.conn.Exec(`DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("conversation %s not found", id)
	}
	return nil
}

// deriveTitle takes the first non-empty message text, truncated
func deriveTitle(messages []slackparse.Message) string {
	for _, m := range messages {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		if idx := strings.IndexByte(text, '\n'); idx > 0 {
			text = text[:idx]
		}
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		return text
	}
	return "Untitled conversation"
}

// parseStoredTime tolerates the timestamp formats SQLite hands back
func parseStoredTime(s string) time.Time {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
