package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// SearchResult represents a single search hit
type SearchResult struct {
	ConversationID    string
	ConversationTitle string
	Username          string
	Snippet           string
	Timestamp         string
	Sequence          int
}

// Search performs a full-text search over archived message text.
// Results are ordered by conversation recency, then message order.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if limit <= 0 {
		limit = 100
	}

	// Queries with FTS5 operator characters get LIKE substring matching
	// instead of being rejected by the FTS parser.
	hasSpecialChars := strings.ContainsAny(query, "-_@#$%&:\"")

	var rows *sql.Rows
	var err error

	if hasSpecialChars {
		rows, err = db.conn.Query(`
			SELECT
				c.id,
				c.title,
				m.username,
				m.text,
				COALESCE(m.timestamp, ''),
				m.sequence
			FROM messages m
			JOIN conversations c ON c.id = m.conversation_id
			WHERE m.text LIKE '%' || ? || '%'
			ORDER BY c.imported_at DESC, m.sequence
			LIMIT ?
		`, query, limit)
	} else {
		rows, err = db.conn.Query(`
			SELECT
				c.id,
				c.title,
				m.username,
				snippet(messages_fts, 1, '', '', '...', 32) as snippet,
				COALESCE(m.timestamp, ''),
				m.sequence
			FROM messages_fts
			JOIN messages m ON messages_fts.rowid = m.id
			JOIN conversations c ON c.id = m.conversation_id
			WHERE messages_fts MATCH ?
			ORDER BY c.imported_at DESC, m.sequence
			LIMIT ?
		`, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ConversationID, &r.ConversationTitle, &r.Username, &r.Snippet, &r.Timestamp, &r.Sequence); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
