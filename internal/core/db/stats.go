package db

import (
	"database/sql"
	"time"
)

// Stats represents database statistics
type Stats struct {
	TotalConversations int
	TotalMessages      int
	TotalReacted       int
	UnknownAuthored    int
	OldestImport       time.Time
	NewestImport       time.Time
	MostActiveUser     string
	MostActiveCount    int
}

// GetStats returns archive-wide statistics
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := db.QueryRow("SELECT COUNT(*) FROM conversations").Scan(&stats.TotalConversations)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&stats.TotalMessages)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM messages WHERE reactions IS NOT NULL AND reactions != '' AND reactions != 'null' AND reactions != '[]'`).Scan(&stats.TotalReacted)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM messages WHERE username = 'Unknown User'`).Scan(&stats.UnknownAuthored)
	if err != nil {
		return nil, err
	}

	if stats.TotalConversations > 0 {
		var minImported, maxImported sql.NullString
		err = db.QueryRow("SELECT MIN(imported_at), MAX(imported_at) FROM conversations").Scan(&minImported, &maxImported)
		if err != nil {
			return nil, err
		}
		if minImported.Valid {
			stats.OldestImport = parseStoredTime(minImported.String)
		}
		if maxImported.Valid {
			stats.NewestImport = parseStoredTime(maxImported.String)
		}

		// Most active author
		var user sql.NullString
		err = db.QueryRow(`
			SELECT username, COUNT(*) as count
			FROM messages
			GROUP BY username
			ORDER BY count DESC
			LIMIT 1
		`).Scan(&user, &stats.MostActiveCount)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		if user.Valid {
			stats.MostActiveUser = user.String
		}
	}

	return stats, nil
}
