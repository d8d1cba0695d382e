package db

func (db *DB) initSchema() error {
	schema := `
	-- Conversations table
	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		source TEXT,
		format TEXT,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		message_count INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_conversations_imported_at ON conversations(imported_at);

	-- Messages table
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id TEXT NOT NULL,
		sequence INTEGER NOT NULL,
		username TEXT NOT NULL,
		timestamp TEXT,
		text TEXT,
		reactions TEXT,
		thread_info TEXT,
		avatar TEXT,
		FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(conversation_id);
	CREATE INDEX IF NOT EXISTS idx_messages_username ON messages(username);

	-- FTS5 table for full-text search over message text
	CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
		username,
		text,
		content=messages,
		content_rowid=id,
		tokenize='porter unicode61'
	);

	-- Triggers to keep FTS in sync
	CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
		INSERT INTO messages_fts(rowid, username, text) VALUES (new.id, new.username, new.text);
	END;

	CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
		INSERT INTO messages_fts(messages_fts, rowid, username, text) VALUES ('delete', old.id, old.username, old.text);
	END;

	CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
		INSERT INTO messages_fts(messages_fts, rowid, username, text) VALUES ('delete', old.id, old.username, old.text);
		INSERT INTO messages_fts(rowid, username, text) VALUES (new.id, new.username, new.text);
	END;
	`

	_, err := db.conn.Exec(schema)
	return err
}
