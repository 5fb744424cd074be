package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3" // SQLite driver
)

var ErrEmailExists = errors.New("email already registered")

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases coherent and serializes writes.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS users (
        user_id INTEGER PRIMARY KEY AUTOINCREMENT,
        email TEXT UNIQUE NOT NULL,
        first_name TEXT NOT NULL,
        password_hash TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS chat_messages (
        message_id TEXT PRIMARY KEY, -- UUID
        user_id INTEGER NOT NULL,
        message_text TEXT NOT NULL,
        bot_response TEXT,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        FOREIGN KEY (user_id) REFERENCES users (user_id)
    );

    CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages (user_id, created_at);
    `
	_, err := s.db.Exec(schema)
	return err
}

// User methods

// GetUserByEmail returns nil, nil when no user has that email.
func (s *SQLiteStore) GetUserByEmail(email string) (*User, error) {
	var user User
	err := s.db.QueryRow("SELECT user_id, email, first_name, password_hash, created_at FROM users WHERE email = ?", normalizeEmail(email)).
		Scan(&user.ID, &user.Email, &user.FirstName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

func (s *SQLiteStore) CreateUser(email, firstName, passwordHash string) (*User, error) {
	res, err := s.db.Exec("INSERT INTO users (email, first_name, password_hash, created_at) VALUES (?, ?, ?, ?)",
		normalizeEmail(email), strings.TrimSpace(firstName), passwordHash, time.Now())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.getUserByID(id)
}

func (s *SQLiteStore) getUserByID(id int64) (*User, error) {
	var user User
	err := s.db.QueryRow("SELECT user_id, email, first_name, password_hash, created_at FROM users WHERE user_id = ?", id).
		Scan(&user.ID, &user.Email, &user.FirstName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// Chat history methods

func (s *SQLiteStore) CreateChatMessage(msg *ChatMessage) error {
	msg.ID = uuid.NewString() // Ensure ID is set
	msg.CreatedAt = time.Now()

	stmt, err := s.db.Prepare("INSERT INTO chat_messages (message_id, user_id, message_text, bot_response, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare chat message insert: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(msg.ID, msg.UserID, msg.UserMessage, msg.BotResponse, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to execute chat message insert: %w", err)
	}
	return nil
}

// GetRecentChatMessages returns the user's last n exchanges, oldest first.
func (s *SQLiteStore) GetRecentChatMessages(userID int64, n int) ([]ChatMessage, error) {
	query := `
        SELECT message_id, user_id, message_text, COALESCE(bot_response, ''), created_at
        FROM chat_messages
        WHERE user_id = ?
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `

	rows, err := s.db.Query(query, userID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()

	var messages []ChatMessage
	for rows.Next() {
		var msg ChatMessage
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.UserMessage, &msg.BotResponse, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
