package store

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	PasswordHash string    `json:"-"` // Do not expose this in JSON responses
	CreatedAt    time.Time `json:"createdAt"`
}

// ChatMessage is one exchange: what the user asked and what was answered.
type ChatMessage struct {
	ID          string    `json:"id"` // UUID
	UserID      int64     `json:"userId"`
	UserMessage string    `json:"userMessage"`
	BotResponse string    `json:"botResponse"`
	CreatedAt   time.Time `json:"createdAt"`
}
