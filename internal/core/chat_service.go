package core

import (
	"context"
	"fmt"
	"log"

	"lawblox.app/assistant/internal/store"
)

const (
	historyTurns = 5

	fallbackResponse = "I'm sorry, I encountered an error while processing your request."
)

// UserStore is the persistence the chat service needs.
type UserStore interface {
	GetUserByEmail(email string) (*store.User, error)
	CreateUser(email, firstName, passwordHash string) (*store.User, error)
	CreateChatMessage(msg *store.ChatMessage) error
	GetRecentChatMessages(userID int64, n int) ([]store.ChatMessage, error)
}

type ChatService struct {
	dbStore   UserStore
	responder Responder
}

func NewChatService(db UserStore, responder Responder) *ChatService {
	return &ChatService{
		dbStore:   db,
		responder: responder,
	}
}

func (s *ChatService) GetUserByEmail(email string) (*store.User, error) {
	return s.dbStore.GetUserByEmail(email)
}

func (s *ChatService) CreateUser(email, firstName, passwordHash string) (*store.User, error) {
	return s.dbStore.CreateUser(email, firstName, passwordHash)
}

// PostMessage answers one user message and records the exchange. A failing
// responder yields a canned apology rather than an error.
func (s *ChatService) PostMessage(ctx context.Context, user *store.User, userContent string) (*store.ChatMessage, error) {
	history, err := s.dbStore.GetRecentChatMessages(user.ID, historyTurns)
	if err != nil {
		log.Printf("Error getting chat history for user %d: %v. Proceeding without history.", user.ID, err)
		history = nil
	}

	botResponse, err := s.responder.Respond(ctx, user, userContent, history)
	if err != nil {
		log.Printf("Error generating response for user %d: %v", user.ID, err)
		botResponse = fallbackResponse
	}

	msg := store.ChatMessage{
		UserID:      user.ID,
		UserMessage: userContent,
		BotResponse: botResponse,
	}
	if err := s.dbStore.CreateChatMessage(&msg); err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}
	return &msg, nil
}
