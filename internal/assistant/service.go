// Package assistant wires the validators, the API client and the session
// into the user-facing flows: sign up, log in, and chat.
package assistant

import (
	"context"
	"log"

	"lawblox.app/assistant/internal/client"
	"lawblox.app/assistant/internal/session"
	"lawblox.app/assistant/internal/validate"
)

// API is the subset of the backend contract the flows depend on.
type API interface {
	Signup(ctx context.Context, req client.SignupRequest) (*client.AuthResponse, error)
	Login(ctx context.Context, req client.LoginRequest) (*client.AuthResponse, error)
	SendMessage(ctx context.Context, req client.ChatRequest) (client.ChatResponse, error)
}

type SignupForm struct {
	FirstName       string
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginForm struct {
	Email    string
	Password string
}

type Service struct {
	api     API
	session *session.Session
}

func NewService(api API, sess *session.Session) *Service {
	if sess == nil {
		sess = session.New()
	}
	return &Service{api: api, session: sess}
}

func (s *Service) Session() *session.Session {
	return s.session
}

// Signup validates the form and, only if it passes, registers the account.
// On success the session token is replaced with the one returned.
func (s *Service) Signup(ctx context.Context, form SignupForm) (*client.AuthResponse, error) {
	if err := validate.Signup(form.FirstName, form.Email, form.Password, form.ConfirmPassword); err != nil {
		return nil, err
	}

	resp, err := s.api.Signup(ctx, client.SignupRequest{
		Email:     form.Email,
		Password:  form.Password,
		FirstName: form.FirstName,
	})
	if err != nil {
		log.Printf("Signup for %s failed: %v", form.Email, err)
		return nil, err
	}

	s.session.SetToken(resp.Token)
	log.Printf("Signup succeeded for %s", form.Email)
	return resp, nil
}

func (s *Service) Login(ctx context.Context, form LoginForm) (*client.AuthResponse, error) {
	if err := validate.Login(form.Email, form.Password); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, client.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		log.Printf("Login for %s failed: %v", form.Email, err)
		return nil, err
	}

	s.session.SetToken(resp.Token)
	log.Printf("Login succeeded for %s", form.Email)
	return resp, nil
}

// NewConversation starts an empty transcript backed by this service's API.
func (s *Service) NewConversation(opts ...ConversationOption) *Conversation {
	return NewConversation(s.api, opts...)
}
