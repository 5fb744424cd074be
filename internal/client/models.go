package client

import "fmt"

// Field names are part of the backend contract and must not change.

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login. A missing token decodes
// as the empty string.
type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is an open key/value body; only "response" is consumed.
type ChatResponse map[string]any

const replyKey = "response"

// Reply extracts the assistant's text. It reports false when the key is
// absent or null. Non-string values are rendered with their default
// formatting.
func (r ChatResponse) Reply() (string, bool) {
	v, ok := r[replyKey]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}
