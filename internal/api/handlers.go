package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"lawblox.app/assistant/internal/auth"
	"lawblox.app/assistant/internal/core"
	"lawblox.app/assistant/internal/store"
	"lawblox.app/assistant/internal/validate"
)

const maxBodyBytes = 1 << 20

type APIHandler struct {
	chatService *core.ChatService
	tokens      *auth.TokenManager
}

func NewAPIHandler(cs *core.ChatService, tokens *auth.TokenManager) *APIHandler {
	return &APIHandler{chatService: cs, tokens: tokens}
}

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Message   string `json:"message"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

func (h *APIHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeBody(w, r, signupLoader, &req) {
		return
	}

	if err := validate.SignupFields(req.FirstName, req.Email, req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.chatService.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("Error checking user %s: %v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password for user %s: %v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to process password")
		return
	}

	user, err := h.chatService.CreateUser(req.Email, req.FirstName, hashedPassword)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("Error creating user %s: %v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	h.writeAuthResponse(w, user, "Signup successful")
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, loginLoader, &req) {
		return
	}

	if err := validate.Login(req.Email, req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.chatService.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("Error getting user %s: %v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.writeAuthResponse(w, user, "Login successful")
}

func (h *APIHandler) writeAuthResponse(w http.ResponseWriter, user *store.User, message string) {
	token, err := h.tokens.GenerateJWT(user.Email)
	if err != nil {
		log.Printf("Error generating JWT for user %s: %v", user.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Token:     token,
		Email:     user.Email,
		FirstName: user.FirstName,
		Message:   message,
	})
}

func (h *APIHandler) ChatMessageHandler(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ChatRequest
	if !decodeBody(w, r, chatMessageLoader, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	msg, err := h.chatService.PostMessage(r.Context(), user, req.Message)
	if err != nil {
		log.Printf("Error posting message for user %d: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "Failed to post message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"response":        msg.BotResponse,
		"messageId":       msg.ID,
		"detectedDomains": []string{},
		"suggestedCases":  []any{},
	})
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody reads the body, checks it against schema and decodes it into
// dst. On failure it writes a 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, schema gojsonschema.JSONLoader, dst any) bool {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := validateSchema(schema, raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
