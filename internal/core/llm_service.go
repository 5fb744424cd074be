package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"lawblox.app/assistant/internal/store"
)

const (
	defaultChatModelName = "gemini-1.5-flash-latest"

	chatSystemInstruction = "You are LawBlox, a legal-information assistant for ordinary people in India. " +
		"Explain which laws, procedures and forums are relevant to the user's situation in plain language. " +
		"Keep answers concise and practical, mention landmark cases only when you are sure they exist, " +
		"and remind the user that this is general information and not a substitute for a lawyer."
)

// LLMService answers chat turns with a Gemini model.
type LLMService struct {
	client    *genai.Client
	modelName string
}

func NewLLMService(ctx context.Context, apiKey string) (*LLMService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &LLMService{
		client:    client,
		modelName: defaultChatModelName,
	}, nil
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		} else {
			log.Println("GenAI client closed.")
		}
	}
}

// Respond replays the stored exchanges as chat history and sends the new
// message as the final user turn.
func (s *LLMService) Respond(ctx context.Context, user *store.User, message string, history []store.ChatMessage) (string, error) {
	prompt := BuildPromptHistory(user, message, history)
	return s.GetChatCompletion(ctx, prompt)
}

// BuildPromptHistory converts stored exchanges into alternating
// user/model turns, ending with the new message.
func BuildPromptHistory(user *store.User, message string, history []store.ChatMessage) []*genai.Content {
	var contents []*genai.Content
	for _, msg := range history {
		contents = append(contents, &genai.Content{
			Role:  "user",
			Parts: []genai.Part{genai.Text(msg.UserMessage)},
		})
		if msg.BotResponse != "" {
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(msg.BotResponse)},
			})
		}
	}

	finalUserContent := message
	if user != nil && user.FirstName != "" {
		finalUserContent = fmt.Sprintf("(The user's name is %s.) %s", user.FirstName, message)
	}
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []genai.Part{genai.Text(finalUserContent)},
	})
	return contents
}

func (s *LLMService) GetChatCompletion(ctx context.Context, promptHistory []*genai.Content) (string, error) {
	if len(promptHistory) == 0 {
		return "", fmt.Errorf("prompt history is empty for chat completion")
	}

	lastUserMessage := promptHistory[len(promptHistory)-1]
	if lastUserMessage.Role != "user" {
		return "", fmt.Errorf("last message in history is not from 'user', cannot proceed with chat completion")
	}

	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(chatSystemInstruction)},
	}

	chatSession := model.StartChat()
	chatSession.History = promptHistory[:len(promptHistory)-1]

	resp, err := chatSession.SendMessage(ctx, lastUserMessage.Parts...)
	if err != nil {
		return "", fmt.Errorf("gemini chat SendMessage failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Println("Gemini response was empty or had no valid candidates/parts.")
		return "I'm sorry, I couldn't generate a response at this time. Please try again.", nil
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		} else {
			log.Printf("Gemini response part was not text: %T", part)
		}
	}

	if responseText.Len() == 0 {
		log.Println("Gemini response part was not text or was empty after processing.")
		return "I received an empty or non-text response, please try rephrasing your question.", nil
	}

	return responseText.String(), nil
}
