package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawblox.app/assistant/internal/store"
)

func TestIsGreeting(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Hi", true},
		{"hello there!", true},
		{"Namaste ji", true},
		{"Good evening, I need help", true},
		{"this is about my lease", false},
		{"I need support with a refund", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsGreeting(tt.msg), tt.msg)
	}
}

func TestGreetingResponder(t *testing.T) {
	r := &GreetingResponder{now: func() time.Time {
		return time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	}}
	user := &store.User{FirstName: "Asha"}

	reply, err := r.Respond(context.Background(), user, "hello", nil)
	require.NoError(t, err)
	assert.Contains(t, reply, "Good morning, Asha!")

	r.now = func() time.Time { return time.Date(2025, 1, 1, 14, 0, 0, 0, time.UTC) }
	reply, _ = r.Respond(context.Background(), nil, "hey", nil)
	assert.Contains(t, reply, "Good afternoon, there!")

	r.now = func() time.Time { return time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC) }
	reply, _ = r.Respond(context.Background(), user, "yo", nil)
	assert.Contains(t, reply, "Good evening, Asha!")

	reply, err = r.Respond(context.Background(), user, "my landlord kept the deposit", nil)
	require.NoError(t, err)
	assert.Equal(t, helpText, reply)
}

func TestBuildPromptHistory(t *testing.T) {
	history := []store.ChatMessage{
		{UserMessage: "q1", BotResponse: "a1"},
		{UserMessage: "q2"},
	}

	contents := BuildPromptHistory(&store.User{FirstName: "Asha"}, "q3", history)

	require.Len(t, contents, 4)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, genai.Text("a1"), contents[1].Parts[0])
	assert.Equal(t, "user", contents[2].Role)
	assert.Equal(t, "user", contents[3].Role)
	assert.Equal(t, genai.Text("(The user's name is Asha.) q3"), contents[3].Parts[0])
}

type stubResponder struct {
	reply   string
	err     error
	history []store.ChatMessage
}

func (r *stubResponder) Respond(_ context.Context, _ *store.User, _ string, history []store.ChatMessage) (string, error) {
	r.history = history
	return r.reply, r.err
}

func newStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestChatService_PostMessage(t *testing.T) {
	db := newStore(t)
	responder := &stubResponder{reply: "See the Consumer Protection Act"}
	svc := NewChatService(db, responder)

	user, err := svc.CreateUser("asha@example.in", "Asha", "hash")
	require.NoError(t, err)

	msg, err := svc.PostMessage(context.Background(), user, "defective phone")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "See the Consumer Protection Act", msg.BotResponse)
	assert.Empty(t, responder.history)

	_, err = svc.PostMessage(context.Background(), user, "what next?")
	require.NoError(t, err)
	require.Len(t, responder.history, 1)
	assert.Equal(t, "defective phone", responder.history[0].UserMessage)
}

func TestChatService_ResponderErrorFallsBack(t *testing.T) {
	db := newStore(t)
	svc := NewChatService(db, &stubResponder{err: errors.New("quota exceeded")})

	user, err := svc.CreateUser("asha@example.in", "Asha", "hash")
	require.NoError(t, err)

	msg, err := svc.PostMessage(context.Background(), user, "hello")
	require.NoError(t, err)
	assert.Equal(t, fallbackResponse, msg.BotResponse)

	stored, err := db.GetRecentChatMessages(user.ID, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, fallbackResponse, stored[0].BotResponse)
}
