package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawblox.app/assistant/internal/client"
	"lawblox.app/assistant/internal/session"
)

func TestConversation_Reply(t *testing.T) {
	api := &fakeAPI{chatResp: client.ChatResponse{"response": "Go to the consumer court"}}
	conv := NewConversation(api)

	msg, ok := conv.Send(context.Background(), "My refund was denied")

	require.True(t, ok)
	assert.Equal(t, Message{Text: "Go to the consumer court"}, msg)
	assert.Equal(t, []Message{
		{Text: "My refund was denied", FromUser: true},
		{Text: "Go to the consumer court"},
	}, conv.Transcript())
	assert.Equal(t, Idle, conv.State())
}

func TestConversation_MissingReplyFallsBack(t *testing.T) {
	api := &fakeAPI{chatResp: client.ChatResponse{}}
	conv := NewConversation(api)

	msg, ok := conv.Send(context.Background(), "hello")

	require.True(t, ok)
	assert.Equal(t, "No response from server", msg.Text)
	assert.False(t, msg.FromUser)
}

func TestConversation_FailureBecomesMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"status", &client.StatusError{Op: client.OpChat, Code: 403}, "Chat failed: 403"},
		{"transport", &client.TransportError{Op: client.OpChat, Err: errors.New("connection refused")}, "Network error: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConversation(&fakeAPI{chatErr: tt.err})

			msg, ok := conv.Send(context.Background(), "hi")

			require.True(t, ok)
			assert.Equal(t, tt.want, msg.Text)
			assert.Len(t, conv.Transcript(), 2)
			assert.Equal(t, Idle, conv.State())
		})
	}
}

func TestConversation_BlankInputIgnored(t *testing.T) {
	api := &fakeAPI{chatResp: client.ChatResponse{"response": "x"}}
	conv := NewConversation(api, WithGreeting(Greeting))

	for _, text := range []string{"", "   ", "\n\t"} {
		turn, ok := conv.Submit(text)
		assert.False(t, ok)
		assert.Nil(t, turn)
		_, ok = conv.Send(context.Background(), text)
		assert.False(t, ok)
	}

	assert.Equal(t, []Message{{Text: Greeting}}, conv.Transcript())
	assert.Equal(t, 0, api.sentMessages())
	assert.Equal(t, Idle, conv.State())
}

func TestConversation_SubmitThenRun(t *testing.T) {
	api := &fakeAPI{chatResp: client.ChatResponse{"response": "ok"}}
	conv := NewConversation(api)

	turn, ok := conv.Submit("question")
	require.True(t, ok)
	assert.Equal(t, "question", turn.Text())
	assert.Equal(t, Awaiting, conv.State())
	assert.Equal(t, 1, conv.Pending())
	assert.Len(t, conv.Transcript(), 1)

	first := turn.Run(context.Background())
	second := turn.Run(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.sentMessages())
	assert.Equal(t, Idle, conv.State())
	assert.Len(t, conv.Transcript(), 2)
}

func TestConversation_ConcurrentTurnsAllowed(t *testing.T) {
	api := &fakeAPI{chatResp: client.ChatResponse{"response": "ok"}}
	conv := NewConversation(api)

	var turns []*Turn
	for _, q := range []string{"one", "two", "three"} {
		turn, ok := conv.Submit(q)
		require.True(t, ok)
		turns = append(turns, turn)
	}
	assert.Equal(t, 3, conv.Pending())

	var wg sync.WaitGroup
	for _, turn := range turns {
		wg.Add(1)
		go func(turn *Turn) {
			defer wg.Done()
			turn.Run(context.Background())
		}(turn)
	}
	wg.Wait()

	assert.Equal(t, Idle, conv.State())
	assert.Equal(t, 3, api.sentMessages())
	assert.Len(t, conv.Transcript(), 6)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "awaiting", Awaiting.String())
}

// End to end through the real HTTP client: login stores the token and the
// next chat turn presents it.
func TestLoginThenChat_OverHTTP(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "abc", "message": "Login successful"})
	})
	mux.HandleFunc("/api/chat/message", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"response": "File a complaint", "suggestedCases": []any{}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sess := session.New()
	c, err := client.New(srv.URL+"/", sess, nil)
	require.NoError(t, err)
	svc := NewService(c, sess)

	_, err = svc.Login(context.Background(), LoginForm{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.Token())

	msg, ok := svc.NewConversation().Send(context.Background(), "cheated online")
	require.True(t, ok)
	assert.Equal(t, "File a complaint", msg.Text)
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestLoginFailure_OverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, nil, nil)
	require.NoError(t, err)
	svc := NewService(c, c.Session())

	_, err = svc.Login(context.Background(), LoginForm{Email: "a@b.co", Password: "wrong"})

	require.Error(t, err)
	assert.Equal(t, "Login failed: 401", err.Error())
	assert.False(t, c.Session().Authenticated())
}
