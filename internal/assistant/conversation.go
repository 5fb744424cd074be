package assistant

import (
	"context"
	"strings"
	"sync"

	"lawblox.app/assistant/internal/client"
)

const (
	NoResponseText = "No response from server"

	// Greeting is the opening line of the chat screen.
	Greeting = "Greetings from Court Chat. Describe your matter in brief, and I will highlight the pertinent legal provisions and remedies available."
)

type State int

const (
	Idle State = iota
	Awaiting
)

func (s State) String() string {
	if s == Awaiting {
		return "awaiting"
	}
	return "idle"
}

// Message is one transcript entry.
type Message struct {
	Text     string
	FromUser bool
}

type ConversationOption func(*Conversation)

// WithGreeting seeds the transcript with a non-user opening message.
func WithGreeting(text string) ConversationOption {
	return func(c *Conversation) {
		c.messages = append(c.messages, Message{Text: text})
	}
}

// Conversation is the client side of a chat: an append-only transcript and
// a count of turns still waiting for a reply. Several turns may be in
// flight at once; replies are appended in the order they arrive.
type Conversation struct {
	api API

	mu       sync.Mutex
	messages []Message
	pending  int
}

func NewConversation(api API, opts ...ConversationOption) *Conversation {
	c := &Conversation{api: api}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Turn is a submitted user message whose reply has not been requested yet.
type Turn struct {
	conv *Conversation
	text string
	once sync.Once
	msg  Message
}

func (t *Turn) Text() string {
	return t.text
}

// Submit records a user message and returns the turn that will fetch the
// reply. Blank input is ignored: no entry, no turn.
func (c *Conversation) Submit(text string) (*Turn, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	c.mu.Lock()
	c.messages = append(c.messages, Message{Text: text, FromUser: true})
	c.pending++
	c.mu.Unlock()

	return &Turn{conv: c, text: text}, true
}

// Run sends the turn and appends the outcome to the transcript: the reply
// text, the fallback when the reply is missing, or the failure text.
// Calling Run again returns the first outcome without another request.
func (t *Turn) Run(ctx context.Context) Message {
	t.once.Do(func() {
		t.msg = Message{Text: t.conv.fetchReply(ctx, t.text)}
		t.conv.finish(t.msg)
	})
	return t.msg
}

// Send is Submit followed by Run. It reports false for blank input.
func (c *Conversation) Send(ctx context.Context, text string) (Message, bool) {
	turn, ok := c.Submit(text)
	if !ok {
		return Message{}, false
	}
	return turn.Run(ctx), true
}

func (c *Conversation) fetchReply(ctx context.Context, text string) string {
	resp, err := c.api.SendMessage(ctx, client.ChatRequest{Message: text})
	if err != nil {
		return err.Error()
	}
	if reply, ok := resp.Reply(); ok {
		return reply
	}
	return NoResponseText
}

func (c *Conversation) finish(reply Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, reply)
	c.pending--
}

func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending > 0 {
		return Awaiting
	}
	return Idle
}

// Pending is the number of turns still waiting for a reply.
func (c *Conversation) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Transcript returns a copy of the messages so far.
func (c *Conversation) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}
