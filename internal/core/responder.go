package core

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"lawblox.app/assistant/internal/store"
)

// Responder produces the assistant's answer to one user message.
// history holds the user's earlier exchanges, oldest first.
type Responder interface {
	Respond(ctx context.Context, user *store.User, message string, history []store.ChatMessage) (string, error)
}

var greetingWords = map[string]bool{
	"hi": true, "hello": true, "hey": true, "namaste": true, "greetings": true,
	"hola": true, "sup": true, "yo": true, "howdy": true,
}

var greetingPhrases = []string{"good morning", "good afternoon", "good evening"}

const helpText = "I'm not sure I understand.\n\n" +
	"To help you better, describe your issue using words related to:\n\n" +
	"- **Property Law**: property dispute, eviction, lease, boundary, encroachment\n" +
	"- **Criminal Law**: FIR, theft, assault, bail, complaint, fraud\n" +
	"- **Family Law**: divorce, custody, alimony, domestic violence, maintenance\n" +
	"- **Constitutional Law**: fundamental rights, discrimination, privacy, writ petition\n" +
	"- **Consumer Law**: defective product, refund, consumer forum, warranty\n" +
	"- **Labor Law**: wrongful termination, salary, PF, workplace harassment\n" +
	"- **Tort/Accident Law**: accident, negligence, compensation, injury\n" +
	"- **Intellectual Property**: copyright, trademark, patent, infringement\n" +
	"- **Environmental Law**: pollution, NGT, waste, forest rights\n" +
	"- **Cyber Law**: hacking, online fraud, cyber crime, data breach\n" +
	"- **Tax Law**: GST, income tax, tax notice, refund, ITR\n\n" +
	"**Example**: \"My landlord is not returning my security deposit\""

// GreetingResponder answers greetings with a personal welcome and anything
// else with usage help. It needs no external service.
type GreetingResponder struct {
	now func() time.Time
}

func NewGreetingResponder() *GreetingResponder {
	return &GreetingResponder{now: time.Now}
}

func (r *GreetingResponder) Respond(_ context.Context, user *store.User, message string, _ []store.ChatMessage) (string, error) {
	if IsGreeting(message) {
		return r.greeting(user), nil
	}
	return helpText, nil
}

func (r *GreetingResponder) greeting(user *store.User) string {
	name := "there"
	if user != nil && user.FirstName != "" {
		name = user.FirstName
	}

	var timeGreeting string
	switch hour := r.now().Hour(); {
	case hour < 12:
		timeGreeting = "Good morning"
	case hour < 17:
		timeGreeting = "Good afternoon"
	default:
		timeGreeting = "Good evening"
	}

	return fmt.Sprintf("%s, %s!\n\n"+
		"Welcome to LawBlox, your legal assistant for Indian law matters.\n\n"+
		"Simply describe your legal concern, and I'll guide you with relevant laws, "+
		"procedures, and landmark cases specific to Indian jurisdiction.",
		timeGreeting, name)
}

// IsGreeting matches whole greeting words, so "this" does not count as "hi".
func IsGreeting(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, phrase := range greetingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if greetingWords[w] {
			return true
		}
	}
	return false
}
