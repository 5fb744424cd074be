// Package client implements the LawBlox backend contract: signup, login and
// chat messages as JSON over HTTP against one configured base endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lawblox.app/assistant/internal/session"
)

const (
	signupPath  = "/api/auth/signup"
	loginPath   = "/api/auth/login"
	messagePath = "/api/chat/message"

	defaultTimeout  = 30 * time.Second
	maxErrorBodyLog = 512
)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	session    *session.Session
}

// New binds a client to baseURL (for example "http://10.0.2.2:8080/") and
// the session whose token authorizes chat calls. A nil httpClient gets a
// default one with a 30 second timeout.
func New(baseURL string, sess *session.Session, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}
	if sess == nil {
		sess = session.New()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: u, httpClient: httpClient, session: sess}, nil
}

func (c *Client) Session() *session.Session {
	return c.session
}

// Signup registers a new account. It does not touch the session; callers
// store the returned token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, OpSignup, signupPath, req, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, OpLogin, loginPath, req, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage posts one chat turn with the session's bearer token. The
// token is sent even when empty; rejecting it is the server's job.
func (c *Client) SendMessage(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	out := ChatResponse{}
	if err := c.post(ctx, OpChat, messagePath, req, true, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = ChatResponse{}
	}
	return out, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.ResolveReference(&url.URL{Path: path}).String()
}

func (c *Client) post(ctx context.Context, op, path string, body any, authorized bool, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", strings.ToLower(op), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", strings.ToLower(op), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authorized {
		req.Header.Set("Authorization", c.session.BearerHeader())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLog))
		log.Printf("%s failed with status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(snippet)))
		return &StatusError{Op: op, Code: resp.StatusCode, Body: string(snippet)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("malformed response body: %w", err)}
	}
	return nil
}
