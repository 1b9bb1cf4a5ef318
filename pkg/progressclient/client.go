// Package progressclient is the HTTP client for the progress API. It
// satisfies the store interface the lesson player consumes, so a player
// can run against a remote backend the same way it runs against the
// service in-process.
package progressclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kmorley/bizenglish/internal/domain"
)

// User is the account view the API returns.
type User struct {
	Username         string `json:"username"`
	DisplayName      string `json:"displayName"`
	CompletedLessons []int  `json:"completedLessons"`
}

// Client talks to the progress API.
type Client struct {
	base string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login resolves an existing account. Unknown names fail with
// ErrNotFound.
func (c *Client) Login(ctx context.Context, name string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"name": name}, &user)
	if err != nil {
		return nil, fmt.Errorf("progressclient.Login: %w", err)
	}
	return &user, nil
}

// SignUp creates a new account. Taken names fail with ErrAlreadyExists.
func (c *Client) SignUp(ctx context.Context, name string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{"name": name}, &user)
	if err != nil {
		return nil, fmt.Errorf("progressclient.SignUp: %w", err)
	}
	return &user, nil
}

// UserExists reports whether an account exists for the given name.
func (c *Client) UserExists(ctx context.Context, name string) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(name)+"/exists", nil, &resp)
	if err != nil {
		return false, fmt.Errorf("progressclient.UserExists: %w", err)
	}
	return resp.Exists, nil
}

// GetUser returns the account record.
func (c *Client) GetUser(ctx context.Context, name string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(name), nil, &user)
	if err != nil {
		return nil, fmt.Errorf("progressclient.GetUser: %w", err)
	}
	return &user, nil
}

// GetCompletedLessons returns the completion set, sorted ascending.
func (c *Client) GetCompletedLessons(ctx context.Context, name string) ([]int, error) {
	var resp struct {
		CompletedLessons []int `json:"completedLessons"`
	}
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(name)+"/completed", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("progressclient.GetCompletedLessons: %w", err)
	}
	return resp.CompletedLessons, nil
}

// GetLessonState returns the stored document for one lesson.
func (c *Client) GetLessonState(ctx context.Context, name string, lesson int) (domain.LessonState, error) {
	var state domain.LessonState
	err := c.do(ctx, http.MethodGet, c.lessonPath(name, lesson)+"/state", nil, &state)
	if err != nil {
		return domain.LessonState{}, fmt.Errorf("progressclient.GetLessonState: %w", err)
	}
	return state, nil
}

// SaveLessonField overwrites one field of a lesson document.
func (c *Client) SaveLessonField(ctx context.Context, name string, lesson int, field string, value any) error {
	path := c.lessonPath(name, lesson) + "/fields/" + url.PathEscape(field)
	if err := c.do(ctx, http.MethodPut, path, value, nil); err != nil {
		return fmt.Errorf("progressclient.SaveLessonField: %w", err)
	}
	return nil
}

// SaveNote overwrites one note slot of a lesson document.
func (c *Client) SaveNote(ctx context.Context, name string, lesson int, slot, text string) error {
	path := c.lessonPath(name, lesson) + "/notes/" + url.PathEscape(slot)
	if err := c.do(ctx, http.MethodPut, path, map[string]string{"text": text}, nil); err != nil {
		return fmt.Errorf("progressclient.SaveNote: %w", err)
	}
	return nil
}

// MarkLessonComplete adds a lesson to the completion set.
func (c *Client) MarkLessonComplete(ctx context.Context, name string, lesson int) error {
	if err := c.do(ctx, http.MethodPost, c.lessonPath(name, lesson)+"/complete", nil, nil); err != nil {
		return fmt.Errorf("progressclient.MarkLessonComplete: %w", err)
	}
	return nil
}

// MarkLessonIncomplete removes a lesson from the completion set.
func (c *Client) MarkLessonIncomplete(ctx context.Context, name string, lesson int) error {
	if err := c.do(ctx, http.MethodDelete, c.lessonPath(name, lesson)+"/complete", nil, nil); err != nil {
		return fmt.Errorf("progressclient.MarkLessonIncomplete: %w", err)
	}
	return nil
}

// ResetProgress clears completion and every lesson document.
func (c *Client) ResetProgress(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(name)+"/reset", nil, nil); err != nil {
		return fmt.Errorf("progressclient.ResetProgress: %w", err)
	}
	return nil
}

func (c *Client) lessonPath(name string, lesson int) string {
	return fmt.Sprintf("/api/users/%s/lessons/%d", url.PathEscape(name), lesson)
}

// do runs one request. A non-nil in is sent as JSON; a non-nil out
// receives the decoded response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError converts an error response back into the domain sentinel
// the server mapped it from.
func apiError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	json.NewDecoder(resp.Body).Decode(&payload) //nolint:errcheck
	message := payload.Error
	if message == "" {
		message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", message, domain.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", message, domain.ErrAlreadyExists)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", message, domain.ErrValidation)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, message)
	}
}
