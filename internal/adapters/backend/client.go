package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"replymate/internal/domain/entities"
	"replymate/internal/domain/ports"
)

// DefaultTimeout bounds every backend round-trip. A hung call surfaces as a
// normal request failure instead of blocking its caller indefinitely.
const DefaultTimeout = 30 * time.Second

// Client implements ports.BackendPort against the remote generation service.
// It is a pure request/response mapper: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client. A zero timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// serverError is a decoded non-2xx response body ({"error": "..."}).
type serverError struct {
	Status  int
	Message string
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// do executes one JSON round-trip. Non-2xx responses come back as
// *serverError; everything else (transport, encoding) is returned as-is for
// the per-operation classifiers to wrap.
func (c *Client) do(ctx context.Context, method, path string, reqBody, out interface{}) error {
	var body io.Reader
	if reqBody != nil {
		jsonBody, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		var errBody struct {
			Error string `json:"error"`
		}
		message := strings.TrimSpace(string(respBody))
		if err := json.Unmarshal(respBody, &errBody); err == nil && errBody.Error != "" {
			message = errBody.Error
		}
		return &serverError{Status: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// generationError normalizes a thread-operation failure. Backend-reported
// misses become NotFoundError; everything else is one GenerationError kind so
// the UI contract stays simple.
func generationError(op string, err error) error {
	var se *serverError
	if errors.As(err, &se) {
		if resource, known := ports.ResourceForSentinel(se.Message); known {
			return &ports.NotFoundError{Resource: resource}
		}
		return &ports.GenerationError{Op: op, Message: se.Message, Err: se}
	}
	return &ports.GenerationError{Op: op, Err: err}
}

// profileError normalizes a user/personality-operation failure.
func profileError(op string, err error) error {
	var se *serverError
	if errors.As(err, &se) {
		if resource, known := ports.ResourceForSentinel(se.Message); known {
			return &ports.NotFoundError{Resource: resource}
		}
		return &ports.ProfileFetchError{Op: op, Message: se.Message, Err: se}
	}
	return &ports.ProfileFetchError{Op: op, Err: err}
}

// CreateUser registers a new account record with the backend.
func (c *Client) CreateUser(ctx context.Context, name, userID string) error {
	reqBody := map[string]string{
		"name":   name,
		"userId": userID,
	}
	if err := c.do(ctx, http.MethodPost, "/users", reqBody, nil); err != nil {
		return profileError("create user", err)
	}
	return nil
}

// FetchUserProfile returns the display name and personality map for a user.
func (c *Client) FetchUserProfile(ctx context.Context, userID string) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	path := "/users/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return nil, profileError("fetch user", err)
	}
	if profile.Personalities == nil {
		profile.Personalities = make(map[string]entities.Personality)
	}
	return &profile, nil
}

// UpdateUserName changes the account display name.
func (c *Client) UpdateUserName(ctx context.Context, userID, name string) error {
	reqBody := map[string]string{"name": name}
	path := "/users/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodPut, path, reqBody, nil); err != nil {
		return profileError("update user name", err)
	}
	return nil
}

// StartThread asks the backend to draft the first reply for a new thread.
func (c *Client) StartThread(ctx context.Context, userID, contextMessage, extraInfo, personalityKey string) (*ports.ThreadReply, error) {
	reqBody := map[string]string{
		"userId":         userID,
		"userMessage":    extraInfo,
		"context":        contextMessage,
		"personalityKey": personalityKey,
	}

	var reply ports.ThreadReply
	if err := c.do(ctx, http.MethodPost, "/sendMessage", reqBody, &reply); err != nil {
		return nil, generationError("start thread", err)
	}
	return &reply, nil
}

// ContinueThread asks the backend to redraft an existing thread. The returned
// thread id may differ from the one sent; callers must adopt it.
func (c *Client) ContinueThread(ctx context.Context, userID, instruction, contextMessage, personalityKey, threadID string) (*ports.ThreadReply, error) {
	reqBody := map[string]string{
		"userId":         userID,
		"userMessage":    instruction,
		"context":        contextMessage,
		"personalityKey": personalityKey,
		"threadId":       threadID,
	}

	var reply ports.ThreadReply
	if err := c.do(ctx, http.MethodPost, "/continueThread", reqBody, &reply); err != nil {
		return nil, generationError("continue thread", err)
	}
	return &reply, nil
}

// FetchPersonalityDescription returns the full description text for one
// personality.
func (c *Client) FetchPersonalityDescription(ctx context.Context, userID, name string) (string, error) {
	var respBody struct {
		Description string `json:"description"`
	}
	path := "/users/" + url.PathEscape(userID) + "/personalities/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodGet, path, nil, &respBody); err != nil {
		return "", profileError("fetch personality", err)
	}
	return respBody.Description, nil
}

// UpdatePersonalityDescription rewrites a personality description.
func (c *Client) UpdatePersonalityDescription(ctx context.Context, userID, name, newDescription string) error {
	reqBody := map[string]string{"newDescription": newDescription}
	path := "/users/" + url.PathEscape(userID) + "/personalities/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodPut, path, reqBody, nil); err != nil {
		return profileError("update personality", err)
	}
	return nil
}

// CreatePersonality creates a new named personality.
func (c *Client) CreatePersonality(ctx context.Context, userID, name, description string) error {
	reqBody := map[string]string{
		"newPersonalityName":        name,
		"newPersonalityDescription": description,
	}
	path := "/users/" + url.PathEscape(userID) + "/personalities"
	if err := c.do(ctx, http.MethodPost, path, reqBody, nil); err != nil {
		return profileError("create personality", err)
	}
	return nil
}

// DeletePersonality removes a named personality.
func (c *Client) DeletePersonality(ctx context.Context, userID, name string) error {
	path := "/users/" + url.PathEscape(userID) + "/personalities/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return profileError("delete personality", err)
	}
	return nil
}

// Ping checks that the backend is reachable. Any HTTP response counts; the
// service has no dedicated health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend not available: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return nil
}
