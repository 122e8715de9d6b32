// Package auth talks to the remote Habit Forge authentication API and
// manages the locally persisted session.
package auth

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
)

// User identifies the account returned by a successful login.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// APIError is a non-2xx response from the auth service, carrying the
// server's message body when one was sent.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("auth: server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("auth: server returned %d", e.Status)
}

// Client calls the remote authentication endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an auth client for the given API base URL.
func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(raw, &errResp); jsonErr == nil {
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Login authenticates with email and password and returns the account.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp struct {
		User User `json:"user"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

// Register creates an account and returns the issued session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	payload := map[string]string{"name": name, "email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", payload, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("auth: register response missing token")
	}
	return resp.Token, nil
}

// RequestPasswordReset asks the server to email a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.doRequest(ctx, http.MethodPost, "/auth/forgot-password", payload, nil)
}

// ResetPassword sets a new password using the emailed reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	payload := map[string]string{"password": password}
	endpoint := "/auth/reset-password/" + url.PathEscape(token)
	return c.doRequest(ctx, http.MethodPost, endpoint, payload, nil)
}
