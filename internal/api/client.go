// Package api is the thin HTTP client for the phaseline backend. It
// carries no domain logic: URLs, auth headers, and error pass-through
// only. The backend remains the single authority on validation and
// timeline locking.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Session holds the persisted connection state (~/.phaseline/session.json)
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
}

// Client talks to the phaseline backend
type Client struct {
	session     *Session
	sessionPath string
	httpClient  *http.Client
}

// NewClient creates a client, loading any persisted session
func NewClient() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		sessionPath: filepath.Join(home, ".phaseline", "session.json"),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	c.loadSession()

	return c, nil
}

// NewClientAt creates a client bound to a specific server URL without
// touching the persisted session. Used by tests and one-off commands.
func NewClientAt(serverURL string) *Client {
	return &Client{
		session:    &Session{ServerURL: serverURL},
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) loadSession() {
	data, err := os.ReadFile(c.sessionPath)
	if err != nil {
		c.session = &Session{ServerURL: "http://localhost:8080"}
		return
	}

	c.session = &Session{}
	json.Unmarshal(data, c.session)
	if c.session.ServerURL == "" {
		c.session.ServerURL = "http://localhost:8080"
	}
}

func (c *Client) saveSession() error {
	if c.sessionPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.sessionPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.session, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.sessionPath, data, 0600)
}

// SetServer sets the backend URL
func (c *Client) SetServer(url string) error {
	c.session.ServerURL = url
	return c.saveSession()
}

// IsLoggedIn returns true if a session token is present
func (c *Client) IsLoggedIn() bool {
	return c.session.Token != ""
}

// Status returns the server URL and user ID of the current session
func (c *Client) Status() (string, string) {
	return c.session.ServerURL, c.session.UserID
}

// do issues a request and decodes the response into out (may be nil).
// Backend errors are decoded from {"error": ...} and returned verbatim.
func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.session.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		respBody, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("request failed: %s", resp.Status)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

type authResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Register creates a new account and stores the session
func (c *Client) Register(username, email, password string) error {
	var result authResult
	err := c.do(http.MethodPost, "/api/v1/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return err
	}

	c.session.Token = result.Token
	c.session.UserID = result.UserID
	return c.saveSession()
}

// Login authenticates and stores the session
func (c *Client) Login(username, password string) error {
	var result authResult
	err := c.do(http.MethodPost, "/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return err
	}

	c.session.Token = result.Token
	c.session.UserID = result.UserID
	return c.saveSession()
}

// Logout clears the stored session
func (c *Client) Logout() error {
	c.session.Token = ""
	c.session.UserID = ""
	return c.saveSession()
}
