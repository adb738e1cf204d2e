package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// PlayerIDHeader identifies the calling player to the server
	PlayerIDHeader = "X-Player-ID"
	// RequestIDHeader correlates a command with the server's access log
	RequestIDHeader = "X-Request-ID"

	requestTimeout = 30 * time.Second
)

// Client talks to the game server's JSON API as one player
type Client struct {
	baseURL    string
	playerID   string
	httpClient *http.Client
}

// NewClient creates a client for baseURL acting as playerID, which may be
// empty before joining
func NewClient(baseURL, playerID string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		playerID:   playerID,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// SetPlayerID switches the identity sent with later requests
func (c *Client) SetPlayerID(playerID string) {
	c.playerID = playerID
}

// APIError is the error body the server sends
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// StatusError is returned for responses of 400 and above
type StatusError struct {
	StatusCode int
	API        APIError
	Body       string
	RequestID  string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
	if e.API.Code != "" {
		msg = fmt.Sprintf("%s (%s)", e.API.Message, e.API.Code)
	}
	if e.RequestID != "" {
		msg += " [request " + e.RequestID + "]"
	}
	return msg
}

// Do sends body as JSON and decodes a successful response into result
func (c *Client) Do(method, path string, body, result any) error {
	req, err := c.newRequest(method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		statusErr := &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			RequestID:  resp.Header.Get(RequestIDHeader),
		}
		var errResp ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil {
			statusErr.API = errResp.Error
		}
		return statusErr
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if c.playerID != "" {
		req.Header.Set(PlayerIDHeader, c.playerID)
	}
	return req, nil
}

// Get performs a GET request
func (c *Client) Get(path string, result any) error {
	return c.Do(http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(path string, body, result any) error {
	return c.Do(http.MethodPost, path, body, result)
}
