// Package contactclient calls the self-hosted contact API.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Request mirrors the POST /api/contact body.
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// APIError is returned for any non-200 answer.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("contact api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit posts req once and returns the server's confirmation text.
func (c *Client) Submit(ctx context.Context, req Request) (string, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/contact", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("contact api: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	// Non-JSON bodies (proxies, 502 pages) leave result empty.
	_ = json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: result.Error}
	}
	return result.Message, nil
}
