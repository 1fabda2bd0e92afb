// Package relay submits contact messages to the Web3Forms hosted form relay.
// Uses raw HTTP calls; the relay has no Go SDK.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultEndpoint is the Web3Forms submit URL.
const DefaultEndpoint = "https://api.web3forms.com/submit"

// DefaultFromName labels the source of every relayed message.
const DefaultFromName = "Portfolio Contact Form"

var (
	// ErrNotConfigured is returned when no access key is set.
	ErrNotConfigured = errors.New("relay: not configured")
	// ErrRejected is returned when the relay answers with success=false.
	ErrRejected = errors.New("relay: submission rejected")
)

// Submission is the message forwarded to the relay.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Client posts submissions to a Web3Forms-compatible endpoint.
type Client struct {
	Endpoint   string
	AccessKey  string
	FromName   string
	httpClient *http.Client
}

// NewClient returns a Client. Empty endpoint or fromName fall back to the defaults.
func NewClient(endpoint, accessKey, fromName string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if fromName == "" {
		fromName = DefaultFromName
	}
	return &Client{
		Endpoint:   endpoint,
		AccessKey:  accessKey,
		FromName:   fromName,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type submitRequest struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	FromName  string `json:"from_name"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit sends s once. The declared success flag in the response body decides
// the outcome; the HTTP status code is not consulted.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	if c.AccessKey == "" {
		return ErrNotConfigured
	}

	jsonBody, err := json.Marshal(submitRequest{
		AccessKey: c.AccessKey,
		Name:      s.Name,
		Email:     s.Email,
		Subject:   s.Subject,
		Message:   s.Message,
		FromName:  c.FromName,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay submit: %w", err)
	}
	defer resp.Body.Close()

	var result submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("relay submit: decode response (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		return fmt.Errorf("%w: %s", ErrRejected, result.Message)
	}
	return nil
}
