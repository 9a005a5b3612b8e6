package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrEndpointRequired = errors.New("responder endpoint is required")

// Request is the body posted to the text responder.
type Request struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

// Response is the responder's answer. Reply may be absent.
type Response struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StatusError reports a non-2xx answer from the responder.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("responder returned %d: %s", e.StatusCode, e.Body)
}

// Client posts utterances to a remote text responder over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a client for endpoint. timeout caps each request on top of
// whatever deadline the caller's context carries.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// Reply sends message and siteContext and returns the reply field. A missing
// reply yields "" with a nil error; transport problems, non-2xx statuses and
// undecodable bodies are errors.
func (c *Client) Reply(ctx context.Context, message, siteContext string) (string, error) {
	payload, err := json.Marshal(Request{Message: message, Context: siteContext})
	if err != nil {
		return "", fmt.Errorf("marshal responder request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build responder request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call responder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode responder response: %w", err)
	}
	return out.Reply, nil
}
