package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

const (
	DefaultEndpoint = "https://api.web3forms.com/submit"

	defaultFailureMessage = "Something went wrong"
)

var (
	ErrAccessKeyRequired = errors.New("booking access key is required")
	ErrTransport         = errors.New("booking relay unreachable")
)

// Result is the form backend's verdict.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Client relays bookings to a form-submission backend as multipart form data.
type Client struct {
	endpoint  string
	accessKey string
	subject   string
	http      *http.Client
}

// NewClient returns a relay client. An empty endpoint uses DefaultEndpoint.
func NewClient(endpoint, accessKey, subject string, timeout time.Duration) (*Client, error) {
	if accessKey == "" {
		return nil, ErrAccessKeyRequired
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:  endpoint,
		accessKey: accessKey,
		subject:   subject,
		http:      &http.Client{Timeout: timeout},
	}, nil
}

// Submit posts b. Transport failures and undecodable answers wrap ErrTransport;
// a decoded answer is returned as-is, with a default message when the backend
// rejects the form without saying why.
func (c *Client) Submit(ctx context.Context, b Booking) (Result, error) {
	body, contentType, err := c.encode(b)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return Result{}, fmt.Errorf("build booking request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("%w: decode status %d: %v", ErrTransport, resp.StatusCode, err)
	}
	if !result.Success && result.Message == "" {
		result.Message = defaultFailureMessage
	}
	return result, nil
}

func (c *Client) encode(b Booking) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{"access_key", c.accessKey},
		{"subject", c.subject},
		{"name", b.Name},
		{"phone", b.Phone},
		{"service", b.Service},
		{"date", b.Date},
		{"time", b.Time},
		{"message", b.Message},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("encode booking field %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encode booking form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
