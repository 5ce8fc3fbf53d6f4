// Package api is the HTTP access layer. It attaches the session credential
// to outgoing requests and routes every failure through the error
// normalizer, so callers above it only ever see normalized errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/userdeck/userdeck/internal/apierr"
	"github.com/userdeck/userdeck/internal/log"
	"github.com/userdeck/userdeck/internal/session"
)

// Credentials is the read-only view of the session the client needs. The
// client never writes session state; that is the auth gateway's privilege.
type Credentials interface {
	Get() session.Session
}

// Envelope is the server's standard response body:
// {status, message?, data?, errors?}.
type Envelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message,omitempty"`
	Data    json.RawMessage     `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// OK reports whether the envelope carries a success status.
func (e *Envelope) OK() bool {
	return e.Status == "success"
}

// Decode unmarshals the envelope's data payload into out.
func (e *Envelope) Decode(out any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("response has no data")
	}
	return json.Unmarshal(e.Data, out)
}

// Client issues requests against the API host.
type Client struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	log     *log.Logger
}

// New creates a client for the given base URL. creds may be nil for a
// client that only calls public endpoints.
func New(baseURL string, timeout time.Duration, creds Credentials, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.L()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		log:     logger,
	}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body (nil for none).
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// Health probes the public health-check endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.Get(ctx, PathHealthCheck)
	return err
}

// do sends one request and returns the decoded envelope on 2xx or a
// normalized error otherwise. It never returns a raw transport error.
func (c *Client) do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	if !IsPublic(path) && c.creds != nil {
		if sess := c.creds.Get(); sess.Authenticated() {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return nil, apierr.Network(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Network(err)
	}

	c.log.Debug("request completed",
		"method", method, "path", path,
		"status", resp.StatusCode, "request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apierr.Normalize(resp.StatusCode, respBody, nil)
	}

	var env Envelope
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			// A 2xx with a body the client cannot read is still a failure
			// of this operation, not of the transport.
			apiErr := apierr.Client("Unexpected response from server.")
			apiErr.Cause = err
			return nil, apiErr
		}
	}
	return &env, nil
}
