// Package client talks to the coachdesk HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/coachdesk/pkg/editor"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	headerActorID   = "X-Actor-ID"
	headerRequestID = "X-Request-ID"
)

// APIError is a non 2xx response decoded from the error envelope.
type APIError struct {
	StatusCode    int             `json:"-"`
	Code          string          `json:"code"`
	Message       string          `json:"message"`
	CorrelationID string          `json:"correlationId"`
	Details       json.RawMessage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s (correlation id: %s)", e.StatusCode, e.Code, e.Message, e.CorrelationID)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type HealthState struct {
	Status        string     `json:"status"`
	LatencyMs     *int64     `json:"latencyMs,omitempty"`
	LastFailureAt *time.Time `json:"lastFailureAt,omitempty"`
}

type HealthReport struct {
	Database HealthState `json:"database"`
	Service  HealthState `json:"service"`
}

type Client struct {
	baseURL    string
	actorID    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New creates a client acting as actorID. Requests are traced through an
// otelhttp transport unless another http client is given.
func New(baseURL, actorID string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		actorID: actorID,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetSession(ctx context.Context, id string) (*editor.Draft, error) {
	var resp struct {
		Session *editor.Draft `json:"session"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/sessions/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Session, nil
}

func (c *Client) ListSessions(ctx context.Context, start, end string, limit int) ([]editor.Draft, error) {
	q := url.Values{}
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/sessions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Sessions []editor.Draft `json:"sessions"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// SaveSession creates the draft when it has no durable id yet, and replaces
// the stored session otherwise. The returned draft carries durable ids.
func (c *Client) SaveSession(ctx context.Context, draft editor.Draft) (*editor.Draft, error) {
	method, path := http.MethodPost, "/api/v1/sessions"
	if id, ok := draft.ID.Durable(); ok {
		method, path = http.MethodPut, "/api/v1/sessions/"+url.PathEscape(id)
	}

	var resp struct {
		Session *editor.Draft `json:"session"`
	}
	if err := c.do(ctx, method, path, draft, &resp); err != nil {
		return nil, err
	}
	return resp.Session, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status editor.Status) (*editor.Draft, error) {
	var resp struct {
		Session *editor.Draft `json:"session"`
	}
	body := map[string]editor.Status{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/api/v1/sessions/"+url.PathEscape(id)+"/status", body, &resp); err != nil {
		return nil, err
	}
	return resp.Session, nil
}

// Health probes the database and reads the readiness of the service. A failed
// database probe is reported in the result, not as an error.
func (c *Client) Health(ctx context.Context) (*HealthReport, error) {
	report := &HealthReport{}

	var db struct {
		Database HealthState `json:"database"`
	}
	err := c.do(ctx, http.MethodGet, "/health/db", nil, &db)
	var apiErr *APIError
	if err != nil && !(errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable && db.Database.Status != "") {
		return nil, err
	}
	report.Database = db.Database

	var ready struct {
		Service HealthState `json:"service"`
	}
	if err := c.do(ctx, http.MethodGet, "/health/ready", nil, &ready); err != nil {
		return nil, err
	}
	report.Service = ready.Service

	return report, nil
}

// do sends the request and decodes a 2xx body into out. For other statuses
// it returns an *APIError and still tries to decode the body into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.actorID != "" {
		req.Header.Set(headerActorID, c.actorID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(respBytes) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	apiErr := &APIError{
		StatusCode:    resp.StatusCode,
		CorrelationID: resp.Header.Get(headerRequestID),
	}
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &envelope); err == nil && envelope.Error != nil {
		envelope.Error.StatusCode = resp.StatusCode
		return envelope.Error
	}
	if out != nil {
		_ = json.Unmarshal(respBytes, out)
	}
	apiErr.Code = http.StatusText(resp.StatusCode)
	apiErr.Message = strings.TrimSpace(snippet(respBytes))
	return apiErr
}

func snippet(b []byte) string {
	const maxLen = 200
	if len(b) > maxLen {
		return string(b[:maxLen])
	}
	return string(b)
}
