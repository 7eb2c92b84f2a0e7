// Package gateway wraps the HR backend's attendance and login endpoints in
// stateless calls. Every call makes exactly one attempt and returns either
// decoded data or one of the structured errors in errors.go; retry policy,
// if any, belongs to the caller. The bearer credential is always an explicit
// parameter, never read from ambient state.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"hris-attendance/internal/model"
)

// DefaultTimeout bounds every request; expiry surfaces as a NetworkError.
const DefaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the backend at baseURL (e.g.
// "http://localhost:3000/api").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// NewWithHTTPClient is for tests and callers that need custom transport
// settings.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	body := model.LoginRequest{Email: email, Password: password}
	status, data, err := c.request(ctx, http.MethodPost, "/auth/login", "", body)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, decodeError(status, data, "Please check your credentials and try again.")
	}

	var out model.LoginResponse
	if err := json.Unmarshal(data, &out); err != nil || out.Token == "" {
		return nil, &ValidationError{Message: "unexpected login response from server"}
	}
	return &out, nil
}

// FetchToday returns today's attendance record, or (nil, nil) when the
// backend has no record yet. A 404 is the expected "no record" answer, not
// a failure.
func (c *Client) FetchToday(ctx context.Context, credential string) (*model.Attendance, error) {
	if credential == "" {
		return nil, &AuthError{Message: "No authentication token found"}
	}

	status, data, err := c.request(ctx, http.MethodGet, "/attendance/today", credential, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, decodeError(status, data, "Failed to fetch today's attendance.")
	}

	var record model.Attendance
	if err := json.Unmarshal(data, &record); err != nil || record.Date == "" {
		return nil, &ValidationError{Message: "unexpected attendance response from server"}
	}
	return &record, nil
}

// ClockIn marks the start of the workday and returns the created record.
func (c *Client) ClockIn(ctx context.Context, credential string) (*model.ClockResponse, error) {
	return c.clock(ctx, credential, "/attendance/clock-in", "Failed to clock in. Please try again.")
}

// ClockOut marks the end of the workday and returns the completed record,
// including totalHours.
func (c *Client) ClockOut(ctx context.Context, credential string) (*model.ClockResponse, error) {
	return c.clock(ctx, credential, "/attendance/clock-out", "Failed to clock out. Please try again.")
}

func (c *Client) clock(ctx context.Context, credential, path, fallback string) (*model.ClockResponse, error) {
	if credential == "" {
		return nil, &AuthError{Message: "No authentication token found"}
	}

	status, data, err := c.request(ctx, http.MethodPost, path, credential, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, decodeError(status, data, fallback)
	}

	var out model.ClockResponse
	if err := json.Unmarshal(data, &out); err != nil || out.Attendance.Date == "" {
		return nil, &ValidationError{Message: "unexpected attendance response from server"}
	}
	return &out, nil
}

// request performs a single HTTP call and returns the status and raw body.
// Transport failures come back as NetworkError.
func (c *Client) request(ctx context.Context, method, path, credential string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &NetworkError{Err: err}
	}
	return resp.StatusCode, data, nil
}

// decodeError shapes a non-2xx response into the error taxonomy. The
// server's message field is used verbatim when present.
func decodeError(status int, data []byte, fallback string) error {
	var apiErr model.APIError
	_ = json.Unmarshal(data, &apiErr)

	message := apiErr.Message
	if message == "" {
		message = fallback
	}

	if status == http.StatusUnauthorized {
		return &AuthError{Message: message}
	}
	return &HTTPError{Status: status, Message: message}
}
