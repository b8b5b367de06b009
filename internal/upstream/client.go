package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/movepal/api/internal/models"
)

// ErrUnauthorized is returned for any 401 from the booking API. Callers treat
// it as fatal for the session: stored credentials are cleared and the user is
// sent back through the login flow.
var ErrUnauthorized = errors.New("unauthorized by booking API")

// APIError carries a non-2xx upstream response. Detail is the server's own
// error message when one was provided.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("booking API returned %d: %s", e.StatusCode, e.Detail)
}

// Client is a typed HTTP client for the booking platform's REST API. The
// gateway owns no booking data; every method is a plain read or a proposed
// mutation that callers reconcile by re-fetching.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	mu        sync.Mutex
	csrfToken string
}

func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		logger:  logger,
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if method != http.MethodGet {
		c.mu.Lock()
		if c.csrfToken != "" {
			req.Header.Set("X-CSRFToken", c.csrfToken)
		}
		c.mu.Unlock()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("booking API request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(data, resp.StatusCode)}
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %v", err)
		}
	}
	return nil
}

// errorDetail extracts the server's error message from a failure body,
// falling back to a generic message.
func errorDetail(data []byte, status int) string {
	var body struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.Detail != "":
			return body.Detail
		case body.Error != "":
			return body.Error
		case body.Message != "":
			return body.Message
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}

// decodeList unmarshals either a bare JSON array or a {"results": [...]}
// envelope; the booking API uses both depending on the endpoint.
func decodeList(raw json.RawMessage, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	if len(envelope.Results) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Results, out)
}

func (c *Client) ListBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/bookings/", token, nil, &raw); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := decodeList(raw, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %v", err)
	}
	return bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, token string, id int) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/bookings/%d/", id), token, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus proposes a status change. The response body is ignored;
// callers apply the new status locally only after this returns nil.
func (c *Client) UpdateBookingStatus(ctx context.Context, token string, id int, status models.Status) error {
	payload := map[string]models.Status{"status": status}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/bookings/%d/", id), token, payload, nil)
}

func (c *Client) DeleteBooking(ctx context.Context, token string, id int) error {
	// 200 and 204 are both accepted as success.
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/bookings/%d/", id), token, nil, nil)
}

func (c *Client) CreateBooking(ctx context.Context, token string, payload interface{}) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings/", token, payload, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListAssignments fetches the staff assigned to a booking. The upstream API
// answers 404 for bookings that never had assignments; that is treated as an
// empty list, not an error.
func (c *Client) ListAssignments(ctx context.Context, token string, bookingID int) ([]models.Assignment, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/bookings/%d/assignments/", bookingID), token, nil, &raw)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	var assignments []models.Assignment
	if err := decodeList(raw, &assignments); err != nil {
		return nil, fmt.Errorf("failed to decode assignments: %v", err)
	}
	return assignments, nil
}

// AssignmentRequest is one entry of the desired assignment set posted to the
// admin assign endpoint.
type AssignmentRequest struct {
	Staff int    `json:"staff"`
	Role  string `json:"role"`
}

func (c *Client) AssignStaff(ctx context.Context, token string, bookingID int, assignments []AssignmentRequest) error {
	payload := map[string][]AssignmentRequest{"assignments": assignments}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/bookings/%d/assign/", bookingID), token, payload, nil)
}

func (c *Client) UnassignStaff(ctx context.Context, token string, bookingID, staffID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/bookings/%d/assign/%d/", bookingID, staffID), token, nil, nil)
}

func (c *Client) ListStaff(ctx context.Context, token string) ([]models.Staff, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/staff/", token, nil, &raw); err != nil {
		return nil, err
	}
	var staff []models.Staff
	if err := decodeList(raw, &staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff roster: %v", err)
	}
	return staff, nil
}

func (c *Client) ListLeaves(ctx context.Context, token, date string) ([]models.Leave, error) {
	var raw json.RawMessage
	path := "/api/admin/leaves/?" + url.Values{"date": {date}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return nil, err
	}
	var leaves []models.Leave
	if err := decodeList(raw, &leaves); err != nil {
		return nil, fmt.Errorf("failed to decode leaves: %v", err)
	}
	return leaves, nil
}
