package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotAuthenticated means no session is stored; log in first.
var ErrNotAuthenticated = errors.New("client: not authenticated")

// ErrRefreshRejected means the backend refused the refresh token and the
// stored session was cleared.
var ErrRefreshRejected = errors.New("client: refresh token rejected")

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Status     string // status text, e.g. "Not Found"
	Message    string
	Body       json.RawMessage // raw body, may be empty or non-JSON
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// newAPIError builds the error for a failed response.
// The message is the body's "error" field, then "detail", then the compact
// JSON body, and the status text when the body is not JSON.
func newAPIError(statusCode int, body []byte) *APIError {
	status := http.StatusText(statusCode)
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Message:    errorMessage(body, status),
		Body:       body,
	}
}

func errorMessage(body []byte, fallback string) string {
	var data any
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &data) != nil {
		return fallback
	}

	if obj, ok := data.(map[string]any); ok {
		for _, field := range []string{"error", "detail"} {
			if msg := messageField(obj[field]); msg != "" {
				return msg
			}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return fallback
	}
	return compact.String()
}

// messageField renders a message value; strings are used as-is and
// anything else non-empty as JSON
func messageField(v any) string {
	switch m := v.(type) {
	case nil:
		return ""
	case string:
		return m
	case bool:
		if !m {
			return ""
		}
	case float64:
		if m == 0 {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// IsUnauthorized reports whether err is a 401 APIError
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsNotFound reports whether err is a 404 APIError
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsValidation reports whether err is a 400 APIError, the backend's answer to invalid payloads
func IsValidation(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
