package s2

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Sentinels for the failure classes of the graph API. An *APIError with
// a matching status unwraps to one of them, so errors.Is works on both.
var (
	ErrNotFound        = errors.New("not found in Semantic Scholar")
	ErrAuthError       = errors.New("Semantic Scholar rejected the API key")
	ErrRateLimited     = errors.New("Semantic Scholar rate limit exceeded")
	ErrNetworkError    = errors.New("network error communicating with Semantic Scholar")
	ErrInvalidResponse = errors.New("invalid response from Semantic Scholar")
)

// APIError is a non-2xx reply from the graph API.
type APIError struct {
	StatusCode int
	Message    string // "error" or "message" field of the JSON body
	PaperID    string // identifier being requested, if any

	// RetryAfter is the wait the API asked for on 429 (and some 503)
	// replies, parsed from the Retry-After header. Zero if absent.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Semantic Scholar API error (status %d): %s", e.StatusCode, e.Message)
	if e.PaperID != "" {
		fmt.Fprintf(&b, " (paper: %s)", e.PaperID)
	}
	if e.RetryAfter > 0 {
		fmt.Fprintf(&b, " (retry after %s)", e.RetryAfter)
	}
	return b.String()
}

// Unwrap maps the status onto a sentinel.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthError
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

// newAPIError reads the error body and Retry-After header of resp.
func newAPIError(resp *http.Response, paperID string, now time.Time) *APIError {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(data, &body)

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		PaperID:    paperID,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), now),
	}
}

// parseRetryAfter accepts delay-seconds or an HTTP date. Past dates and
// malformed values give zero.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now).Round(time.Second)
	}
	return 0
}

// RetryAfter reports the wait requested by a rate-limited reply.
func RetryAfter(err error) (time.Duration, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter, true
	}
	return 0, false
}

// IsNotFound reports whether err means the paper does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAuthError reports whether err means the API key was refused.
func IsAuthError(err error) bool { return errors.Is(err, ErrAuthError) }

// IsRateLimited reports whether err means the rate limit was hit.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }
