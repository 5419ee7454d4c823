package pieces

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client holds the transport settings shared by every request.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const defaultUserAgent = "piecebook/0.1"

// NewClient builds a Client for baseURL. A zero timeout leaves requests
// unbounded apart from their context.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL reports the origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FailureKind classifies why a request failed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureTransport
	FailureStatus
	FailureNotFound
	FailureEncode
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTransport:
		return "transport"
	case FailureStatus:
		return "status"
	case FailureNotFound:
		return "not_found"
	case FailureEncode:
		return "encode"
	case FailureDecode:
		return "decode"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// RequestError describes a failed request.
type RequestError struct {
	Kind   FailureKind
	Method string
	Path   string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case FailureStatus, FailureNotFound:
		return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Status)
	default:
		return fmt.Sprintf("api %s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err, or FailureTransport when err
// carries none.
func KindOf(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return FailureTransport
}

// Request performs one JSON exchange against the client's base URL and
// decodes the response into T. body is encoded and sent only when non-nil.
// There are no retries.
func Request[T any](ctx context.Context, c *Client, path, method string, body any) (T, error) {
	var zero T
	fail := func(kind FailureKind, status int, err error) (T, error) {
		return zero, &RequestError{Kind: kind, Method: method, Path: path, Status: status, Err: err}
	}

	if c == nil {
		return fail(FailureTransport, 0, errors.New("client is nil"))
	}
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return fail(FailureEncode, 0, fmt.Errorf("unsupported method %q", method))
	}

	rel, err := url.Parse(path)
	if err != nil {
		return fail(FailureEncode, 0, fmt.Errorf("parse path: %w", err))
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var payload *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fail(FailureEncode, 0, fmt.Errorf("encode body: %w", err))
		}
		payload = bytes.NewReader(encoded)
	}

	var req *http.Request
	if payload != nil {
		req, err = http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	}
	if err != nil {
		return fail(FailureEncode, 0, fmt.Errorf("create request: %w", err))
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(FailureTransport, 0, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fail(FailureNotFound, resp.StatusCode, nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(FailureStatus, resp.StatusCode, nil)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fail(FailureDecode, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return out, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", raw)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
