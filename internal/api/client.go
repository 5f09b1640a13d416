// Package api is the HTTP client for the contacts backend. Every call is
// classified into the error taxonomy in errors.go at this boundary so the
// rest of the program never inspects status codes.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"datahunt/internal/logging"
)

// =============================================================================
// CLIENT
// =============================================================================

// Endpoints are derived from one configured base URL.
type Endpoints struct {
	Leads  string
	Export string
	Upload string
}

// Client talks to the contacts backend.
type Client struct {
	baseURL   string
	client    *http.Client
	validate  *validator.Validate
	now       func() time.Time
	requestID func() string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets a whole-request deadline. Zero keeps the default of none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// NewClient creates a client rooted at baseURL, e.g. "http://localhost:8005".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api base URL required")
	}
	c := &Client{
		baseURL:   baseURL,
		client:    &http.Client{},
		validate:  validator.New(),
		now:       time.Now,
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured root.
func (c *Client) BaseURL() string { return c.baseURL }

// Endpoints returns the three backend URLs.
func (c *Client) Endpoints() Endpoints {
	return Endpoints{
		Leads:  c.baseURL + "/leads",
		Export: c.baseURL + "/leads/export",
		Upload: c.baseURL + "/upload",
	}
}

// do sends req and classifies transport failures and non-2xx statuses.
// On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, op Op, req *http.Request) (*http.Response, *logging.Logger, error) {
	id := c.requestID()
	req.Header.Set("X-Request-ID", id)
	log := logging.WithRequestID(logging.CategoryAPI, id)
	log.Debug("%s %s %s", op, req.Method, req.URL.String())

	timer := logging.StartTimer(logging.CategoryAPI, string(op))
	resp, err := c.client.Do(req.WithContext(ctx))
	timer.StopWithThreshold(5 * time.Second)
	if err != nil {
		log.Warn("%s request failed: %v", op, err)
		return nil, log, &Error{Op: op, Kind: KindNetworkFailure, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		kind := KindServerError
		if resp.StatusCode == http.StatusUnprocessableEntity {
			kind = KindInvalidParameters
		}
		log.Warn("%s returned %s: %s", op, resp.Status, strings.TrimSpace(string(body)))
		return nil, log, &Error{
			Op:         op,
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
	}
	return resp, log, nil
}

// statusText is the reason phrase the server sent, falling back to the
// standard text for the code.
func statusText(resp *http.Response) string {
	if text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); text != resp.Status && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// decode reads a JSON body into v and validates it against its struct tags.
// Any failure is a MalformedResponse.
func (c *Client) decode(op Op, body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return &Error{Op: op, Kind: KindMalformedResponse, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if err := c.validate.Struct(v); err != nil {
		return &Error{Op: op, Kind: KindMalformedResponse, Err: schemaError(err)}
	}
	return nil
}

func schemaError(err error) error {
	var errs validator.ValidationErrors
	if ve, ok := err.(validator.ValidationErrors); ok {
		errs = ve
	}
	if len(errs) == 0 {
		return err
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("response schema: %s", strings.Join(msgs, "; "))
}
