package retroflow

import (
	"net/http"
	"strings"
	"time"
)

// Client executes single-attempt HTTP calls and classifies their outcomes
// into Resource values. Configuration is immutable after New; a Client is
// safe for concurrent use. Process-wide defaults (executor, observers, mock
// enablement) are captured as a snapshot at construction time.
type Client struct {
	httpClient      *http.Client
	middleware      []Middleware
	executor        Executor
	observers       []Observer
	mock            *mockRuntime
	metrics         *MetricsCollector
	debug           *DebugConfig
	logger          Logger
	validationError error
}

// New constructs a Client from the process-wide defaults snapshot plus the
// provided functional options. A best effort validation is performed; call
// IsValid / ValidationError for errors.
func New(options ...Option) *Client {
	defs := snapshot()

	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		middleware: []Middleware{},
		executor:   defs.executor,
		observers:  append([]Observer(nil), defs.observers...),
		metrics:    nil,
		debug:      DefaultDebugConfig(),
		logger:     nil,
	}
	if defs.mockOn {
		client.mock = &mockRuntime{fsys: defs.mockFS, registry: defs.registry}
	}

	for _, option := range options {
		option(client)
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	return client
}

// transport runs req through the middleware chain down to the underlying
// http.Client.
func (c *Client) transport(req *http.Request) (*http.Response, error) {
	if len(c.middleware) == 0 {
		return c.httpClient.Do(req)
	}

	current := RoundTripperFunc(c.httpClient.Do)

	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current.RoundTrip(req)
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

// MockEnabled reports whether this client substitutes fixtures for calls
// carrying a mock descriptor.
func (c *Client) MockEnabled() bool {
	return c.mock != nil
}

func getEndpointFromRequest(req *http.Request) string {
	if req.URL == nil {
		return "unknown"
	}

	host := req.URL.Host
	path := req.URL.Path

	var builder strings.Builder
	builder.WriteString(host)

	if path != "" && path != "/" {
		builder.WriteString(path)
	} else {
		builder.WriteByte('/')
	}

	return builder.String()
}
