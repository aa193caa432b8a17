package retroflow

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/WeBuidlFi/RetroFlow/internal/fixture"
)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the transport-level request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if c.httpClient != nil {
			c.httpClient.Timeout = d
		}
	}
}

// WithMiddleware adds middleware to the client
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithExecutor sets the client's default executor; per-call options still win
func WithExecutor(e Executor) Option {
	return func(c *Client) {
		c.executor = e
	}
}

// WithObservers appends observers to those captured from the process-wide
// defaults
func WithObservers(obs ...Observer) Option {
	return func(c *Client) {
		c.observers = append(c.observers, obs...)
	}
}

// WithoutObservers drops all observers, including process-wide ones
func WithoutObservers() Option {
	return func(c *Client) {
		c.observers = nil
	}
}

// WithMockMode enables fixture substitution on this client regardless of the
// process-wide toggle. fsys resolves file-sourced fixtures and may be nil.
func WithMockMode(fsys fs.FS) Option {
	return func(c *Client) {
		if c.mock == nil {
			c.mock = &mockRuntime{registry: fixture.NewRegistry()}
		}
		c.mock.fsys = fsys
	}
}

// WithFixtureRegistry sets the registry used for name-sourced fixtures;
// implies mock mode.
func WithFixtureRegistry(registry *fixture.Registry) Option {
	return func(c *Client) {
		if c.mock == nil {
			c.mock = &mockRuntime{}
		}
		c.mock.registry = registry
	}
}

// WithoutMockMode disables fixture substitution on this client even when
// enabled process-wide.
func WithoutMockMode() Option {
	return func(c *Client) {
		c.mock = nil
	}
}

// WithMetrics enables Prometheus metrics collection
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithLogger sets a custom logger for debug output
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a text logger on stderr
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// ValidateConfiguration validates the client configuration and returns an
// error if invalid
func (c *Client) ValidateConfiguration() error {
	var errs []string

	errs = append(errs, c.validateHTTPClientConfig()...)
	errs = append(errs, c.validateMiddlewareConfig()...)
	errs = append(errs, c.validateObserverConfig()...)
	errs = append(errs, c.validateDebugConfig()...)
	errs = append(errs, c.validateMockConfig()...)

	if len(errs) > 0 {
		return &CallError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", errs),
		}
	}

	return nil
}

func (c *Client) validateHTTPClientConfig() []string {
	var errs []string

	if c.httpClient == nil {
		errs = append(errs, "HTTP client cannot be nil")
	} else if c.httpClient.Timeout < 0 {
		errs = append(errs, "timeout must be non-negative")
	}

	return errs
}

func (c *Client) validateMiddlewareConfig() []string {
	var errs []string

	for i, middleware := range c.middleware {
		if middleware == nil {
			errs = append(errs, fmt.Sprintf("middleware[%d] cannot be nil", i))
		}
	}

	return errs
}

func (c *Client) validateObserverConfig() []string {
	var errs []string

	for i, obs := range c.observers {
		if obs == nil {
			errs = append(errs, fmt.Sprintf("observer[%d] cannot be nil", i))
		}
	}

	return errs
}

func (c *Client) validateDebugConfig() []string {
	var errs []string

	if c.debug != nil && c.debug.Enabled {
		if c.debug.RequestIDGen == nil {
			errs = append(errs, "debug RequestIDGen must be set when debug is enabled")
		}
		if c.logger == nil {
			errs = append(errs, "logger must be set when debug is enabled")
		}
	}

	return errs
}

func (c *Client) validateMockConfig() []string {
	var errs []string

	if c.mock != nil && c.mock.fsys == nil && c.mock.registry == nil {
		errs = append(errs, "mock mode needs a fixture filesystem or registry (inline fixtures excepted)")
	}

	return errs
}
