package retroflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// callConfig is the per-invocation configuration assembled from CallOptions.
type callConfig struct {
	executor Executor
	mock     MockSpec
}

// CallOption configures a single invocation.
type CallOption func(*callConfig)

// WithCallExecutor overrides the client's executor for this call only.
func WithCallExecutor(e Executor) CallOption {
	return func(cfg *callConfig) { cfg.executor = e }
}

// WithMock attaches a full mock descriptor to the call.
func WithMock(spec MockSpec) CallOption {
	return func(cfg *callConfig) { cfg.mock = spec }
}

// WithMockFile mocks the call from a fixture file resolved against the
// client's fixture filesystem.
func WithMockFile(mode MockMode, path string) CallOption {
	return func(cfg *callConfig) {
		cfg.mock = MockSpec{Mode: mode, Source: MockSourceFile, Path: path}
	}
}

// WithMockFixture mocks the call from a named fixture in the client's
// registry.
func WithMockFixture(mode MockMode, name string) CallOption {
	return func(cfg *callConfig) {
		cfg.mock = MockSpec{Mode: mode, Source: MockSourceName, Name: name}
	}
}

// WithMockPayload mocks the call from a fixture document supplied inline.
func WithMockPayload(mode MockMode, payload []byte) CallOption {
	return func(cfg *callConfig) {
		cfg.mock = MockSpec{Mode: mode, Source: MockSourceInline, Payload: payload}
	}
}

// Invoke executes req through c and returns a single-shot Call that emits
// exactly one Resource. Success and error bodies are decoded as JSON; use
// InvokeWith for custom decoders.
//
// The executor is chosen per spec: the call option wins, then the client's
// executor, then Inline (run and emit on the calling goroutine).
func Invoke[T, E any](c *Client, req *http.Request, opts ...CallOption) *Call[T, E] {
	return InvokeWith(c, req, JSONDecoder[T](), JSONDecoder[E](), opts...)
}

// InvokeWith is Invoke with caller-supplied body decoders. A nil decodeData
// yields payload-less Success resources.
func InvokeWith[T, E any](c *Client, req *http.Request, decodeData DecodeFunc[T], decodeErr DecodeFunc[E], opts ...CallOption) *Call[T, E] {
	cfg := callConfig{executor: c.executor}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.executor == nil {
		cfg.executor = Inline
	}

	call := newCall[T, E]()
	cfg.executor.Execute(func() {
		call.complete(execute(c, req, cfg, decodeData, decodeErr))
	})
	return call
}

// InvokeData is the pass-through shape: it awaits the call and returns just
// the payload, or an error (a *CallError for protocol failures, the original
// cause for exceptions).
func InvokeData[T, E any](ctx context.Context, c *Client, req *http.Request, opts ...CallOption) (T, error) {
	call := Invoke[T, E](c, req, opts...)
	return call.Await(ctx).DataOrErr()
}

// Get builds and invokes a GET request.
func Get[T, E any](ctx context.Context, c *Client, url string, opts ...CallOption) *Call[T, E] {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failedCall[T, E](err)
	}
	return Invoke[T, E](c, req, opts...)
}

// Post builds and invokes a POST request with the given content type.
func Post[T, E any](ctx context.Context, c *Client, url, contentType string, body []byte, opts ...CallOption) *Call[T, E] {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return failedCall[T, E](err)
	}
	req.Header.Set("Content-Type", contentType)
	return Invoke[T, E](c, req, opts...)
}

// PostJSON marshals payload and invokes a POST with application/json.
func PostJSON[T, E any](ctx context.Context, c *Client, url string, payload any, opts ...CallOption) *Call[T, E] {
	body, err := json.Marshal(payload)
	if err != nil {
		return failedCall[T, E](err)
	}
	return Post[T, E](ctx, c, url, "application/json", body, opts...)
}

// failedCall returns an already-completed Call carrying a FailureException,
// for faults before the request ever runs.
func failedCall[T, E any](err error) *Call[T, E] {
	call := newCall[T, E]()
	call.complete(NewFailureException[T, E](err))
	return call
}

// execute runs one attempt end to end: transport (or fixture synthesis),
// classification, observers and metrics. It never panics; the outermost
// recover converts any fault into a FailureException resource, keeping the
// emission boundary fault-free.
func execute[T, E any](c *Client, req *http.Request, cfg callConfig, decodeData DecodeFunc[T], decodeErr DecodeFunc[E]) (res Resource[T, E]) {
	start := time.Now()
	endpoint := getEndpointFromRequest(req)

	var requestID string
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	if c.metrics != nil {
		c.metrics.RecordCallStart(req.Method, endpoint)
		defer c.metrics.RecordCallEnd(req.Method, endpoint)
	}

	defer func() {
		if rec := recover(); rec != nil {
			res = NewFailureException[T, E](newPanicError(rec))
		}
		if c.metrics != nil {
			c.metrics.RecordCall(req.Method, endpoint, res.outcome(), res.StatusCode(), time.Since(start))
		}
		if c.debug != nil && c.debug.Enabled && c.debug.LogCalls && c.logger != nil {
			c.logger.Debug("call finished", "requestID", requestID, "endpoint", endpoint,
				"outcome", res.outcome(), "status", res.StatusCode(), "duration", time.Since(start))
		}
	}()

	mocked := c.mock != nil && cfg.mock.Mode != MockDisabled

	if c.debug != nil && c.debug.Enabled && c.debug.LogCalls && c.logger != nil {
		c.logger.Debug("starting call", "requestID", requestID, "method", req.Method,
			"url", req.URL.String(), "endpoint", endpoint, "mocked", mocked)
	}

	var resp *http.Response
	var err error
	if mocked {
		resp, err = c.mock.synthesize(req, cfg.mock)
		if c.metrics != nil {
			c.metrics.RecordMockHit(req.Method, endpoint)
		}
		if c.debug != nil && c.debug.Enabled && c.debug.LogMock && c.logger != nil {
			c.logger.Debug("fixture substituted", "requestID", requestID, "endpoint", endpoint, "mode", cfg.mock.Mode)
		}
	} else {
		resp, err = c.transport(req)
	}

	res = Classify(resp, err, decodeData, decodeErr)

	if c.metrics != nil {
		if cause := res.Cause(); cause != nil {
			var callErr *CallError
			if errors.As(cause, &callErr) {
				c.metrics.RecordError(callErr.Type, req.Method, endpoint)
			} else {
				c.metrics.RecordError(ErrorTypeNetwork, req.Method, endpoint)
			}
		}
	}

	// Global observers only see real traffic.
	if !mocked {
		c.notifyObservers(endpoint, res.outcome(), res.Response(), res.RawError(), res.Cause())
	}

	return res
}
