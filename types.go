package retroflow

import "net/http"

// Middleware represents a middleware function
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper represents the HTTP transport interface
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc is a helper type for middleware
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Option represents a configuration option
type Option func(*Client)

// Executor decides where a call runs and emits. Implementations must invoke
// fn exactly once.
type Executor interface {
	Execute(fn func())
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(fn func())

func (f ExecutorFunc) Execute(fn func()) { f(fn) }

// Inline runs the call synchronously on the calling goroutine. This is the
// default when neither the call nor the client configures an executor, so
// callers keep explicit control over where they block.
var Inline Executor = ExecutorFunc(func(fn func()) { fn() })

// Background runs the call on a fresh goroutine.
var Background Executor = ExecutorFunc(func(fn func()) { go fn() })
