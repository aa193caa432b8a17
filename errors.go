package retroflow

import (
	"errors"
	"fmt"
	"time"
)

// Error type constants used in CallError.Type.
const (
	ErrorTypeNetwork    = "Network"
	ErrorTypeProtocol   = "Protocol"
	ErrorTypeDecode     = "Decode"
	ErrorTypeFixture    = "Fixture"
	ErrorTypePanic      = "Panic"
	ErrorTypeValidation = "Validation"
)

// Sentinel errors for common failure scenarios
var (
	// ErrNoData is returned by raising accessors when a Success carries no
	// payload.
	ErrNoData = errors.New("retroflow: no success payload")

	// ErrNoResponse is the cause when classification receives neither a
	// response nor an error.
	ErrNoResponse = errors.New("retroflow: no response received")

	// ErrUnknownFailure substitutes for a nil cause in FailureException.
	ErrUnknownFailure = errors.New("retroflow: unknown failure")

	// ErrFixtureNotFound is returned when a mock descriptor names a fixture
	// the registry or filesystem cannot resolve.
	ErrFixtureNotFound = errors.New("retroflow: fixture not found")

	// ErrMockNotEnabled is returned when a call carries a mock descriptor but
	// mock mode was never enabled on the client.
	ErrMockNotEnabled = errors.New("retroflow: mock mode not enabled")
)

// CallError describes a failure inside the call pipeline with enough context
// to diagnose it.
type CallError struct {
	Type       string
	Message    string
	Cause      error
	RequestID  string
	Method     string
	URL        string
	Endpoint   string
	StatusCode int
	Timestamp  time.Time
	Duration   time.Duration
}

// Error implements error interface.
func (e *CallError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *CallError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *CallError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*CallError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *CallError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.Endpoint != "" {
		info += fmt.Sprintf("Endpoint: %s\n", e.Endpoint)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Duration > 0 {
		info += fmt.Sprintf("Duration: %v\n", e.Duration)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// IsProtocol reports whether err describes a completed response with an error
// status (the FailureError taxonomy).
func IsProtocol(err error) bool {
	var callErr *CallError
	return errors.As(err, &callErr) && callErr.Type == ErrorTypeProtocol
}

// IsTransport reports whether err describes an attempt that never produced a
// usable response.
func IsTransport(err error) bool {
	var callErr *CallError
	if errors.As(err, &callErr) {
		switch callErr.Type {
		case ErrorTypeNetwork, ErrorTypeDecode, ErrorTypeFixture, ErrorTypePanic:
			return true
		}
	}
	return false
}

// newPanicError wraps a recovered panic value as an error.
func newPanicError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return &CallError{Type: ErrorTypePanic, Message: "recovered panic", Cause: err}
	}
	return &CallError{Type: ErrorTypePanic, Message: fmt.Sprintf("recovered panic: %v", recovered)}
}
