package retroflow

import (
	"net/http"
)

// resourceKind discriminates the populated variant of a Resource.
type resourceKind uint8

const (
	kindSuccess resourceKind = iota + 1
	kindFailureError
	kindFailureException
)

// Resource is the outcome of a single request attempt. Exactly one of three
// variants is populated:
//
//   - Success: the response envelope plus the decoded payload T
//   - FailureError: the transport completed but the status signals an
//     application error; carries the envelope, the raw error body and a
//     best-effort decoded error payload (nil when absent or unparseable)
//   - FailureException: the attempt never produced a usable response;
//     carries only the causing error
//
// A Resource is immutable after construction and carries no identity beyond
// the one attempt that produced it. The zero value is not a valid Resource;
// use the New* constructors or Classify.
type Resource[T, E any] struct {
	kind    resourceKind
	resp    *http.Response
	data    T
	hasData bool
	rawErr  []byte
	errData *E
	cause   error
}

// NewSuccess builds a Success resource wrapping the response envelope and the
// decoded payload.
func NewSuccess[T, E any](resp *http.Response, data T) Resource[T, E] {
	return Resource[T, E]{kind: kindSuccess, resp: resp, data: data, hasData: true}
}

// NewSuccessNoData builds a Success resource without a payload, for calls
// whose body is intentionally ignored.
func NewSuccessNoData[T, E any](resp *http.Response) Resource[T, E] {
	return Resource[T, E]{kind: kindSuccess, resp: resp}
}

// NewFailureError builds a FailureError resource. rawBody is the error body
// as read off the wire (may be empty) and errData the decoded error payload
// (nil when the body was absent or failed to decode).
func NewFailureError[T, E any](resp *http.Response, rawBody []byte, errData *E) Resource[T, E] {
	return Resource[T, E]{kind: kindFailureError, resp: resp, rawErr: rawBody, errData: errData}
}

// NewFailureException builds a FailureException resource wrapping the causing
// error. A nil cause is replaced by ErrUnknownFailure so the variant always
// carries a non-nil error.
func NewFailureException[T, E any](cause error) Resource[T, E] {
	if cause == nil {
		cause = ErrUnknownFailure
	}
	return Resource[T, E]{kind: kindFailureException, cause: cause}
}

// IsSuccess reports whether the resource holds the Success variant.
func (r Resource[T, E]) IsSuccess() bool { return r.kind == kindSuccess }

// IsFailureError reports whether the resource holds the FailureError variant.
func (r Resource[T, E]) IsFailureError() bool { return r.kind == kindFailureError }

// IsFailureException reports whether the resource holds the FailureException
// variant.
func (r Resource[T, E]) IsFailureException() bool { return r.kind == kindFailureException }

// IsFailure reports whether the resource holds either failure variant.
func (r Resource[T, E]) IsFailure() bool {
	return r.kind == kindFailureError || r.kind == kindFailureException
}

// Data returns the success payload. ok is false when the resource is not a
// Success or the success carried no payload.
func (r Resource[T, E]) Data() (data T, ok bool) {
	if r.kind == kindSuccess && r.hasData {
		return r.data, true
	}
	var zero T
	return zero, false
}

// DataOr returns the success payload, or def when absent.
func (r Resource[T, E]) DataOr(def T) T {
	if data, ok := r.Data(); ok {
		return data
	}
	return def
}

// DataOrElse returns the success payload, or the lazily computed fallback
// when absent.
func (r Resource[T, E]) DataOrElse(fn func() T) T {
	if data, ok := r.Data(); ok {
		return data
	}
	return fn()
}

// DataOrErr returns the success payload, or an error describing why it is
// absent: the cause for FailureException, a *CallError with the response
// status for FailureError, and ErrNoData for a payload-less Success.
func (r Resource[T, E]) DataOrErr() (T, error) {
	if data, ok := r.Data(); ok {
		return data, nil
	}
	var zero T
	return zero, r.failureErr()
}

// MustData returns the success payload or panics with the error DataOrErr
// would return. Reserved for call sites that have already checked the
// variant or explicitly want the panic.
func (r Resource[T, E]) MustData() T {
	data, err := r.DataOrErr()
	if err != nil {
		panic(err)
	}
	return data
}

// ErrorData returns the decoded error payload of a FailureError. ok is false
// for other variants and for failures whose body was absent or unparseable.
func (r Resource[T, E]) ErrorData() (*E, bool) {
	if r.kind == kindFailureError && r.errData != nil {
		return r.errData, true
	}
	return nil, false
}

// RawError returns the raw error body bytes of a FailureError, nil otherwise.
func (r Resource[T, E]) RawError() []byte {
	if r.kind == kindFailureError {
		return r.rawErr
	}
	return nil
}

// Cause returns the causing error of a FailureException, nil otherwise.
func (r Resource[T, E]) Cause() error {
	if r.kind == kindFailureException {
		return r.cause
	}
	return nil
}

// Response returns the original response envelope. It is always non-nil for
// Success and FailureError and always nil for FailureException.
func (r Resource[T, E]) Response() *http.Response { return r.resp }

// StatusCode returns the response status code, or 0 for FailureException.
func (r Resource[T, E]) StatusCode() int {
	if r.resp == nil {
		return 0
	}
	return r.resp.StatusCode
}

// Header returns the response headers, or nil for FailureException.
func (r Resource[T, E]) Header() http.Header {
	if r.resp == nil {
		return nil
	}
	return r.resp.Header
}

// Message renders a human-readable description of a failure: the error body
// text (falling back to the HTTP status line) for FailureError, the cause's
// message for FailureException, and "" for Success.
func (r Resource[T, E]) Message() string {
	switch r.kind {
	case kindFailureError:
		if len(r.rawErr) > 0 {
			return string(r.rawErr)
		}
		if r.resp != nil && r.resp.Status != "" {
			return r.resp.Status
		}
		return http.StatusText(r.StatusCode())
	case kindFailureException:
		return r.cause.Error()
	default:
		return ""
	}
}

// failureErr converts a non-success resource into an error value.
func (r Resource[T, E]) failureErr() error {
	switch r.kind {
	case kindFailureException:
		return r.cause
	case kindFailureError:
		e := &CallError{
			Type:       ErrorTypeProtocol,
			Message:    r.Message(),
			StatusCode: r.StatusCode(),
		}
		if r.resp != nil && r.resp.Request != nil {
			e.Method = r.resp.Request.Method
			e.URL = r.resp.Request.URL.String()
		}
		return e
	default:
		return ErrNoData
	}
}

// outcome labels the variant for metrics and logging.
func (r Resource[T, E]) outcome() string {
	switch r.kind {
	case kindSuccess:
		return "success"
	case kindFailureError:
		return "failure_error"
	default:
		return "failure_exception"
	}
}
