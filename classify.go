package retroflow

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// DecodeFunc converts raw body bytes into a typed value. Decoders are opaque
// to the classifier; they may fail or panic and both are handled at the
// classification boundary.
type DecodeFunc[T any] func([]byte) (T, error)

// JSONDecoder returns a DecodeFunc backed by encoding/json, the default for
// Invoke and friends.
func JSONDecoder[T any]() DecodeFunc[T] {
	return func(body []byte) (T, error) {
		var v T
		err := json.Unmarshal(body, &v)
		return v, err
	}
}

// RawDecoder returns the body bytes untouched, for callers that want to defer
// decoding.
func RawDecoder() DecodeFunc[[]byte] {
	return func(body []byte) ([]byte, error) {
		out := make([]byte, len(body))
		copy(out, body)
		return out, nil
	}
}

// emptyBodyPlaceholder is fed to the success decoder when the response has no
// body (204/205 or zero-length), so object-typed decoders see a valid empty
// document instead of EOF.
var emptyBodyPlaceholder = []byte("{}")

// Classify turns a completed (or failed) request attempt into a Resource.
//
//   - err non-nil: FailureException wrapping err
//   - 2xx: the body (or the empty-object placeholder when absent) is run
//     through decodeData; a decode fault is a FailureException
//   - otherwise: the error body, when present, is run through decodeErr on a
//     best-effort basis; decode faults are swallowed and yield a nil payload
//
// Classify never panics and never returns an error: any fault inside it,
// including panicking decoders and body read failures, is folded into the
// returned Resource. The response body is fully read and replaced with an
// in-memory reader so the envelope stays usable by the caller.
func Classify[T, E any](resp *http.Response, err error, decodeData DecodeFunc[T], decodeErr DecodeFunc[E]) (res Resource[T, E]) {
	defer func() {
		if rec := recover(); rec != nil {
			res = NewFailureException[T, E](newPanicError(rec))
		}
	}()

	if err != nil {
		return NewFailureException[T, E](err)
	}
	if resp == nil {
		return NewFailureException[T, E](ErrNoResponse)
	}

	body, readErr := drainBody(resp)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if readErr != nil {
			return NewFailureException[T, E](&CallError{
				Type:       ErrorTypeNetwork,
				Message:    "reading response body",
				Cause:      readErr,
				StatusCode: resp.StatusCode,
			})
		}
		if decodeData == nil {
			return NewSuccessNoData[T, E](resp)
		}
		if len(body) == 0 || resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusResetContent {
			body = emptyBodyPlaceholder
		}
		data, decErr := guard(func() (T, error) { return decodeData(body) })
		if decErr != nil {
			return NewFailureException[T, E](&CallError{
				Type:       ErrorTypeDecode,
				Message:    "decoding success body",
				Cause:      decErr,
				StatusCode: resp.StatusCode,
			})
		}
		return NewSuccess[T, E](resp, data)
	}

	// Error path: the raw body is preserved as-is; the decoded payload is
	// best effort and decode faults leave it nil.
	var errData *E
	if readErr == nil && decodeErr != nil && len(body) > 0 {
		if decoded, decErr := guard(func() (E, error) { return decodeErr(body) }); decErr == nil {
			errData = &decoded
		}
	}
	return NewFailureError[T, E](resp, body, errData)
}

// drainBody reads the full response body, closes it and restores an
// equivalent in-memory body on the response.
func drainBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return body, err
}
