package retroflow

import (
	"errors"
	"net/http"
	"testing"
)

type testPayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type testAPIError struct {
	Reason string `json:"reason"`
}

func successResponse(code int) *http.Response {
	return &http.Response{
		Status:     http.StatusText(code),
		StatusCode: code,
		Header:     http.Header{"X-Test": []string{"1"}},
	}
}

func TestSuccessResource(t *testing.T) {
	resp := successResponse(200)
	res := NewSuccess[testPayload, testAPIError](resp, testPayload{ID: 7, Name: "a"})

	if !res.IsSuccess() {
		t.Error("expected IsSuccess to be true")
	}
	if res.IsFailureError() || res.IsFailureException() || res.IsFailure() {
		t.Error("success resource reported a failure variant")
	}

	data, ok := res.Data()
	if !ok {
		t.Fatal("expected payload to be present")
	}
	if data.ID != 7 || data.Name != "a" {
		t.Errorf("unexpected payload: %+v", data)
	}

	if res.Response() != resp {
		t.Error("expected original response envelope to be preserved")
	}
	if res.StatusCode() != 200 {
		t.Errorf("expected status 200, got %d", res.StatusCode())
	}
	if res.Header().Get("X-Test") != "1" {
		t.Error("expected headers to be accessible")
	}
	if res.Message() != "" {
		t.Errorf("expected empty message on success, got %q", res.Message())
	}
	if res.Cause() != nil {
		t.Error("success must not carry a cause")
	}
	if res.RawError() != nil {
		t.Error("success must not carry a raw error body")
	}
}

func TestFailureErrorResource(t *testing.T) {
	resp := successResponse(404)
	errData := &testAPIError{Reason: "not found"}
	res := NewFailureError[testPayload, testAPIError](resp, []byte(`{"reason":"not found"}`), errData)

	if !res.IsFailureError() || !res.IsFailure() {
		t.Error("expected FailureError variant")
	}
	if res.IsSuccess() || res.IsFailureException() {
		t.Error("wrong variant reported")
	}

	if _, ok := res.Data(); ok {
		t.Error("failure must not expose a success payload")
	}
	got, ok := res.ErrorData()
	if !ok {
		t.Fatal("expected decoded error payload")
	}
	if got.Reason != "not found" {
		t.Errorf("unexpected error payload: %+v", got)
	}
	if string(res.RawError()) != `{"reason":"not found"}` {
		t.Errorf("unexpected raw body: %s", res.RawError())
	}
	if res.StatusCode() != 404 {
		t.Errorf("expected status 404, got %d", res.StatusCode())
	}
	if res.Response() == nil {
		t.Error("FailureError must carry the response envelope")
	}
	if res.Message() != `{"reason":"not found"}` {
		t.Errorf("expected message to be the raw body, got %q", res.Message())
	}
}

func TestFailureErrorMessageFallback(t *testing.T) {
	resp := &http.Response{Status: "503 Service Unavailable", StatusCode: 503}
	res := NewFailureError[testPayload, testAPIError](resp, nil, nil)

	if res.Message() != "503 Service Unavailable" {
		t.Errorf("expected status line fallback, got %q", res.Message())
	}
	if _, ok := res.ErrorData(); ok {
		t.Error("expected no decoded payload")
	}
}

func TestFailureExceptionResource(t *testing.T) {
	cause := errors.New("connection refused")
	res := NewFailureException[testPayload, testAPIError](cause)

	if !res.IsFailureException() || !res.IsFailure() {
		t.Error("expected FailureException variant")
	}
	if res.Response() != nil {
		t.Error("FailureException must never carry a response")
	}
	if res.StatusCode() != 0 {
		t.Errorf("expected status 0, got %d", res.StatusCode())
	}
	if res.Header() != nil {
		t.Error("expected nil headers")
	}
	if res.Cause() != cause {
		t.Error("expected cause to be exactly the raised fault")
	}
	if res.Message() != "connection refused" {
		t.Errorf("unexpected message: %q", res.Message())
	}
}

func TestFailureExceptionNilCause(t *testing.T) {
	res := NewFailureException[testPayload, testAPIError](nil)
	if !errors.Is(res.Cause(), ErrUnknownFailure) {
		t.Errorf("expected ErrUnknownFailure, got %v", res.Cause())
	}
}

func TestDataOr(t *testing.T) {
	def := testPayload{ID: -1}
	success := NewSuccess[testPayload, testAPIError](successResponse(200), testPayload{ID: 1})
	failure := NewFailureError[testPayload, testAPIError](successResponse(500), nil, nil)
	exception := NewFailureException[testPayload, testAPIError](errors.New("boom"))

	if got := success.DataOr(def); got.ID != 1 {
		t.Errorf("expected payload, got %+v", got)
	}
	if got := failure.DataOr(def); got.ID != -1 {
		t.Errorf("expected default on FailureError, got %+v", got)
	}
	if got := exception.DataOr(def); got.ID != -1 {
		t.Errorf("expected default on FailureException, got %+v", got)
	}
}

func TestDataOrElse(t *testing.T) {
	called := false
	fallback := func() testPayload {
		called = true
		return testPayload{ID: 42}
	}

	success := NewSuccess[testPayload, testAPIError](successResponse(200), testPayload{ID: 1})
	if got := success.DataOrElse(fallback); got.ID != 1 || called {
		t.Error("fallback must not run for a success")
	}

	failure := NewFailureError[testPayload, testAPIError](successResponse(500), nil, nil)
	if got := failure.DataOrElse(fallback); got.ID != 42 || !called {
		t.Error("fallback must run for a failure")
	}
}

func TestDataOrErr(t *testing.T) {
	success := NewSuccess[testPayload, testAPIError](successResponse(200), testPayload{ID: 1})
	if _, err := success.DataOrErr(); err != nil {
		t.Errorf("unexpected error on success: %v", err)
	}

	cause := errors.New("timeout")
	exception := NewFailureException[testPayload, testAPIError](cause)
	if _, err := exception.DataOrErr(); err != cause {
		t.Errorf("expected exact cause, got %v", err)
	}

	failure := NewFailureError[testPayload, testAPIError](successResponse(404), []byte("missing"), nil)
	_, err := failure.DataOrErr()
	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("expected *CallError, got %T", err)
	}
	if callErr.Type != ErrorTypeProtocol || callErr.StatusCode != 404 {
		t.Errorf("unexpected CallError: %+v", callErr)
	}

	noData := NewSuccessNoData[testPayload, testAPIError](successResponse(204))
	if _, err := noData.DataOrErr(); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestMustDataPanicsOnFailure(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustData to panic on a failure resource")
		}
	}()
	res := NewFailureException[testPayload, testAPIError](errors.New("boom"))
	res.MustData()
}
