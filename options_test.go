package retroflow

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultsAreValid(t *testing.T) {
	client := New()
	if !client.IsValid() {
		t.Errorf("default configuration must validate: %v", client.ValidationError())
	}
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: 3 * time.Second}
	client := New(WithHTTPClient(custom))

	if client.httpClient != custom {
		t.Error("expected the custom HTTP client to be installed")
	}
	if !client.IsValid() {
		t.Errorf("unexpected validation error: %v", client.ValidationError())
	}
}

func TestWithTimeout(t *testing.T) {
	client := New(WithTimeout(7 * time.Second))
	if client.httpClient.Timeout != 7*time.Second {
		t.Errorf("expected timeout 7s, got %v", client.httpClient.Timeout)
	}
}

func TestNilHTTPClientFailsValidation(t *testing.T) {
	client := New(WithHTTPClient(nil))

	if client.IsValid() {
		t.Fatal("expected validation to fail for a nil HTTP client")
	}
	if !strings.Contains(client.ValidationError().Error(), "HTTP client cannot be nil") {
		t.Errorf("unexpected validation error: %v", client.ValidationError())
	}
}

func TestNilMiddlewareFailsValidation(t *testing.T) {
	client := New(WithMiddleware(nil))

	if client.IsValid() {
		t.Fatal("expected validation to fail for nil middleware")
	}
	if !strings.Contains(client.ValidationError().Error(), "middleware[0] cannot be nil") {
		t.Errorf("unexpected validation error: %v", client.ValidationError())
	}
}

func TestNilObserverFailsValidation(t *testing.T) {
	client := New(WithObservers(nil))

	if client.IsValid() {
		t.Fatal("expected validation to fail for a nil observer")
	}
}

func TestDebugWithoutLoggerFailsValidation(t *testing.T) {
	client := New(WithDebug())

	if client.IsValid() {
		t.Fatal("expected validation to fail for debug without a logger")
	}
	if !strings.Contains(client.ValidationError().Error(), "logger must be set") {
		t.Errorf("unexpected validation error: %v", client.ValidationError())
	}
}

func TestWithSimpleLoggerValidates(t *testing.T) {
	client := New(WithSimpleLogger())
	if !client.IsValid() {
		t.Errorf("WithSimpleLogger must satisfy debug validation: %v", client.ValidationError())
	}
}

func TestValidationErrorsAccumulate(t *testing.T) {
	client := New(WithHTTPClient(nil), WithMiddleware(nil), WithDebug())

	err := client.ValidationError()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	msg := err.Error()
	for _, want := range []string{"HTTP client cannot be nil", "middleware[0] cannot be nil", "logger must be set"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in accumulated validation error, got %q", want, msg)
		}
	}
}

func TestValidationErrorIsCallError(t *testing.T) {
	client := New(WithHTTPClient(nil))

	callErr, ok := client.ValidationError().(*CallError)
	if !ok {
		t.Fatalf("expected *CallError, got %T", client.ValidationError())
	}
	if callErr.Type != ErrorTypeValidation {
		t.Errorf("expected validation type, got %s", callErr.Type)
	}
}

func TestWithRequestIDGenerator(t *testing.T) {
	client := New(
		WithSimpleLogger(),
		WithRequestIDGenerator(func() string { return "fixed-id" }),
	)

	if got := client.debug.RequestIDGen(); got != "fixed-id" {
		t.Errorf("expected the custom generator, got %q", got)
	}
}

func TestDefaultRequestIDsAreUnique(t *testing.T) {
	cfg := DefaultDebugConfig()
	a, b := cfg.RequestIDGen(), cfg.RequestIDGen()
	if a == "" || a == b {
		t.Errorf("expected unique non-empty request IDs, got %q and %q", a, b)
	}
}

func TestWithoutMockMode(t *testing.T) {
	client := New(WithMockMode(fixtureFS()), WithoutMockMode())
	if client.MockEnabled() {
		t.Error("WithoutMockMode must win over WithMockMode")
	}
}

func TestGetEndpointFromRequest(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://api.example.com/users/1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := getEndpointFromRequest(req); got != "api.example.com/users/1" {
		t.Errorf("unexpected endpoint: %q", got)
	}

	root, err := http.NewRequest(http.MethodGet, "https://api.example.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := getEndpointFromRequest(root); got != "api.example.com/" {
		t.Errorf("unexpected root endpoint: %q", got)
	}
}
