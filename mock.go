package retroflow

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"github.com/WeBuidlFi/RetroFlow/internal/fixture"
)

// MockMode selects which fixture node a mocked call synthesizes.
type MockMode int

const (
	// MockDisabled leaves the call on the real transport even when mock mode
	// is enabled on the client.
	MockDisabled MockMode = iota
	// MockSuccess synthesizes the fixture's success node.
	MockSuccess
	// MockError synthesizes the fixture's error node.
	MockError
)

// MockSource selects where the fixture document comes from.
type MockSource int

const (
	// MockSourceFile resolves Path against the client's fixture filesystem.
	MockSourceFile MockSource = iota
	// MockSourceName looks Name up in the client's fixture registry.
	MockSourceName
	// MockSourceInline parses Payload supplied with the call itself.
	MockSourceInline
)

// MockSpec is the per-call mock descriptor: which node to synthesize and
// where to find the fixture document.
type MockSpec struct {
	Mode    MockMode
	Source  MockSource
	Path    string
	Name    string
	Payload []byte
}

// mockRuntime holds the client-level state needed to resolve fixtures.
type mockRuntime struct {
	fsys     fs.FS
	registry *fixture.Registry
}

// synthesize resolves the fixture named by spec and builds an *http.Response
// from the selected node without touching the network. Errors here surface as
// FailureException through the classification boundary.
func (m *mockRuntime) synthesize(req *http.Request, spec MockSpec) (*http.Response, error) {
	doc, err := m.resolve(spec)
	if err != nil {
		return nil, err
	}

	var node *fixture.Node
	switch spec.Mode {
	case MockSuccess:
		node = doc.Success
	case MockError:
		node = doc.Error
	}
	if node == nil {
		return nil, &CallError{
			Type:    ErrorTypeFixture,
			Message: fmt.Sprintf("fixture has no node for mode %d", spec.Mode),
			Cause:   ErrFixtureNotFound,
		}
	}

	header := make(http.Header, len(node.Headers))
	for _, pair := range node.Headers {
		header.Add(pair.Name, pair.Value)
	}

	body := []byte(node.Body)
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", node.Code, http.StatusText(node.Code)),
		StatusCode:    node.Code,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}

func (m *mockRuntime) resolve(spec MockSpec) (*fixture.Document, error) {
	switch spec.Source {
	case MockSourceFile:
		if m.fsys == nil {
			return nil, &CallError{Type: ErrorTypeFixture, Message: "no fixture filesystem configured", Cause: ErrMockNotEnabled}
		}
		doc, err := fixture.Load(m.fsys, spec.Path)
		if err != nil {
			return nil, &CallError{Type: ErrorTypeFixture, Message: fmt.Sprintf("loading fixture %q", spec.Path), Cause: err}
		}
		return doc, nil
	case MockSourceName:
		if m.registry == nil {
			return nil, &CallError{Type: ErrorTypeFixture, Message: "no fixture registry configured", Cause: ErrMockNotEnabled}
		}
		doc, ok := m.registry.Lookup(spec.Name)
		if !ok {
			return nil, &CallError{Type: ErrorTypeFixture, Message: fmt.Sprintf("fixture %q not registered", spec.Name), Cause: ErrFixtureNotFound}
		}
		return doc, nil
	case MockSourceInline:
		doc, err := fixture.Parse(spec.Payload)
		if err != nil {
			return nil, &CallError{Type: ErrorTypeFixture, Message: "parsing inline fixture", Cause: err}
		}
		return doc, nil
	default:
		return nil, &CallError{Type: ErrorTypeFixture, Message: fmt.Sprintf("unknown fixture source %d", spec.Source)}
	}
}
