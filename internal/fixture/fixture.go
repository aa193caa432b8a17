// Package fixture parses and resolves the JSON documents that stand in for
// real network responses in mock mode.
//
// A fixture document carries up to two nodes:
//
//	{
//	  "success": {"code": 200, "headers": [{"name": "X-A", "value": "1"}], "body": {...}},
//	  "error":   {"code": 404, "headers": [], "body": {"reason": "not found"}}
//	}
//
// Header order is preserved as written.
package fixture

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// HeaderPair is one name/value header entry. A list of pairs keeps the
// document's ordering, which a plain map would lose.
type HeaderPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node describes one synthesized response.
type Node struct {
	Code    int             `json:"code"`
	Headers []HeaderPair    `json:"headers"`
	Body    json.RawMessage `json:"body"`
}

// Document is a parsed fixture with its success and/or error nodes.
type Document struct {
	Success *Node `json:"success"`
	Error   *Node `json:"error"`
}

// Parse decodes and validates a fixture document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixture: parsing document: %w", err)
	}
	if doc.Success == nil && doc.Error == nil {
		return nil, fmt.Errorf("fixture: document has neither success nor error node")
	}
	for name, node := range map[string]*Node{"success": doc.Success, "error": doc.Error} {
		if node == nil {
			continue
		}
		if node.Code < 100 || node.Code > 599 {
			return nil, fmt.Errorf("fixture: %s node has invalid status code %d", name, node.Code)
		}
	}
	return &doc, nil
}

// Load reads and parses a fixture from fsys at path.
func Load(fsys fs.FS, path string) (*Document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("fixture: reading %q: %w", path, err)
	}
	return Parse(data)
}
