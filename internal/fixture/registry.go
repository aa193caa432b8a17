package fixture

import (
	"fmt"
	"io/fs"
	"sync"
)

// Registry maps fixture names to parsed documents. It is safe for concurrent
// use.
type Registry struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{docs: make(map[string]*Document)}
}

// Register stores doc under name, replacing any previous entry.
func (r *Registry) Register(name string, doc *Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[name] = doc
}

// RegisterFile parses the fixture at path in fsys and registers it under
// name.
func (r *Registry) RegisterFile(fsys fs.FS, name, path string) error {
	doc, err := Load(fsys, path)
	if err != nil {
		return err
	}
	r.Register(name, doc)
	return nil
}

// RegisterGlob registers every fixture matching pattern in fsys under its own
// path.
func (r *Registry) RegisterGlob(fsys fs.FS, pattern string) error {
	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("fixture: glob %q: %w", pattern, err)
	}
	for _, path := range paths {
		if err := r.RegisterFile(fsys, path, path); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the document registered under name.
func (r *Registry) Lookup(name string) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[name]
	return doc, ok
}

// Len reports the number of registered fixtures.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}
