package retroflow

import (
	"io/fs"
	"sync/atomic"

	"github.com/WeBuidlFi/RetroFlow/internal/fixture"
)

// processDefaults is the process-wide configuration layer. It is immutable
// once installed; every mutation installs a fresh copy so concurrent readers
// always observe a consistent snapshot.
type processDefaults struct {
	executor  Executor
	observers []Observer
	mockFS    fs.FS
	registry  *fixture.Registry
	mockOn    bool
}

var defaults atomic.Pointer[processDefaults]

func init() {
	defaults.Store(&processDefaults{})
}

// snapshot returns the current defaults. The returned value must not be
// mutated.
func snapshot() *processDefaults {
	return defaults.Load()
}

// mutateDefaults applies fn to a copy of the current defaults and installs
// it, retrying on concurrent updates.
func mutateDefaults(fn func(*processDefaults)) {
	for {
		cur := defaults.Load()
		next := &processDefaults{
			executor:  cur.executor,
			observers: append([]Observer(nil), cur.observers...),
			mockFS:    cur.mockFS,
			registry:  cur.registry,
			mockOn:    cur.mockOn,
		}
		fn(next)
		if defaults.CompareAndSwap(cur, next) {
			return
		}
	}
}

// SetDefaultExecutor installs the process-wide default executor used by
// clients that do not configure their own. Pass nil to restore the inline
// default.
func SetDefaultExecutor(e Executor) {
	mutateDefaults(func(d *processDefaults) { d.executor = e })
}

// RegisterObserver appends a process-wide observer. Observers registered
// before a Client is constructed are captured by it; later registrations do
// not affect existing clients.
func RegisterObserver(obs ...Observer) {
	mutateDefaults(func(d *processDefaults) { d.observers = append(d.observers, obs...) })
}

// EnableMockMode turns on fixture substitution process-wide. fsys resolves
// file-sourced fixtures; it may be nil when only named or inline fixtures are
// used.
func EnableMockMode(fsys fs.FS) {
	mutateDefaults(func(d *processDefaults) {
		d.mockOn = true
		d.mockFS = fsys
		if d.registry == nil {
			d.registry = fixture.NewRegistry()
		}
	})
}

// DisableMockMode turns fixture substitution back off for clients constructed
// afterwards.
func DisableMockMode() {
	mutateDefaults(func(d *processDefaults) {
		d.mockOn = false
		d.mockFS = nil
	})
}

// ResetDefaults restores the zero process-wide configuration. Intended for
// tests.
func ResetDefaults() {
	defaults.Store(&processDefaults{})
}
