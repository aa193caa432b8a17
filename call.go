package retroflow

import "context"

// Call is a single-shot future for one request attempt. Exactly one Resource
// is emitted per invocation and the channel completes immediately after; a
// fresh Invoke is required for another attempt.
type Call[T, E any] struct {
	ch   chan Resource[T, E]
	done chan struct{}
	res  Resource[T, E]
}

func newCall[T, E any]() *Call[T, E] {
	return &Call[T, E]{
		ch:   make(chan Resource[T, E], 1),
		done: make(chan struct{}),
	}
}

// complete records the result and performs the single emission. It must be
// called exactly once.
func (c *Call[T, E]) complete(res Resource[T, E]) {
	c.res = res
	c.ch <- res
	close(c.ch)
	close(c.done)
}

// Await blocks until the call completes or ctx is done. Cancellation yields a
// FailureException resource carrying ctx.Err(); the underlying attempt keeps
// running to completion (in-flight abort is the transport's business, driven
// by the request's own context).
func (c *Call[T, E]) Await(ctx context.Context) Resource[T, E] {
	select {
	case <-c.done:
		return c.res
	case <-ctx.Done():
		return NewFailureException[T, E](ctx.Err())
	}
}

// Channel exposes the emission channel: one Resource, then closed. Useful for
// select loops; most callers want Await.
func (c *Call[T, E]) Channel() <-chan Resource[T, E] {
	return c.ch
}

// Done is closed once the call has completed.
func (c *Call[T, E]) Done() <-chan struct{} {
	return c.done
}

// TryResult returns the result without blocking. ok is false while the call
// is still in flight.
func (c *Call[T, E]) TryResult() (Resource[T, E], bool) {
	select {
	case <-c.done:
		return c.res, true
	default:
		var zero Resource[T, E]
		return zero, false
	}
}
