package retroflow

// MapData applies fn to the payload of a Success resource and returns a new
// Success carrying the transformed payload. Failure resources pass through
// unchanged apart from the payload type parameter. A fn that returns an error
// or panics yields a FailureException wrapping the fault: transform-time
// faults become ordinary failure values and never escape.
func MapData[T, E, U any](r Resource[T, E], fn func(T) (U, error)) Resource[U, E] {
	switch r.kind {
	case kindSuccess:
		if !r.hasData {
			return NewSuccessNoData[U, E](r.resp)
		}
		mapped, err := guard(func() (U, error) { return fn(r.data) })
		if err != nil {
			return NewFailureException[U, E](err)
		}
		return NewSuccess[U, E](r.resp, mapped)
	case kindFailureError:
		return NewFailureError[U, E](r.resp, r.rawErr, r.errData)
	default:
		return NewFailureException[U, E](r.cause)
	}
}

// MapError applies fn to the decoded payload of a FailureError resource,
// returning a FailureError with the transformed error payload type. The raw
// body and envelope are preserved; a nil input payload maps to a nil output
// payload without invoking fn. Success and FailureException pass through.
// Faults in fn are captured as FailureException, as in MapData.
func MapError[T, E, F any](r Resource[T, E], fn func(*E) (*F, error)) Resource[T, F] {
	switch r.kind {
	case kindSuccess:
		if !r.hasData {
			return NewSuccessNoData[T, F](r.resp)
		}
		return NewSuccess[T, F](r.resp, r.data)
	case kindFailureError:
		if r.errData == nil {
			return NewFailureError[T, F](r.resp, r.rawErr, nil)
		}
		mapped, err := guard(func() (*F, error) { return fn(r.errData) })
		if err != nil {
			return NewFailureException[T, F](err)
		}
		return NewFailureError[T, F](r.resp, r.rawErr, mapped)
	default:
		return NewFailureException[T, F](r.cause)
	}
}

// Fold reduces a resource to a single value by dispatching to exactly one of
// the three functions. All three must be non-nil.
func Fold[T, E, R any](r Resource[T, E], onSuccess func(T) R, onFailure func(int, *E) R, onException func(error) R) R {
	switch r.kind {
	case kindSuccess:
		return onSuccess(r.data)
	case kindFailureError:
		return onFailure(r.StatusCode(), r.errData)
	default:
		return onException(r.cause)
	}
}

// Handlers bundles one handler per variant for Match and MatchAll. Nil
// handlers are skipped. OnPanic, when set, receives the value recovered from
// a panicking handler; without it recovered panics are dropped.
type Handlers[T, E any] struct {
	OnSuccess   func(data T, res Resource[T, E])
	OnFailure   func(code int, errData *E, res Resource[T, E])
	OnException func(cause error)
	OnPanic     func(recovered any)
}

// Match invokes exactly the handler matching the resource's variant. The
// invocation is panic-isolated: a fault inside the handler is recovered and
// reported through OnPanic instead of propagating.
func Match[T, E any](r Resource[T, E], h Handlers[T, E]) {
	defer func() {
		if rec := recover(); rec != nil && h.OnPanic != nil {
			h.OnPanic(rec)
		}
	}()
	switch r.kind {
	case kindSuccess:
		if h.OnSuccess != nil {
			h.OnSuccess(r.data, r)
		}
	case kindFailureError:
		if h.OnFailure != nil {
			h.OnFailure(r.StatusCode(), r.errData, r)
		}
	default:
		if h.OnException != nil {
			h.OnException(r.cause)
		}
	}
}

// MatchAll invokes every handler bundle for the resource's variant, in list
// order, with no short-circuiting. Each bundle is isolated: a panic in one
// never prevents the remaining bundles from running.
func MatchAll[T, E any](r Resource[T, E], hs []Handlers[T, E]) {
	for _, h := range hs {
		Match(r, h)
	}
}

// guard runs fn converting a panic into an error so mapper faults surface as
// values.
func guard[U any](fn func() (U, error)) (val U, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = newPanicError(rec)
		}
	}()
	return fn()
}
