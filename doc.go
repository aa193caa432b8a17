// Package retroflow adapts plain HTTP calls into a discriminated result type:
//
//   - Resource[T, E] – a closed three‑variant outcome (Success / FailureError /
//     FailureException) with pure combinators (MapData, MapError, Fold, Match)
//   - Single‑shot calls – Invoke runs one request and emits exactly one Resource
//     on a channel that closes after the first value; no retries, no buffering
//   - Mock mode – substitute a JSON fixture (file, registered name or inline
//     payload) for the network call, per invocation
//   - Global observers – process‑wide handlers invoked for every real call's
//     outcome, in registration order, panic‑isolated
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - The emission boundary never raises: every fault inside a call becomes a
//     FailureException value
//   - Safe concurrent use of a single *Client instance
//   - Extensibility via user supplied middleware, decoders and observers
//
// Typical usage:
//
//	client := retroflow.New(
//	    retroflow.WithTimeout(10*time.Second),
//	    retroflow.WithExecutor(retroflow.Background),
//	    retroflow.WithMetrics(),
//	)
//	call := retroflow.Get[User, APIError](ctx, client, "https://api.example.com/me")
//	res := call.Await(ctx)
//	if user, ok := res.Data(); ok {
//	    fmt.Println(user.Name)
//	}
//
// Callers wanting explicit control keep it: with no executor configured the
// request runs and emits on the calling goroutine.
package retroflow
