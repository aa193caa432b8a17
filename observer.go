package retroflow

import "net/http"

// Observer receives the outcome of every real (non-mocked) call made through
// a client that carries it. Observers run after classification and before the
// resource is emitted downstream, in registration order. They see the
// response envelope and raw failure data, never the typed payload, and must
// not mutate what they are handed.
type Observer interface {
	OnSuccess(resp *http.Response)
	OnFailureError(resp *http.Response, body []byte)
	OnFailureException(err error)
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil fields
// are no-ops.
type ObserverFuncs struct {
	Success   func(resp *http.Response)
	Failure   func(resp *http.Response, body []byte)
	Exception func(err error)
}

func (o ObserverFuncs) OnSuccess(resp *http.Response) {
	if o.Success != nil {
		o.Success(resp)
	}
}

func (o ObserverFuncs) OnFailureError(resp *http.Response, body []byte) {
	if o.Failure != nil {
		o.Failure(resp, body)
	}
}

func (o ObserverFuncs) OnFailureException(err error) {
	if o.Exception != nil {
		o.Exception(err)
	}
}

// notifyObservers dispatches the outcome to each observer in order. Every
// observer is panic-isolated: a fault in one is recovered, logged and counted
// without stopping the rest.
func (c *Client) notifyObservers(endpoint string, outcome string, resp *http.Response, body []byte, cause error) {
	for i, obs := range c.observers {
		c.notifyOne(i, obs, endpoint, outcome, resp, body, cause)
	}
}

func (c *Client) notifyOne(index int, obs Observer, endpoint, outcome string, resp *http.Response, body []byte, cause error) {
	defer func() {
		if rec := recover(); rec != nil {
			if c.metrics != nil {
				c.metrics.RecordObserverPanic(endpoint)
			}
			if c.debug != nil && c.debug.Enabled && c.debug.LogObservers && c.logger != nil {
				c.logger.Warn("observer panicked", "observer", index, "outcome", outcome, "panic", rec)
			}
		}
	}()
	switch outcome {
	case "success":
		obs.OnSuccess(resp)
	case "failure_error":
		obs.OnFailureError(resp, body)
	default:
		obs.OnFailureException(cause)
	}
}
