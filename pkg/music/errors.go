// Error taxonomy shared by all providers. Handlers map these onto HTTP status
// codes: ConfigError and UpstreamError become 500s, while input validation is
// handled inline by the endpoints themselves.
package music

import (
	"errors"
	"fmt"
)

// ErrTrackNotFound reports that the upstream returned zero results for a
// syntactically valid identifier. Providers wrap it in an UpstreamError so it
// is detectable with errors.Is while still being treated as an upstream
// failure.
var ErrTrackNotFound = errors.New("track not found")

// UpstreamError reports a failed call to a provider API: a non-2xx response,
// a transport failure, or an empty result set.
type UpstreamError struct {
	Service Service
	Status  int // HTTP status from upstream, 0 when the call never completed
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream returned status %d: %v", e.Service, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: upstream request failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ConfigError reports missing or invalid server configuration such as an
// absent API key. It is never retried; deployments should catch it at
// health-check time rather than per request.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Reason }
