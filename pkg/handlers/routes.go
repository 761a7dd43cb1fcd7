// Route wiring. The music URL slug lives in the request path percent-encoded;
// once decoded it contains "//", which http.ServeMux's path cleaning would
// mangle with a 301. Known literal paths therefore go through a mux while
// everything else is dispatched straight to the redirect handler using the
// raw request URI.
package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Routes assembles the full handler chain: security headers, request
// logging/metrics, then path dispatch.
func (app *Application) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/og", app.OGImage)
	mux.HandleFunc("/healthz", app.Health)
	if app.Metrics != nil {
		mux.Handle("/metrics", app.Metrics.Handler())
	}
	mux.HandleFunc("/", app.Home)

	dispatch := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/", "/og", "/healthz", "/metrics":
			mux.ServeHTTP(w, r)
		default:
			app.Redirect(w, r)
		}
	})
	return SecurityHeaders(app.instrument(dispatch))
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument logs each request and feeds the request counter. Slug paths are
// collapsed into a single "redirect" endpoint label to keep metric
// cardinality bounded.
func (app *Application) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		app.Metrics.ObserveRequest(endpointLabel(r.URL.Path), rec.status)
		app.logger().WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("request")
	})
}

func endpointLabel(path string) string {
	switch path {
	case "/":
		return "home"
	case "/og":
		return "og"
	case "/healthz":
		return "healthz"
	case "/metrics":
		return "metrics"
	}
	return "redirect"
}
