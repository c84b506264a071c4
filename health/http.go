package health

import (
	"context"
	"net/http"
	"time"
)

// ProbeResponse is the body returned by ProbeHandler on success.
const ProbeResponse = "hello"

// LivenessHandler returns an HTTP handler for liveness probes.
// This is a simple check that the service is running.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// ProbeHandler runs checker on every request and answers "hello" unless the
// result is unhealthy, in which case it answers 500 with the result message.
func ProbeHandler(checker Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := checker.Check(r.Context())

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if result.Status == StatusUnhealthy {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(result.Message))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(ProbeResponse))
	}
}

// ReadinessHandler returns an HTTP handler for readiness probes.
// Checkers run in order under a shared 5 second deadline.
func ReadinessHandler(checkers ...Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		results := make([]Result, 0, len(checkers))
		for _, c := range checkers {
			results = append(results, c.Check(ctx))
		}

		w.Header().Set("Content-Type", "text/plain")

		switch Worst(results...) {
		case StatusHealthy:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		case StatusDegraded:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("DEGRADED"))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("UNHEALTHY"))
		}
	}
}
