// Package health provides the health-check side of ackworker.
//
// A Checker reports a Result. The interesting checker here is
// PublishChecker: every check publishes a notification, so a load balancer
// probing the service also exercises the publish path end to end.
//
// # HTTP Endpoints
//
//	// Root probe: publishes and answers "hello"
//	mux.Handle("GET /{$}", health.ProbeHandler(publishChecker))
//
//	// Liveness: no side effects
//	mux.Handle("GET /healthz", health.LivenessHandler())
//
//	// Readiness: runs side-effect free checks such as topic resolution
//	mux.Handle("GET /readyz", health.ReadinessHandler(health.TopicChecker(src)))
package health
