// Package observe provides the logging, tracing and metrics used by ackworker.
//
// An Observer owns the OpenTelemetry providers and the structured logger.
// Middleware wraps individual operations (a publish, an HTTP request) so
// each one produces a span, a set of counters and a log line:
//
//	obs, err := observe.NewObserver(ctx, cfg)
//	mw, err := observe.MiddlewareFromObserver(obs)
//
//	err = mw.Wrap(func(ctx context.Context, op observe.Operation) error {
//	    return doWork(ctx)
//	})(ctx, observe.Operation{Name: "publish", Target: topicARN})
package observe
