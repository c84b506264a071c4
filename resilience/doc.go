// Package resilience bounds calls to external collaborators.
//
// The service makes exactly one kind of outbound call, a publish to the
// notification service, and that call is never retried. What it does need is
// a hard upper bound so a slow publish cannot pin a health-check request:
//
//	t := resilience.NewTimeout(resilience.TimeoutConfig{Timeout: 5 * time.Second})
//
//	receipt, err := resilience.Call(ctx, t, func(ctx context.Context) (publish.Receipt, error) {
//	    return pub.Publish(ctx, msg)
//	})
//	if errors.Is(err, resilience.ErrTimeout) {
//	    // publish did not finish in time
//	}
package resilience
