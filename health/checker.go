package health

import (
	"context"
	"time"
)

// Status orders check outcomes from best to worst.
type Status int

const (
	StatusHealthy Status = iota
	StatusDegraded
	StatusUnhealthy
)

var statusNames = [...]string{"healthy", "degraded", "unhealthy"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Result is the outcome of one check. Message may be shown to HTTP callers;
// Err is for logs only.
type Result struct {
	Status   Status
	Message  string
	Err      error
	Details  map[string]any
	Duration time.Duration
}

func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message}
}

// Degraded marks a check that did its job but with an incomplete outcome.
func Degraded(message string) Result {
	return Result{Status: StatusDegraded, Message: message}
}

func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Err: err}
}

func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// Checker is one named health check.
//
// Contract:
//   - Check must honour ctx cancellation.
//   - Check reports failure through Result; it must not panic.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

type funcChecker struct {
	name string
	fn   func(context.Context) Result
}

func (c funcChecker) Name() string {
	return c.name
}

func (c funcChecker) Check(ctx context.Context) Result {
	return c.fn(ctx)
}

// CheckerFunc adapts fn to a Checker called name.
func CheckerFunc(name string, fn func(context.Context) Result) Checker {
	return funcChecker{name: name, fn: fn}
}

// Worst returns the most severe status in results; an empty set is healthy.
func Worst(results ...Result) Status {
	worst := StatusHealthy
	for _, r := range results {
		worst = max(worst, r.Status)
	}
	return worst
}
