package health

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/ackworker/observe"
	"github.com/jonwraymond/ackworker/publish"
	"github.com/jonwraymond/ackworker/resilience"
)

// ProbeMessage is the body published on every probe.
const ProbeMessage = "healthcheck"

// PublishCheckerConfig configures a PublishChecker.
type PublishCheckerConfig struct {
	// Topics resolves the destination topic on every check. Required.
	Topics publish.TopicSource

	// Publisher sends the probe message. Required.
	Publisher publish.Publisher

	// Message is the body to publish.
	// Default: "healthcheck"
	Message string

	// Timeout bounds the publish call.
	// Default: resilience.DefaultTimeout
	Timeout time.Duration

	// Middleware records telemetry for the publish.
	// Default: observe.NopMiddleware()
	Middleware *observe.Middleware
}

// PublishChecker publishes one notification per check.
type PublishChecker struct {
	topics    publish.TopicSource
	publisher publish.Publisher
	message   string
	timeout   *resilience.Timeout
	mw        *observe.Middleware
}

// NewPublishChecker creates a new publishing checker.
func NewPublishChecker(cfg PublishCheckerConfig) *PublishChecker {
	if cfg.Message == "" {
		cfg.Message = ProbeMessage
	}
	if cfg.Middleware == nil {
		cfg.Middleware = observe.NopMiddleware()
	}

	return &PublishChecker{
		topics:    cfg.Topics,
		publisher: cfg.Publisher,
		message:   cfg.Message,
		timeout:   resilience.NewTimeout(resilience.TimeoutConfig{Timeout: cfg.Timeout}),
		mw:        cfg.Middleware,
	}
}

// Name returns the name of this checker.
func (c *PublishChecker) Name() string {
	return "publish"
}

// Check resolves the topic and publishes the probe message once.
func (c *PublishChecker) Check(ctx context.Context) Result {
	start := time.Now()
	logger := c.mw.Logger()

	arn, err := c.topics()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrTopicResolution, err)
		logger.Error(ctx, "publish topic unavailable", observe.F("error", err))
		return Unhealthy("topic configuration invalid", err).WithDuration(time.Since(start))
	}

	var receipt publish.Receipt
	op := observe.Operation{Name: "publish", Target: arn, Kind: trace.SpanKindProducer}
	err = c.mw.Wrap(func(ctx context.Context, op observe.Operation) error {
		var err error
		receipt, err = resilience.Call(ctx, c.timeout, func(ctx context.Context) (publish.Receipt, error) {
			return c.publisher.Publish(ctx, publish.Message{TopicARN: arn, Body: c.message})
		})
		return err
	})(ctx, op)
	if err != nil {
		return Unhealthy("publish failed", err).
			WithDetails(map[string]any{"topic": arn}).
			WithDuration(time.Since(start))
	}

	details := map[string]any{
		"topic":      arn,
		"message_id": receipt.MessageID,
	}
	if receipt.MessageID == "" {
		logger.Warn(ctx, "publish returned no message id", observe.F("topic", arn))
		return Degraded("published without message id").
			WithDetails(details).
			WithDuration(time.Since(start))
	}

	logger.Info(ctx, "published probe notification",
		observe.F("topic", arn),
		observe.F("message_id", receipt.MessageID),
		observe.F("sequence_number", receipt.SequenceNumber),
	)
	return Healthy("published").WithDetails(details).WithDuration(time.Since(start))
}

// TopicChecker reports whether src currently resolves. It never publishes.
// Concurrent checks share a single resolution.
func TopicChecker(src publish.TopicSource) Checker {
	var group singleflight.Group
	return CheckerFunc("topics", func(ctx context.Context) Result {
		v, err, _ := group.Do("topics", func() (any, error) {
			return src()
		})
		if err != nil {
			return Unhealthy("topic configuration invalid", fmt.Errorf("%w: %w", ErrTopicResolution, err))
		}
		return Healthy("topic resolved").WithDetails(map[string]any{"topic": v.(string)})
	})
}
