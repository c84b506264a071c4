// Command ackworker serves the acknowledgement fixture used by end-to-end
// worker tests: every GET / publishes a "healthcheck" notification, a consumer
// reports back with POST /ack, and GET /status shows whether it did.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonwraymond/ackworker/config"
	"github.com/jonwraymond/ackworker/health"
	"github.com/jonwraymond/ackworker/observe"
	"github.com/jonwraymond/ackworker/publish"
	"github.com/jonwraymond/ackworker/server"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ackworker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		return err
	}
	cfg.Observe.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := observe.NewObserver(ctx, cfg.Observe)
	if err != nil {
		return fmt.Errorf("observer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			obs.Logger().Error(shutdownCtx, "telemetry shutdown failed", observe.F("error", err))
		}
	}()

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return fmt.Errorf("middleware: %w", err)
	}

	pub, err := publish.NewSNSPublisher(ctx, cfg.Region)
	if err != nil {
		return err
	}

	topics := publish.EnvTopicSource(os.Getenv, cfg.TopicsVar, cfg.Topic)
	srv := server.New(server.Options{
		Addr: cfg.Addr(),
		Probe: health.NewPublishChecker(health.PublishCheckerConfig{
			Topics:     topics,
			Publisher:  pub,
			Timeout:    cfg.PublishTimeout,
			Middleware: mw,
		}),
		Readiness:       []health.Checker{health.TopicChecker(topics)},
		Middleware:      mw,
		MetricsHandler:  obs.MetricsHandler(),
		WriteTimeout:    max(10*time.Second, cfg.PublishTimeout+5*time.Second),
		ShutdownTimeout: cfg.ShutdownTimeout,
	})

	obs.Logger().Info(ctx, "starting",
		observe.F("version", version),
		observe.F("addr", cfg.Addr()),
		observe.F("region", cfg.Region),
		observe.F("topic", cfg.Topic),
	)

	return srv.Run(ctx)
}
