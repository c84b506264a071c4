package observe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonwraymond/ackworker/observe/exporters"
)

func discardStdout(t *testing.T) {
	t.Helper()
	prev := exporters.Stdout
	exporters.Stdout = io.Discard
	t.Cleanup(func() { exporters.Stdout = prev })
}

// TestConfigValidate_Valid verifies that a fully valid config passes validation.
func TestConfigValidate_Valid(t *testing.T) {
	cfg := Config{
		ServiceName: "test-service",
		Version:     "1.0.0",
		Tracing: TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			Exporter: "prometheus",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{
			name: "missing service name",
			cfg:  Config{},
			want: ErrMissingServiceName,
		},
		{
			name: "unknown tracing exporter",
			cfg: Config{ServiceName: "svc", Tracing: TracingConfig{
				Enabled: true, Exporter: "zipkin",
			}},
			want: ErrInvalidTracingExporter,
		},
		{
			name: "sample pct above range",
			cfg: Config{ServiceName: "svc", Tracing: TracingConfig{
				Enabled: true, Exporter: "stdout", SamplePct: 1.5,
			}},
			want: ErrInvalidSamplePct,
		},
		{
			name: "sample pct negative",
			cfg: Config{ServiceName: "svc", Tracing: TracingConfig{
				Enabled: true, Exporter: "stdout", SamplePct: -0.1,
			}},
			want: ErrInvalidSamplePct,
		},
		{
			name: "unknown metrics exporter",
			cfg: Config{ServiceName: "svc", Metrics: MetricsConfig{
				Enabled: true, Exporter: "badvalue",
			}},
			want: ErrInvalidMetricsExporter,
		},
		{
			name: "unknown log level",
			cfg: Config{ServiceName: "svc", Logging: LoggingConfig{
				Enabled: true, Level: "verbose",
			}},
			want: ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestConfigValidate_DisabledSkipsChecks verifies disabled subsystems are not validated.
func TestConfigValidate_DisabledSkipsChecks(t *testing.T) {
	cfg := Config{
		ServiceName: "svc",
		Tracing:     TracingConfig{Exporter: "zipkin", SamplePct: 7},
		Metrics:     MetricsConfig{Exporter: "badvalue"},
		Logging:     LoggingConfig{Level: "verbose"},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

// TestNewObserver_DisabledNoop verifies that all-disabled config returns no-op observer.
func TestNewObserver_DisabledNoop(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "test-service"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if obs.Tracer() == nil {
		t.Error("expected non-nil tracer (noop)")
	}
	if obs.Meter() == nil {
		t.Error("expected non-nil meter (noop)")
	}
	if obs.Logger() == nil {
		t.Error("expected non-nil logger (noop)")
	}
	if obs.MetricsHandler() != nil {
		t.Error("expected nil metrics handler")
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

// TestNewObserver_InvalidConfig verifies validation runs before setup.
func TestNewObserver_InvalidConfig(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("NewObserver() error = %v, want %v", err, ErrMissingServiceName)
	}
}

// TestNewObserver_StdoutExporters verifies enabled config returns functional tracer/meter.
func TestNewObserver_StdoutExporters(t *testing.T) {
	discardStdout(t)

	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "test-service",
		Version:     "1.0.0",
		Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "stdout"},
		Logging:     LoggingConfig{Enabled: true, Level: "error"},
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	_, span := obs.Tracer().Start(context.Background(), "probe")
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording span from the sdk tracer")
	}
	span.End()

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

// TestNewObserver_PrometheusHandler verifies the prometheus exporter exposes a scrape handler.
func TestNewObserver_PrometheusHandler(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "test-service",
		Metrics:     MetricsConfig{Enabled: true, Exporter: "prometheus"},
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver() error = %v", err)
	}
	_ = mw.Wrap(func(ctx context.Context, op Operation) error { return nil })(context.Background(), Operation{Name: "publish"})

	handler := obs.MetricsHandler()
	if handler == nil {
		t.Fatal("expected non-nil metrics handler")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
}
