package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newRecordingTracer() (*tracerImpl, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return &tracerImpl{tracer: tp.Tracer("test")}, recorder
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[string]attribute.Value {
	m := make(map[string]attribute.Value)
	for _, a := range s.Attributes() {
		m[string(a.Key)] = a.Value
	}
	return m
}

func TestOperation_SpanName(t *testing.T) {
	op := Operation{Name: "publish"}
	if got := op.SpanName(); got != "ackworker.publish" {
		t.Errorf("SpanName() = %q, want %q", got, "ackworker.publish")
	}
}

// TestTracer_SpanAttributes verifies operation attributes are present on span.
func TestTracer_SpanAttributes(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), Operation{
		Name:   "publish",
		Target: "arn:aws:sns:us-west-2:123456789012:events",
	})
	tr.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]

	if s.Name() != "ackworker.publish" {
		t.Errorf("span name = %q, want %q", s.Name(), "ackworker.publish")
	}
	if s.SpanKind() != trace.SpanKindInternal {
		t.Errorf("span kind = %v, want internal", s.SpanKind())
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", s.Status().Code)
	}

	attrs := spanAttrs(s)
	if v := attrs["op.name"]; v.AsString() != "publish" {
		t.Errorf("op.name = %v, want publish", v)
	}
	if v := attrs["op.target"]; v.AsString() != "arn:aws:sns:us-west-2:123456789012:events" {
		t.Errorf("op.target = %v", v)
	}
	if v, ok := attrs["op.error"]; !ok || v.AsBool() {
		t.Errorf("op.error = %v, want false", v)
	}
}

// TestTracer_NoTargetAttribute verifies optional attributes are omitted when empty.
func TestTracer_NoTargetAttribute(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), Operation{Name: "ack", Kind: trace.SpanKindServer})
	tr.EndSpan(span, nil)

	s := recorder.Ended()[0]
	if _, ok := spanAttrs(s)["op.target"]; ok {
		t.Error("expected no op.target attribute")
	}
	if s.SpanKind() != trace.SpanKindServer {
		t.Errorf("span kind = %v, want server", s.SpanKind())
	}
}

// TestTracer_EndSpanWithError verifies error status and event are recorded.
func TestTracer_EndSpanWithError(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), Operation{Name: "publish"})
	tr.EndSpan(span, errors.New("throttled"))

	s := recorder.Ended()[0]
	if s.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", s.Status().Code)
	}
	if s.Status().Description != "throttled" {
		t.Errorf("status description = %q, want throttled", s.Status().Description)
	}
	if v := spanAttrs(s)["op.error"]; !v.AsBool() {
		t.Error("expected op.error=true")
	}
	if len(s.Events()) == 0 {
		t.Error("expected an exception event")
	}
}

// TestTracer_ContextPropagation verifies child spans inherit the parent.
func TestTracer_ContextPropagation(t *testing.T) {
	tr, recorder := newRecordingTracer()

	ctx, parent := tr.StartSpan(context.Background(), Operation{Name: "http.probe"})
	_, child := tr.StartSpan(ctx, Operation{Name: "publish"})
	tr.EndSpan(child, nil)
	tr.EndSpan(parent, nil)

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Parent().SpanID() != spans[1].SpanContext().SpanID() {
		t.Error("child span is not parented to the outer span")
	}
}

func TestNopTracer_NoPanic(t *testing.T) {
	tr := NopTracer()
	_, span := tr.StartSpan(context.Background(), Operation{Name: "noop"})
	tr.EndSpan(span, errors.New("ignored"))
}
