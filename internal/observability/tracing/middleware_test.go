package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"notify-svc/internal/handler/http/pathutil"
)

// setupExporter installs an in-memory provider for the duration of the test.
func setupExporter(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("notify-svc")
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		tracer = otel.Tracer("notify-svc")
	})
	return exporter, tp
}

func serve(handler http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

func attrMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestMiddleware_NamesSpanByRoute(t *testing.T) {
	exporter, tp := setupExporter(t)

	handler := Middleware(pathutil.NormalizePath)(statusHandler(http.StatusOK))
	serve(handler, http.MethodPost, "/notifications/alerts")
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != "POST /notifications/:topic" {
		t.Errorf("expected span name 'POST /notifications/:topic', got '%s'", span.Name)
	}

	attrs := attrMap(span.Attributes)
	if got := attrs["http.request.method"].AsString(); got != "POST" {
		t.Errorf("expected http.request.method=POST, got %s", got)
	}
	if got := attrs["http.route"].AsString(); got != "/notifications/:topic" {
		t.Errorf("expected http.route=/notifications/:topic, got %s", got)
	}
	if got := attrs["http.response.status_code"].AsInt64(); got != 200 {
		t.Errorf("expected http.response.status_code=200, got %d", got)
	}
	for _, kv := range span.Attributes {
		if strings.Contains(kv.Value.Emit(), "alerts") {
			t.Errorf("topic leaked into attribute %s", kv.Key)
		}
	}
}

func TestMiddleware_NilRouteUsesPath(t *testing.T) {
	exporter, tp := setupExporter(t)

	serve(Middleware(nil)(statusHandler(http.StatusOK)), http.MethodGet, "/health")
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "GET /health" {
		t.Errorf("expected span name 'GET /health', got '%s'", spans[0].Name)
	}
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	setupExporter(t)

	rr := serve(Middleware(pathutil.NormalizePath)(statusHandler(http.StatusOK)), http.MethodGet, "/health")

	traceID := rr.Header().Get("X-Trace-Id")
	if len(traceID) != 32 {
		t.Errorf("expected 32 hex trace ID, got %q", traceID)
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := setupExporter(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())

	handler := Middleware(pathutil.NormalizePath)(statusHandler(http.StatusOK))
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	expected := "4bf92f3577b34da6a3ce929d0e0e4736"
	if got := spans[0].SpanContext.TraceID().String(); got != expected {
		t.Errorf("expected trace ID %s, got %s", expected, got)
	}
	if got := spans[0].Parent.SpanID().String(); got != "00f067aa0ba902b7" {
		t.Errorf("expected parent span 00f067aa0ba902b7, got %s", got)
	}
}

func TestMiddleware_SpanStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want codes.Code
	}{
		{"ok", http.StatusOK, codes.Unset},
		{"client error", http.StatusNotFound, codes.Unset},
		{"server error", http.StatusInternalServerError, codes.Error},
		{"unavailable", http.StatusServiceUnavailable, codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, tp := setupExporter(t)

			serve(Middleware(pathutil.NormalizePath)(statusHandler(tt.code)), http.MethodGet, "/handlers/email")
			_ = tp.ForceFlush(context.Background())

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			if spans[0].Status.Code != tt.want {
				t.Errorf("expected status %v, got %v", tt.want, spans[0].Status.Code)
			}
			if got := attrMap(spans[0].Attributes)["http.response.status_code"].AsInt64(); got != int64(tt.code) {
				t.Errorf("expected status attribute %d, got %d", tt.code, got)
			}
		})
	}
}

func TestStatusRecorder_KeepsFirstStatus(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}

	rec.WriteHeader(http.StatusCreated)
	rec.WriteHeader(http.StatusInternalServerError)

	if rec.status != http.StatusCreated {
		t.Errorf("expected status code 201, got %d", rec.status)
	}
}
